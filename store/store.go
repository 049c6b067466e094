// Package store is the entity store: persistent record keeping for
// users, events, registrations and notifications. Every method is
// atomic at the single-document level; there is no multi-document
// transaction primitive.
package store

import (
	"context"

	"campuseventhub-backend/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventUpdate is a partial update of mutable event fields. Nil fields
// are left untouched.
type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Status      *string
}

type Store interface {
	CreateUser(ctx context.Context, u *entity.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAdmins(ctx context.Context) ([]entity.User, error)
	AddRegisteredEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
	AddFavoriteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
	RemoveFavoriteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error

	CreateEvent(ctx context.Context, e *entity.Event) error
	FindEventByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	ListEvents(ctx context.Context) ([]entity.Event, error)
	ListEventsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, u EventUpdate) (*entity.Event, error)

	// ReserveSeat increments the event's registered count and appends
	// the user reference in one document update, guarded by
	// registered_count < total_seats. Returns errs.ErrEventFull when
	// the guard does not match.
	ReserveSeat(ctx context.Context, eventID, userID primitive.ObjectID) error
	// ReleaseSeat undoes ReserveSeat.
	ReleaseSeat(ctx context.Context, eventID, userID primitive.ObjectID) error

	// CreateRegistration returns errs.ErrDuplicateRegistration when a
	// registration for the same (event, user) pair already exists; the
	// pair carries a unique index so the check holds under concurrency.
	CreateRegistration(ctx context.Context, r *entity.Registration) error
	FindRegistrationByID(ctx context.Context, id primitive.ObjectID) (*entity.Registration, error)
	FindRegistrationByEventAndUser(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Registration, error)
	ListRegistrationsByUser(ctx context.Context, userID primitive.ObjectID) ([]entity.Registration, error)
	ListRegistrationsByEvents(ctx context.Context, eventIDs []primitive.ObjectID) ([]entity.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteRegistration(ctx context.Context, id primitive.ObjectID) error

	CreateNotification(ctx context.Context, n *entity.Notification) error
	ListNotificationsByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]entity.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID primitive.ObjectID) error
}
