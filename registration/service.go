// Package registration implements the registration and capacity
// subsystem: validation of new registrations against duplicate,
// team-size and seat constraints, the commit sequence that persists a
// registration and propagates its effects, and the admin status
// transition.
package registration

import (
	"context"
	"fmt"
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/events"
	"campuseventhub-backend/log"
	"campuseventhub-backend/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	s store.Store
}

func NewService(s store.Store) *Service {
	return &Service{s: s}
}

type CreateInput struct {
	EventID     primitive.ObjectID
	UserID      primitive.ObjectID
	TeamName    string
	TeamMembers []string
}

// Create validates the request and, on success, runs the commit
// sequence: registration insert, seat reservation on the event, user
// history append, admin notification fan-out. The first two steps are
// consistent (a lost seat race deletes the registration again); the
// rest are best-effort and never rolled back.
func (svc *Service) Create(ctx context.Context, in CreateInput) (*entity.Registration, error) {
	ev, err := svc.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	u, err := svc.s.FindUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	r := &entity.Registration{
		ID:          primitive.NewObjectID(),
		Event:       in.EventID,
		User:        in.UserID,
		TeamName:    in.TeamName,
		TeamMembers: in.TeamMembers,
		Status:      entity.RegistrationPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := svc.s.CreateRegistration(ctx, r); err != nil {
		return nil, err
	}

	if err := svc.s.ReserveSeat(ctx, in.EventID, in.UserID); err != nil {
		if derr := svc.s.DeleteRegistration(ctx, r.ID); derr != nil {
			log.Logger.Error("failed to delete registration after losing seat race",
				zap.String("registrationID", r.ID.Hex()), zap.Error(derr))
		}

		return nil, err
	}

	logger := log.Logger.With(
		zap.String("registrationID", r.ID.Hex()),
		zap.String("eventID", in.EventID.Hex()),
		zap.String("userID", in.UserID.Hex()),
	)

	if err := svc.s.AddRegisteredEvent(ctx, in.UserID, in.EventID); err != nil {
		logger.Error("failed to append event to user history", zap.Error(err))
	}

	svc.fanOut(ctx, logger, r, ev, u)

	events.PublishRegistration(&events.RegistrationEvent{
		RegistrationID: r.ID.Hex(),
		EventID:        ev.ID.Hex(),
		EventTitle:     ev.Title,
		UserID:         u.ID.Hex(),
		UserName:       u.Name,
		CreatedAt:      r.CreatedAt,
	})

	return r, nil
}

// validate is pure read-and-decide; it writes nothing.
func (svc *Service) validate(ctx context.Context, in CreateInput) (*entity.Event, error) {
	_, err := svc.s.FindRegistrationByEventAndUser(ctx, in.EventID, in.UserID)
	if err == nil {
		return nil, errs.ErrDuplicateRegistration
	}
	if err != errs.ErrNotFound {
		return nil, err
	}

	ev, err := svc.s.FindEventByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	if ev.Status != entity.EventActive {
		return nil, errs.ErrEventNotOpen
	}

	now := time.Now()
	if !ev.RegistrationStart.IsZero() && now.Before(ev.RegistrationStart) {
		return nil, errs.ErrRegistrationClosed
	}
	if !ev.RegistrationEnd.IsZero() && now.After(ev.RegistrationEnd) {
		return nil, errs.ErrRegistrationClosed
	}

	// headcount includes the registrant, so a solo registration has
	// total 1 and passes the default [1,1] bounds
	min, max := ev.TeamSizeMin, ev.TeamSizeMax
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = 1
	}

	total := int64(len(in.TeamMembers)) + 1
	if total < min || total > max {
		return nil, errs.ErrInvalidTeamSize
	}

	if ev.RegisteredCount >= ev.TotalSeats {
		return nil, errs.ErrEventFull
	}

	return ev, nil
}

// fanOut creates one notification per admin user. Failures are logged
// per admin and do not fail the registration.
func (svc *Service) fanOut(ctx context.Context, logger *zap.Logger, r *entity.Registration, ev *entity.Event, u *entity.User) {
	admins, err := svc.s.FindAdmins(ctx)
	if err != nil {
		logger.Error("failed to load admins for fan-out", zap.Error(err))
		return
	}

	for _, admin := range admins {
		n := &entity.Notification{
			ID:           primitive.NewObjectID(),
			Recipient:    admin.ID,
			Type:         entity.NotificationRegistration,
			Title:        "New registration",
			Message:      fmt.Sprintf("%s registered for %s", u.Name, ev.Title),
			Event:        &ev.ID,
			User:         &u.ID,
			Registration: &r.ID,
			CreatedAt:    time.Now().UTC(),
		}

		if err := svc.s.CreateNotification(ctx, n); err != nil {
			logger.Error("failed to create notification", zap.String("adminID", admin.ID.Hex()), zap.Error(err))
		}
	}
}

// UpdateStatus transitions a pending registration to approved or
// rejected. Only the admin who created the event may do so. Counters
// are untouched; status is advisory metadata, not a capacity gate.
func (svc *Service) UpdateStatus(ctx context.Context, registrationID, callerID primitive.ObjectID, status string) (*entity.Registration, error) {
	if status != entity.RegistrationApproved && status != entity.RegistrationRejected {
		return nil, errs.ErrInvalidStatus
	}

	r, err := svc.s.FindRegistrationByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if r.Status != entity.RegistrationPending {
		return nil, errs.ErrInvalidStatus
	}

	ev, err := svc.s.FindEventByID(ctx, r.Event)
	if err != nil {
		return nil, err
	}

	if ev.CreatedBy != callerID {
		return nil, errs.ErrForbidden
	}

	if err := svc.s.UpdateRegistrationStatus(ctx, registrationID, status); err != nil {
		return nil, err
	}
	r.Status = status

	if status == entity.RegistrationApproved {
		n := &entity.Notification{
			ID:           primitive.NewObjectID(),
			Recipient:    r.User,
			Type:         entity.NotificationApproval,
			Title:        "Registration approved",
			Message:      fmt.Sprintf("Your registration for %s was approved", ev.Title),
			Event:        &ev.ID,
			Registration: &r.ID,
			CreatedAt:    time.Now().UTC(),
		}

		if err := svc.s.CreateNotification(ctx, n); err != nil {
			log.Logger.Error("failed to create approval notification",
				zap.String("registrationID", r.ID.Hex()), zap.Error(err))
		}
	}

	return r, nil
}

// UserRegistration is a registration with its event attached for
// presentation. Attachment happens here, never inside the store.
type UserRegistration struct {
	Registration entity.Registration
	Event        *entity.Event
}

func (svc *Service) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]UserRegistration, error) {
	regs, err := svc.s.ListRegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]UserRegistration, 0, len(regs))
	for _, r := range regs {
		ev, err := svc.s.FindEventByID(ctx, r.Event)
		if err != nil && err != errs.ErrNotFound {
			return nil, err
		}

		out = append(out, UserRegistration{Registration: r, Event: ev})
	}

	return out, nil
}

// AdminRegistration is a registration with event and registrant
// attached, for the admin listing.
type AdminRegistration struct {
	Registration entity.Registration
	Event        *entity.Event
	User         *entity.User
}

// ListForAdmin returns the registrations across every event the admin
// created, newest first.
func (svc *Service) ListForAdmin(ctx context.Context, adminID primitive.ObjectID) ([]AdminRegistration, error) {
	evs, err := svc.s.ListEventsByCreator(ctx, adminID)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*entity.Event, len(evs))
	ids := make([]primitive.ObjectID, 0, len(evs))
	for k := range evs {
		byID[evs[k].ID] = &evs[k]
		ids = append(ids, evs[k].ID)
	}

	regs, err := svc.s.ListRegistrationsByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AdminRegistration, 0, len(regs))
	for _, r := range regs {
		u, err := svc.s.FindUserByID(ctx, r.User)
		if err != nil && err != errs.ErrNotFound {
			return nil, err
		}

		out = append(out, AdminRegistration{Registration: r, Event: byID[r.Event], User: u})
	}

	return out, nil
}
