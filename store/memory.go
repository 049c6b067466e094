package store

import (
	"context"
	"sort"
	"sync"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store with the same single-document
// atomicity guarantees as the Mongo implementation: updates are
// serialized under one mutex, the (event, user) registration pair is
// unique, and seat reservation is an increment with a ceiling. Used by
// unit tests and local development without a database.
type Memory struct {
	mu sync.Mutex

	users        map[primitive.ObjectID]*entity.User
	usersByEmail map[string]primitive.ObjectID

	events map[primitive.ObjectID]*entity.Event

	registrations map[primitive.ObjectID]*entity.Registration
	regByPair     map[[2]primitive.ObjectID]primitive.ObjectID

	notifications map[primitive.ObjectID]*entity.Notification
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[primitive.ObjectID]*entity.User),
		usersByEmail:  make(map[string]primitive.ObjectID),
		events:        make(map[primitive.ObjectID]*entity.Event),
		registrations: make(map[primitive.ObjectID]*entity.Registration),
		regByPair:     make(map[[2]primitive.ObjectID]primitive.ObjectID),
		notifications: make(map[primitive.ObjectID]*entity.Notification),
	}
}

func (m *Memory) CreateUser(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usersByEmail[u.Email]; ok {
		return errs.ErrAlreadyExists
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	m.users[u.ID] = copyUser(u)
	m.usersByEmail[u.Email] = u.ID
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}

	return copyUser(u), nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.usersByEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}

	return copyUser(m.users[id]), nil
}

func (m *Memory) FindAdmins(_ context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var admins []entity.User
	for _, u := range m.users {
		if u.Role == entity.RoleAdmin {
			admins = append(admins, *copyUser(u))
		}
	}

	sort.Slice(admins, func(i, j int) bool { return admins[i].ID.Hex() < admins[j].ID.Hex() })
	return admins, nil
}

func (m *Memory) AddRegisteredEvent(_ context.Context, userID, eventID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return errs.ErrNotFound
	}

	u.RegisteredEvents = addToSet(u.RegisteredEvents, eventID)
	return nil
}

func (m *Memory) AddFavoriteEvent(_ context.Context, userID, eventID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return errs.ErrNotFound
	}

	u.FavoriteEvents = addToSet(u.FavoriteEvents, eventID)
	return nil
}

func (m *Memory) RemoveFavoriteEvent(_ context.Context, userID, eventID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return errs.ErrNotFound
	}

	u.FavoriteEvents = removeID(u.FavoriteEvents, eventID)
	return nil
}

func (m *Memory) CreateEvent(_ context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}

	m.events[e.ID] = copyEvent(e)
	return nil
}

func (m *Memory) FindEventByID(_ context.Context, id primitive.ObjectID) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, errs.ErrNotFound
	}

	return copyEvent(e), nil
}

func (m *Memory) ListEvents(_ context.Context) ([]entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listEventsLocked(func(*entity.Event) bool { return true }), nil
}

func (m *Memory) ListEventsByCreator(_ context.Context, creatorID primitive.ObjectID) ([]entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listEventsLocked(func(e *entity.Event) bool { return e.CreatedBy == creatorID }), nil
}

func (m *Memory) listEventsLocked(match func(*entity.Event) bool) []entity.Event {
	var events []entity.Event
	for _, e := range m.events {
		if match(e) {
			events = append(events, *copyEvent(e))
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].ID.Hex() < events[j].ID.Hex()
	})
	return events
}

func (m *Memory) UpdateEvent(_ context.Context, id primitive.ObjectID, u EventUpdate) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, errs.ErrNotFound
	}

	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Status != nil {
		e.Status = *u.Status
	}

	return copyEvent(e), nil
}

func (m *Memory) ReserveSeat(_ context.Context, eventID, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return errs.ErrNotFound
	}

	if e.RegisteredCount >= e.TotalSeats {
		return errs.ErrEventFull
	}

	e.RegisteredCount++
	e.RegisteredUsers = append(e.RegisteredUsers, userID)
	return nil
}

func (m *Memory) ReleaseSeat(_ context.Context, eventID, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return errs.ErrNotFound
	}

	e.RegisteredCount--
	e.RegisteredUsers = removeID(e.RegisteredUsers, userID)
	return nil
}

func (m *Memory) CreateRegistration(_ context.Context, r *entity.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair := [2]primitive.ObjectID{r.Event, r.User}
	if _, ok := m.regByPair[pair]; ok {
		return errs.ErrDuplicateRegistration
	}

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}

	m.registrations[r.ID] = copyRegistration(r)
	m.regByPair[pair] = r.ID
	return nil
}

func (m *Memory) FindRegistrationByID(_ context.Context, id primitive.ObjectID) (*entity.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok {
		return nil, errs.ErrNotFound
	}

	return copyRegistration(r), nil
}

func (m *Memory) FindRegistrationByEventAndUser(_ context.Context, eventID, userID primitive.ObjectID) (*entity.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.regByPair[[2]primitive.ObjectID{eventID, userID}]
	if !ok {
		return nil, errs.ErrNotFound
	}

	return copyRegistration(m.registrations[id]), nil
}

func (m *Memory) ListRegistrationsByUser(_ context.Context, userID primitive.ObjectID) ([]entity.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listRegistrationsLocked(func(r *entity.Registration) bool { return r.User == userID }), nil
}

func (m *Memory) ListRegistrationsByEvents(_ context.Context, eventIDs []primitive.ObjectID) ([]entity.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[primitive.ObjectID]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}

	return m.listRegistrationsLocked(func(r *entity.Registration) bool { return wanted[r.Event] }), nil
}

func (m *Memory) listRegistrationsLocked(match func(*entity.Registration) bool) []entity.Registration {
	var regs []entity.Registration
	for _, r := range m.registrations {
		if match(r) {
			regs = append(regs, *copyRegistration(r))
		}
	}

	// creation time descending, id as tiebreak, matching the Mongo sort
	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.After(regs[j].CreatedAt)
		}
		return regs[i].ID.Hex() > regs[j].ID.Hex()
	})
	return regs
}

func (m *Memory) UpdateRegistrationStatus(_ context.Context, id primitive.ObjectID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok {
		return errs.ErrNotFound
	}

	r.Status = status
	return nil
}

func (m *Memory) DeleteRegistration(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok {
		return errs.ErrNotFound
	}

	delete(m.registrations, id)
	delete(m.regByPair, [2]primitive.ObjectID{r.Event, r.User})
	return nil
}

func (m *Memory) CreateNotification(_ context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}

	m.notifications[n.ID] = copyNotification(n)
	return nil
}

func (m *Memory) ListNotificationsByRecipient(_ context.Context, recipientID primitive.ObjectID) ([]entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ns []entity.Notification
	for _, n := range m.notifications {
		if n.Recipient == recipientID {
			ns = append(ns, *copyNotification(n))
		}
	}

	sort.Slice(ns, func(i, j int) bool {
		if !ns[i].CreatedAt.Equal(ns[j].CreatedAt) {
			return ns[i].CreatedAt.After(ns[j].CreatedAt)
		}
		return ns[i].ID.Hex() > ns[j].ID.Hex()
	})
	return ns, nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id, recipientID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[id]
	if !ok || n.Recipient != recipientID {
		return errs.ErrNotFound
	}

	n.Read = true
	return nil
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.RegisteredEvents = append([]primitive.ObjectID(nil), u.RegisteredEvents...)
	c.FavoriteEvents = append([]primitive.ObjectID(nil), u.FavoriteEvents...)
	return &c
}

func copyEvent(e *entity.Event) *entity.Event {
	c := *e
	c.RegisteredUsers = append([]primitive.ObjectID(nil), e.RegisteredUsers...)
	return &c
}

func copyRegistration(r *entity.Registration) *entity.Registration {
	c := *r
	c.TeamMembers = append([]string(nil), r.TeamMembers...)
	return &c
}

func copyNotification(n *entity.Notification) *entity.Notification {
	c := *n
	return &c
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}

	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for k, v := range ids {
		if v == id {
			return append(ids[:k], ids[k+1:]...)
		}
	}

	return ids
}
