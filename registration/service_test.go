package registration

import (
	"context"
	"os"
	"testing"
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/log"
	"campuseventhub-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	log.EnsureLogger()
	os.Exit(m.Run())
}

func newTestService() (*Service, *store.Memory) {
	s := store.NewMemory()
	return NewService(s), s
}

func seedUser(t *testing.T, s *store.Memory, name, email, role string) *entity.User {
	t.Helper()

	u := &entity.User{
		Name:      name,
		Email:     email,
		Password:  "x",
		College:   "Test College",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedEvent(t *testing.T, s *store.Memory, createdBy primitive.ObjectID, seats, teamMin, teamMax int64) *entity.Event {
	t.Helper()

	e := &entity.Event{
		Title:       "Hackathon",
		Category:    entity.CategoryTechnical,
		TotalSeats:  seats,
		TeamSizeMin: teamMin,
		TeamSizeMax: teamMax,
		Status:      entity.EventActive,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreateEvent(context.Background(), e))
	return e
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	ev := seedEvent(t, s, admin.ID, 10, 0, 0)

	r, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationPending, r.Status)
	assert.Equal(t, ev.ID, r.Event)
	assert.Equal(t, user.ID, r.User)

	got, err := s.FindEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.RegisteredCount)
	assert.Equal(t, []primitive.ObjectID{user.ID}, got.RegisteredUsers)

	u, err := s.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{ev.ID}, u.RegisteredEvents)
}

func TestCreateRegistration_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	ev := seedEvent(t, s, admin.ID, 10, 0, 0)

	_, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	assert.Equal(t, errs.ErrDuplicateRegistration, err)

	got, err := s.FindEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.RegisteredCount)
}

func TestCreateRegistration_MissingEvent(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	_, err := svc.Create(ctx, CreateInput{
		EventID:     primitive.NewObjectID(),
		UserID:      user.ID,
		TeamMembers: []string{"Bob"},
	})
	assert.Equal(t, errs.ErrNotFound, err)
}

func TestCreateRegistration_TeamSize(t *testing.T) {
	tests := []struct {
		name    string
		min     int64
		max     int64
		members []string
		wantErr error
	}{
		{name: "solo against unset bounds", min: 0, max: 0, members: nil},
		{name: "team against unset bounds", min: 0, max: 0, members: []string{"C", "D"}, wantErr: errs.ErrInvalidTeamSize},
		{name: "pair within 2..4", min: 2, max: 4, members: []string{"X"}},
		{name: "solo below min 2", min: 2, max: 4, members: nil, wantErr: errs.ErrInvalidTeamSize},
		{name: "four at max", min: 2, max: 4, members: []string{"A", "B", "C"}},
		{name: "five above max", min: 2, max: 4, members: []string{"A", "B", "C", "D"}, wantErr: errs.ErrInvalidTeamSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, s := newTestService()

			admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
			user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
			ev := seedEvent(t, s, admin.ID, 10, tt.min, tt.max)

			_, err := svc.Create(ctx, CreateInput{
				EventID:     ev.ID,
				UserID:      user.ID,
				TeamName:    "Gophers",
				TeamMembers: tt.members,
			})
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)

				// validation failures leave no state behind
				got, ferr := s.FindEventByID(ctx, ev.ID)
				require.NoError(t, ferr)
				assert.Equal(t, int64(0), got.RegisteredCount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateRegistration_EventFull(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	ev := seedEvent(t, s, admin.ID, 1, 0, 0)

	first := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	_, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: first.ID})
	require.NoError(t, err)

	second := seedUser(t, s, "Bob", "bob@hub.test", entity.RoleStudent)
	_, err = svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: second.ID})
	assert.Equal(t, errs.ErrEventFull, err)

	regs, err := s.ListRegistrationsByEvents(ctx, []primitive.ObjectID{ev.ID})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestCreateRegistration_EventNotOpen(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	ev := seedEvent(t, s, admin.ID, 10, 0, 0)
	st := entity.EventCancelled
	_, err := s.UpdateEvent(ctx, ev.ID, store.EventUpdate{Status: &st})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	assert.Equal(t, errs.ErrEventNotOpen, err)
}

func TestCreateRegistration_RegistrationWindow(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	e := &entity.Event{
		Title:           "Closed",
		TotalSeats:      10,
		Status:          entity.EventActive,
		CreatedBy:       admin.ID,
		RegistrationEnd: time.Now().Add(-time.Hour),
	}
	require.NoError(t, s.CreateEvent(ctx, e))

	_, err := svc.Create(ctx, CreateInput{EventID: e.ID, UserID: user.ID})
	assert.Equal(t, errs.ErrRegistrationClosed, err)
}

func TestCreateRegistration_CountersAfterN(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	ev := seedEvent(t, s, admin.ID, 10, 0, 0)

	const n = 5
	for i := 0; i < n; i++ {
		u := seedUser(t, s, "User", "user"+string(rune('a'+i))+"@hub.test", entity.RoleStudent)
		_, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: u.ID})
		require.NoError(t, err)
	}

	got, err := s.FindEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.RegisteredCount)
	assert.Len(t, got.RegisteredUsers, n)

	regs, err := s.ListRegistrationsByEvents(ctx, []primitive.ObjectID{ev.ID})
	require.NoError(t, err)
	assert.Len(t, regs, n)
}

func TestCreateRegistration_NotifiesEveryAdmin(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin1 := seedUser(t, s, "Admin One", "a1@hub.test", entity.RoleAdmin)
	admin2 := seedUser(t, s, "Admin Two", "a2@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	ev := seedEvent(t, s, admin1.ID, 10, 0, 0)

	r, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	require.NoError(t, err)

	for _, admin := range []*entity.User{admin1, admin2} {
		ns, err := s.ListNotificationsByRecipient(ctx, admin.ID)
		require.NoError(t, err)
		require.Len(t, ns, 1)

		n := ns[0]
		assert.Equal(t, entity.NotificationRegistration, n.Type)
		assert.False(t, n.Read)
		assert.Contains(t, n.Message, "Alice")
		assert.Contains(t, n.Message, ev.Title)
		require.NotNil(t, n.Event)
		require.NotNil(t, n.User)
		require.NotNil(t, n.Registration)
		assert.Equal(t, ev.ID, *n.Event)
		assert.Equal(t, user.ID, *n.User)
		assert.Equal(t, r.ID, *n.Registration)
	}

	// the registrant is not an admin and gets nothing
	ns, err := s.ListNotificationsByRecipient(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, ns)
}

func TestScenario_SeatsAndTeams(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	ev := seedEvent(t, s, admin.ID, 2, 1, 1)

	userA := seedUser(t, s, "A", "a@hub.test", entity.RoleStudent)
	userB := seedUser(t, s, "B", "b@hub.test", entity.RoleStudent)

	_, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: userA.ID})
	require.NoError(t, err)

	got, err := s.FindEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.RegisteredCount)

	_, err = svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: userA.ID})
	assert.Equal(t, errs.ErrDuplicateRegistration, err)

	_, err = svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: userB.ID, TeamMembers: []string{"C", "D"}})
	assert.Equal(t, errs.ErrInvalidTeamSize, err)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	owner := seedUser(t, s, "Owner", "owner@hub.test", entity.RoleAdmin)
	other := seedUser(t, s, "Other", "other@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	ev := seedEvent(t, s, owner.ID, 10, 0, 0)

	r, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, r.ID, other.ID, entity.RegistrationApproved)
	assert.Equal(t, errs.ErrForbidden, err)

	_, err = svc.UpdateStatus(ctx, r.ID, owner.ID, entity.RegistrationCancelled)
	assert.Equal(t, errs.ErrInvalidStatus, err)

	got, err := svc.UpdateStatus(ctx, r.ID, owner.ID, entity.RegistrationApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationApproved, got.Status)

	// approval notifies the registrant
	ns, err := s.ListNotificationsByRecipient(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, entity.NotificationApproval, ns[0].Type)

	// terminal, no further transition
	_, err = svc.UpdateStatus(ctx, r.ID, owner.ID, entity.RegistrationRejected)
	assert.Equal(t, errs.ErrInvalidStatus, err)

	// counters untouched by the transition
	e, err := s.FindEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.RegisteredCount)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)

	_, err := svc.UpdateStatus(ctx, primitive.NewObjectID(), admin.ID, entity.RegistrationApproved)
	assert.Equal(t, errs.ErrNotFound, err)
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	admin := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	var last primitive.ObjectID
	for i := 0; i < 3; i++ {
		ev := seedEvent(t, s, admin.ID, 10, 0, 0)
		r, err := svc.Create(ctx, CreateInput{EventID: ev.ID, UserID: user.ID})
		require.NoError(t, err)
		last = r.ID
		time.Sleep(2 * time.Millisecond)
	}

	regs, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, regs, 3)

	// newest first, each with its event attached
	assert.Equal(t, last, regs[0].Registration.ID)
	for _, r := range regs {
		require.NotNil(t, r.Event)
		assert.Equal(t, r.Registration.Event, r.Event.ID)
	}
	assert.True(t, regs[0].Registration.CreatedAt.After(regs[2].Registration.CreatedAt))

	// re-fetching without writes yields the identical sequence
	again, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, regs, again)
}

func TestListForAdmin(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService()

	owner := seedUser(t, s, "Owner", "owner@hub.test", entity.RoleAdmin)
	other := seedUser(t, s, "Other", "other@hub.test", entity.RoleAdmin)
	user := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	mine := seedEvent(t, s, owner.ID, 10, 0, 0)
	theirs := seedEvent(t, s, other.ID, 10, 0, 0)

	_, err := svc.Create(ctx, CreateInput{EventID: mine.ID, UserID: user.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{EventID: theirs.ID, UserID: user.ID})
	require.NoError(t, err)

	regs, err := svc.ListForAdmin(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	assert.Equal(t, mine.ID, regs[0].Registration.Event)
	require.NotNil(t, regs[0].Event)
	assert.Equal(t, mine.ID, regs[0].Event.ID)
	require.NotNil(t, regs[0].User)
	assert.Equal(t, user.ID, regs[0].User.ID)
}
