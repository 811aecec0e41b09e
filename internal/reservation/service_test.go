package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/auth"
	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/ground"
	"github.com/XCypherusX/tbs-api/internal/timeslot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LockPair(ctx context.Context, groundID, timeSlotID int) error {
	return m.Called(ctx, groundID, timeSlotID).Error(0)
}

func (m *MockRepository) ActiveExists(ctx context.Context, groundID, timeSlotID, excludeID int) (bool, error) {
	args := m.Called(ctx, groundID, timeSlotID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, userID, groundID, timeSlotID int) (*Reservation, error) {
	args := m.Called(ctx, userID, groundID, timeSlotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockRepository) GetForUpdate(ctx context.Context, id int) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, id int, active bool) (*Reservation, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, r *Reservation) (*Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

type groundStub struct {
	ground.Repository
	grounds map[int]*ground.Ground
}

func (s groundStub) GetForShare(_ context.Context, id int) (*ground.Ground, error) {
	if g, ok := s.grounds[id]; ok {
		return g, nil
	}
	return nil, ground.ErrNotFound
}

type slotStub struct {
	timeslot.Repository
	slots map[int]bool
}

func (s slotStub) GetForShare(_ context.Context, id int) (*timeslot.TimeSlot, error) {
	if s.slots[id] {
		return &timeslot.TimeSlot{ID: id}, nil
	}
	return nil, timeslot.ErrNotFound
}

type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recorder struct {
	inTx      []events.ReservationStateChanged
	committed []events.ReservationStateChanged
}

func newFixture(t *testing.T) (*MockRepository, *recorder, Service) {
	t.Helper()
	repo := new(MockRepository)
	rec := &recorder{}

	bus := events.NewBus()
	bus.Subscribe(func(_ context.Context, ev events.ReservationStateChanged) error {
		rec.inTx = append(rec.inTx, ev)
		return nil
	})
	bus.SubscribeAfterCommit("recorder", func(_ context.Context, ev events.ReservationStateChanged) error {
		rec.committed = append(rec.committed, ev)
		return nil
	})

	grounds := groundStub{grounds: map[int]*ground.Ground{
		1: {ID: 1, Name: "FieldA", Active: true},
		2: {ID: 2, Name: "FieldB", Active: true},
		3: {ID: 3, Name: "Closed", Active: false},
	}}
	slots := slotStub{slots: map[int]bool{10: true, 11: true}}

	return repo, rec, NewService(repo, grounds, slots, inlineTx{}, bus)
}

var (
	member = auth.Caller{UserID: 7, Role: auth.RoleMember}
	admin  = auth.Caller{UserID: 1, Role: auth.RoleAdmin}
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free pair and emits an active event", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("LockPair", ctx, 1, 10).Return(nil)
		repo.On("ActiveExists", ctx, 1, 10, 0).Return(false, nil)
		repo.On("Create", ctx, 7, 1, 10).
			Return(&Reservation{ID: 100, UserID: 7, GroundID: 1, TimeSlotID: 10, IsActive: true}, nil)

		res, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 1, TimeSlotID: 10})
		require.NoError(t, err)
		assert.True(t, res.IsActive)

		require.Len(t, rec.inTx, 1)
		assert.Equal(t, 100, rec.inTx[0].ReservationID)
		assert.True(t, rec.inTx[0].IsActive)
		assert.Equal(t, rec.inTx, rec.committed)
		repo.AssertExpectations(t)
	})

	t.Run("held pair is rejected without writing", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("LockPair", ctx, 1, 10).Return(nil)
		repo.On("ActiveExists", ctx, 1, 10, 0).Return(true, nil)

		_, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 1, TimeSlotID: 10})
		assert.ErrorIs(t, err, apperr.SlotAlreadyBooked)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, rec.inTx)
		assert.Empty(t, rec.committed)
	})

	t.Run("unique index backstop maps to slot already booked", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("LockPair", ctx, 1, 10).Return(nil)
		repo.On("ActiveExists", ctx, 1, 10, 0).Return(false, nil)
		repo.On("Create", ctx, 7, 1, 10).Return(nil, ErrSlotAlreadyBooked)

		_, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 1, TimeSlotID: 10})
		assert.ErrorIs(t, err, apperr.SlotAlreadyBooked)
		assert.Empty(t, rec.committed)
	})

	tests := []struct {
		name    string
		caller  auth.Caller
		req     CreateReservationRequest
		wantErr error
	}{
		{"unknown ground", member, CreateReservationRequest{GroundID: 9, TimeSlotID: 10}, apperr.NotFound},
		{"unknown slot", member, CreateReservationRequest{GroundID: 1, TimeSlotID: 99}, apperr.NotFound},
		{"inactive ground", member, CreateReservationRequest{GroundID: 3, TimeSlotID: 10}, ground.ErrInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newFixture(t)
			repo.On("LockPair", ctx, tt.req.GroundID, tt.req.TimeSlotID).Return(nil)

			_, err := svc.Create(ctx, tt.caller, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("missing ids", func(t *testing.T) {
		repo, _, svc := newFixture(t)

		_, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 0, TimeSlotID: 10})
		assert.ErrorIs(t, err, apperr.InvalidInput)
		repo.AssertNotCalled(t, "LockPair", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("member cannot book for someone else", func(t *testing.T) {
		_, _, svc := newFixture(t)
		other := 8

		_, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 1, TimeSlotID: 10, UserID: &other})
		assert.ErrorIs(t, err, apperr.Forbidden)
	})

	t.Run("admin books on behalf of a user", func(t *testing.T) {
		repo, _, svc := newFixture(t)
		other := 8

		repo.On("LockPair", ctx, 2, 11).Return(nil)
		repo.On("ActiveExists", ctx, 2, 11, 0).Return(false, nil)
		repo.On("Create", ctx, 8, 2, 11).
			Return(&Reservation{ID: 5, UserID: 8, GroundID: 2, TimeSlotID: 11, IsActive: true}, nil)

		res, err := svc.Create(ctx, admin, CreateReservationRequest{GroundID: 2, TimeSlotID: 11, UserID: &other})
		require.NoError(t, err)
		assert.Equal(t, 8, res.UserID)
	})
}

func TestService_CreateRollsBackWhenHandlerFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	bus := events.NewBus()
	bus.Subscribe(func(context.Context, events.ReservationStateChanged) error {
		return errors.New("wishlist sync failed")
	})
	committed := 0
	bus.SubscribeAfterCommit("count", func(context.Context, events.ReservationStateChanged) error {
		committed++
		return nil
	})

	svc := NewService(repo,
		groundStub{grounds: map[int]*ground.Ground{1: {ID: 1, Active: true}}},
		slotStub{slots: map[int]bool{10: true}},
		inlineTx{}, bus)

	repo.On("LockPair", ctx, 1, 10).Return(nil)
	repo.On("ActiveExists", ctx, 1, 10, 0).Return(false, nil)
	repo.On("Create", ctx, 7, 1, 10).Return(&Reservation{ID: 1, UserID: 7, GroundID: 1, TimeSlotID: 10, IsActive: true}, nil)

	_, err := svc.Create(ctx, member, CreateReservationRequest{GroundID: 1, TimeSlotID: 10})
	require.Error(t, err)
	assert.Zero(t, committed)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	active := func() *Reservation {
		return &Reservation{ID: 100, UserID: 7, GroundID: 1, TimeSlotID: 10, IsActive: true}
	}

	t.Run("owner cancels", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(active(), nil)
		repo.On("SetActive", ctx, 100, false).
			Return(&Reservation{ID: 100, UserID: 7, GroundID: 1, TimeSlotID: 10, IsActive: false}, nil)

		res, err := svc.Cancel(ctx, member, 100)
		require.NoError(t, err)
		assert.False(t, res.IsActive)
		require.Len(t, rec.committed, 1)
		assert.False(t, rec.committed[0].IsActive)
		assert.Equal(t, 1, rec.committed[0].GroundID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(active(), nil)

		_, err := svc.Cancel(ctx, auth.Caller{UserID: 99, Role: auth.RoleMember}, 100)
		assert.ErrorIs(t, err, apperr.Forbidden)
		repo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, rec.inTx)
	})

	t.Run("admin cancels any reservation", func(t *testing.T) {
		repo, _, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(active(), nil)
		repo.On("SetActive", ctx, 100, false).Return(&Reservation{ID: 100, UserID: 7, IsActive: false}, nil)

		_, err := svc.Cancel(ctx, admin, 100)
		require.NoError(t, err)
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		repo, rec, svc := newFixture(t)
		cancelled := active()
		cancelled.IsActive = false

		repo.On("GetForUpdate", ctx, 100).Return(cancelled, nil)

		res, err := svc.Cancel(ctx, member, 100)
		require.NoError(t, err)
		assert.False(t, res.IsActive)
		assert.Empty(t, rec.inTx)
		repo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing reservation", func(t *testing.T) {
		repo, _, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 5).Return(nil, ErrNotFound)

		_, err := svc.Cancel(ctx, member, 5)
		assert.ErrorIs(t, err, apperr.NotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	current := func() *Reservation {
		return &Reservation{ID: 100, UserID: 7, GroundID: 1, TimeSlotID: 10, IsActive: true}
	}
	intPtr := func(i int) *int { return &i }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("members are forbidden", func(t *testing.T) {
		repo, _, svc := newFixture(t)

		_, err := svc.Update(ctx, member, 100, UpdateReservationRequest{IsActive: boolPtr(false)})
		assert.ErrorIs(t, err, apperr.Forbidden)
		repo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("moving an active reservation frees the old pair", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(current(), nil)
		repo.On("LockPair", ctx, 2, 10).Return(nil)
		repo.On("ActiveExists", ctx, 2, 10, 100).Return(false, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(r *Reservation) bool { return r.GroundID == 2 })).
			Return(&Reservation{ID: 100, UserID: 7, GroundID: 2, TimeSlotID: 10, IsActive: true}, nil)

		res, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{GroundID: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, res.GroundID)

		require.Len(t, rec.inTx, 2)
		assert.Equal(t, 1, rec.inTx[0].GroundID)
		assert.False(t, rec.inTx[0].IsActive)
		assert.Equal(t, 2, rec.inTx[1].GroundID)
		assert.True(t, rec.inTx[1].IsActive)
	})

	t.Run("moving onto a held pair conflicts", func(t *testing.T) {
		repo, rec, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(current(), nil)
		repo.On("LockPair", ctx, 1, 11).Return(nil)
		repo.On("ActiveExists", ctx, 1, 11, 100).Return(true, nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{TimeSlotID: intPtr(11)})
		assert.ErrorIs(t, err, apperr.SlotAlreadyBooked)
		assert.Empty(t, rec.inTx)
	})

	t.Run("reactivation checks the pair", func(t *testing.T) {
		repo, rec, svc := newFixture(t)
		cancelled := current()
		cancelled.IsActive = false

		repo.On("GetForUpdate", ctx, 100).Return(cancelled, nil)
		repo.On("LockPair", ctx, 1, 10).Return(nil)
		repo.On("ActiveExists", ctx, 1, 10, 100).Return(false, nil)
		repo.On("Update", ctx, mock.Anything).Return(current(), nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{IsActive: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, rec.inTx, 1)
		assert.True(t, rec.inTx[0].IsActive)
	})

	t.Run("reactivation on an inactive ground is rejected", func(t *testing.T) {
		repo, rec, svc := newFixture(t)
		cancelled := current()
		cancelled.GroundID = 3
		cancelled.IsActive = false

		repo.On("GetForUpdate", ctx, 100).Return(cancelled, nil)
		repo.On("LockPair", ctx, 3, 10).Return(nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{IsActive: boolPtr(true)})
		assert.ErrorIs(t, err, ground.ErrInactive)
		assert.ErrorIs(t, err, apperr.InvalidInput)
		assert.Empty(t, rec.inTx)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("moving a cancelled reservation to an inactive ground is allowed", func(t *testing.T) {
		repo, rec, svc := newFixture(t)
		cancelled := current()
		cancelled.IsActive = false

		repo.On("GetForUpdate", ctx, 100).Return(cancelled, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(r *Reservation) bool { return r.GroundID == 3 && !r.IsActive })).
			Return(&Reservation{ID: 100, UserID: 7, GroundID: 3, TimeSlotID: 10}, nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{GroundID: intPtr(3)})
		require.NoError(t, err)
		assert.Empty(t, rec.inTx)
		repo.AssertNotCalled(t, "LockPair", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deactivation emits a single inactive event", func(t *testing.T) {
		repo, rec, svc := newFixture(t)
		after := current()
		after.IsActive = false

		repo.On("GetForUpdate", ctx, 100).Return(current(), nil)
		repo.On("Update", ctx, mock.Anything).Return(after, nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{IsActive: boolPtr(false)})
		require.NoError(t, err)
		require.Len(t, rec.inTx, 1)
		assert.False(t, rec.inTx[0].IsActive)
		repo.AssertNotCalled(t, "LockPair", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown target slot", func(t *testing.T) {
		repo, _, svc := newFixture(t)

		repo.On("GetForUpdate", ctx, 100).Return(current(), nil)
		repo.On("LockPair", ctx, 1, 77).Return(nil)

		_, err := svc.Update(ctx, admin, 100, UpdateReservationRequest{TimeSlotID: intPtr(77)})
		assert.ErrorIs(t, err, apperr.NotFound)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newFixture(t)

	repo.On("GetByID", ctx, 100).Return(&Reservation{ID: 100, UserID: 7}, nil)

	_, err := svc.Get(ctx, member, 100)
	require.NoError(t, err)

	_, err = svc.Get(ctx, auth.Caller{UserID: 8, Role: auth.RoleMember}, 100)
	assert.ErrorIs(t, err, apperr.Forbidden)
}
