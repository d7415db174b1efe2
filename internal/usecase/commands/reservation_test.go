//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fieldserve/internal/domain/reservation"
	reqdto "fieldserve/internal/handler/dto/request"
	"fieldserve/internal/infra"
	"fieldserve/internal/infra/db"
	"fieldserve/internal/pkg/clock"
	"fieldserve/internal/pkg/errs"
	"fieldserve/internal/usecase/commands"
	"fieldserve/internal/usecase/shared"
	"fieldserve/tests/common/builder"
	queriesmock "fieldserve/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const eventWait = 2 * time.Second

// =============================================================================
// Fakes
// =============================================================================

type fakeReservationRepo struct {
	byID      map[uuid.UUID]*reservation.Reservation
	insertErr error
	updateErr error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[uuid.UUID]*reservation.Reservation)}
}

func (r *fakeReservationRepo) Insert(_ context.Context, _ db.DBTX, res *reservation.Reservation) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.byID[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, _ db.DBTX, res *reservation.Reservation) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	r.byID[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeReservationRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

type fakeTx struct {
	repo *fakeReservationRepo
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return t.repo }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeUoW struct {
	repo *fakeReservationRepo
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{repo: u.repo})
}

type offeringKey struct {
	technicianID uuid.UUID
	serviceID    uuid.UUID
}

type fakePartyResolver struct {
	customers map[uuid.UUID]*shared.CustomerSnapshot
	offerings map[offeringKey]*shared.OfferingSnapshot
}

func newFakePartyResolver() *fakePartyResolver {
	return &fakePartyResolver{
		customers: make(map[uuid.UUID]*shared.CustomerSnapshot),
		offerings: make(map[offeringKey]*shared.OfferingSnapshot),
	}
}

func (r *fakePartyResolver) CustomerByID(_ context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return customer, nil
}

func (r *fakePartyResolver) OfferingByID(_ context.Context, technicianID, serviceID uuid.UUID) (*shared.OfferingSnapshot, error) {
	offering, ok := r.offerings[offeringKey{technicianID, serviceID}]
	if !ok {
		return nil, infra.WrapRepoErr("offering not found", nil, infra.KindNotFound)
	}
	return offering, nil
}

// fakeEventSink captures events on a channel. Emission happens on a
// detached goroutine, so assertions receive with a timeout.
type fakeEventSink struct {
	events chan reservation.Event
}

func newFakeEventSink() *fakeEventSink {
	return &fakeEventSink{events: make(chan reservation.Event, 8)}
}

func (s *fakeEventSink) Publish(_ context.Context, event reservation.Event) error {
	s.events <- event
	return nil
}

// =============================================================================
// Suite
// =============================================================================

type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	repo        *fakeReservationRepo
	parties     *fakePartyResolver
	sink        *fakeEventSink
	mockQueries *queriesmock.MockReservationQueries
	clock       *clock.MockClock
	commands    commands.ReservationCommands
	builder     *builder.ReservationBuilder
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = newFakeReservationRepo()
	s.parties = newFakePartyResolver()
	s.sink = newFakeEventSink()
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	s.commands = commands.NewReservationCommands(
		&fakeUoW{repo: s.repo},
		s.parties,
		s.sink,
		s.mockQueries,
		s.clock,
	)

	s.builder = builder.NewReservationBuilder()
	s.parties.customers[s.builder.CustomerID] = s.builder.BuildCustomerSnapshot(nil)
	s.parties.offerings[offeringKey{s.builder.TechnicianID, s.builder.ServiceID}] = s.builder.BuildOfferingSnapshot()
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) seedReservation() *reservation.Reservation {
	entity, err := s.builder.BuildDomain()
	s.Require().NoError(err)
	s.repo.byID[entity.ID()] = entity
	return entity
}

func (s *ReservationCommandsTestSuite) expectView(id uuid.UUID) {
	view := s.builder.BuildViewQuery()
	view.ID = id
	s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).AnyTimes()
}

func (s *ReservationCommandsTestSuite) receiveEvent() reservation.Event {
	select {
	case event := <-s.sink.events:
		return event
	case <-time.After(eventWait):
		s.FailNow("expected a lifecycle event, got none")
		return nil
	}
}

func (s *ReservationCommandsTestSuite) assertNoEvent() {
	select {
	case event := <-s.sink.events:
		s.FailNowf("unexpected lifecycle event", "kind=%s", event.Kind())
	default:
	}
}

// =============================================================================
// Create
// =============================================================================

func (s *ReservationCommandsTestSuite) TestCreate() {
	s.Run("success: persists PENDING reservation and emits created event", func() {
		s.SetupTest()
		req := s.builder.BuildCreateRequestDTO()
		view := s.builder.BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil).Times(1)

		result, err := s.commands.Create(context.Background(), req)

		s.Require().NoError(err)
		s.Equal(view, result)
		s.Len(s.repo.byID, 1)
		for _, stored := range s.repo.byID {
			s.Equal(reservation.StatusPending, stored.Status())
		}

		event := s.receiveEvent()
		created, ok := event.(reservation.CreatedEvent)
		s.Require().True(ok, "expected CreatedEvent, got %T", event)
		s.Equal(s.builder.CustomerID, created.CustomerID)
		s.Equal(s.builder.TechnicianID, created.TechnicianID)
		s.Equal("dana@example.com", created.CustomerEmail)
		s.Equal("alex@example.com", created.TechnicianEmail)
		s.Equal(s.builder.ServiceName, created.ServiceName)
	})

	s.Run("error: unknown customer", func() {
		s.SetupTest()
		req := s.builder.BuildCreateRequestDTO()
		req.CustomerID = uuid.New()

		_, err := s.commands.Create(context.Background(), req)

		s.ErrorIs(err, errs.ErrCustomerNotFound)
		s.Empty(s.repo.byID)
		s.assertNoEvent()
	})

	s.Run("error: technician does not offer the service", func() {
		s.SetupTest()
		req := s.builder.BuildCreateRequestDTO()
		req.ServiceID = uuid.New()

		_, err := s.commands.Create(context.Background(), req)

		s.ErrorIs(err, errs.ErrOfferingNotFound)
		s.Empty(s.repo.byID)
		s.assertNoEvent()
	})

	s.Run("error: service date not in the future", func() {
		s.SetupTest()
		req := s.builder.BuildCreateRequestDTO()
		req.ServiceDate = s.clock.Now().Format("2006-01-02")

		_, err := s.commands.Create(context.Background(), req)

		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Empty(s.repo.byID)
		s.assertNoEvent()
	})

	s.Run("error: malformed start time", func() {
		s.SetupTest()
		req := s.builder.BuildCreateRequestDTO()
		req.StartTime = "half past ten"

		_, err := s.commands.Create(context.Background(), req)

		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Empty(s.repo.byID)
	})
}

// =============================================================================
// Confirm
// =============================================================================

func (s *ReservationCommandsTestSuite) TestConfirm() {
	s.Run("success: transitions to CONFIRMED and emits confirmation event", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())

		_, err := s.commands.Confirm(context.Background(), entity.ID())

		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed, s.repo.byID[entity.ID()].Status())

		event := s.receiveEvent()
		confirmed, ok := event.(reservation.ConfirmedEvent)
		s.Require().True(ok, "expected ConfirmedEvent, got %T", event)
		s.Equal(entity.ID(), confirmed.ReservationID)
		s.Equal("dana@example.com", confirmed.CustomerEmail)
		s.Equal("555-0142", confirmed.CustomerPhone)
		s.Equal("Alex Rivera", confirmed.TechnicianName)
	})

	s.Run("success: event skipped when party resolution fails", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())
		delete(s.parties.customers, s.builder.CustomerID)

		_, err := s.commands.Confirm(context.Background(), entity.ID())

		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed, s.repo.byID[entity.ID()].Status())
		s.assertNoEvent()
	})

	s.Run("error: unknown reservation", func() {
		s.SetupTest()
		_, err := s.commands.Confirm(context.Background(), uuid.New())

		s.ErrorIs(err, errs.ErrReservationNotFound)
		s.assertNoEvent()
	})

	s.Run("error: confirming a cancelled reservation", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.Require().NoError(entity.Cancel(s.clock.Now()))

		_, err := s.commands.Confirm(context.Background(), entity.ID())

		s.ErrorIs(err, errs.ErrInvalidTransition)
		s.assertNoEvent()
	})
}

// =============================================================================
// Cancel
// =============================================================================

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.Run("success: cancellation emits no event", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())

		_, err := s.commands.Cancel(context.Background(), entity.ID())

		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, s.repo.byID[entity.ID()].Status())
		s.assertNoEvent()
	})

	s.Run("error: cancelling twice", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())

		_, err := s.commands.Cancel(context.Background(), entity.ID())
		s.Require().NoError(err)

		_, err = s.commands.Cancel(context.Background(), entity.ID())
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})
}

// =============================================================================
// Complete
// =============================================================================

func (s *ReservationCommandsTestSuite) TestComplete() {
	s.Run("success: stamps end time and emits completion event", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.Require().NoError(entity.Confirm(s.clock.Now()))
		s.expectView(entity.ID())

		s.clock.Set(time.Date(2026, 3, 17, 14, 45, 0, 0, time.UTC))
		_, err := s.commands.Complete(context.Background(), entity.ID())

		s.Require().NoError(err)
		stored := s.repo.byID[entity.ID()]
		s.Equal(reservation.StatusCompleted, stored.Status())
		s.Require().NotNil(stored.EndTime())
		s.Equal("14:45", stored.EndTime().String())

		event := s.receiveEvent()
		completed, ok := event.(reservation.CompletedEvent)
		s.Require().True(ok, "expected CompletedEvent, got %T", event)
		s.Equal(entity.ID(), completed.ReservationID)
		s.Equal(s.builder.CustomerID, completed.CustomerID)
		s.Equal("dana@example.com", completed.CustomerEmail)
	})

	s.Run("error: completing a pending reservation", func() {
		s.SetupTest()
		entity := s.seedReservation()

		_, err := s.commands.Complete(context.Background(), entity.ID())

		s.ErrorIs(err, errs.ErrInvalidTransition)
		s.Equal(reservation.StatusPending, s.repo.byID[entity.ID()].Status())
		s.assertNoEvent()
	})
}

// =============================================================================
// Update
// =============================================================================

func (s *ReservationCommandsTestSuite) TestUpdate() {
	s.Run("success: sparse update touches only supplied fields", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())
		originalDate := entity.ServiceDate()

		address := "7 Oak Avenue"
		_, err := s.commands.Update(context.Background(), entity.ID(), requestWithAddress(address))

		s.Require().NoError(err)
		stored := s.repo.byID[entity.ID()]
		s.Equal(address, stored.Address().String())
		s.Equal(originalDate, stored.ServiceDate())
		s.Equal(reservation.StatusPending, stored.Status())
	})

	s.Run("success: status change through a legal edge", func() {
		s.SetupTest()
		entity := s.seedReservation()
		s.expectView(entity.ID())

		status := string(reservation.StatusNoShow)
		_, err := s.commands.Update(context.Background(), entity.ID(), requestWithStatus(status))

		s.Require().NoError(err)
		s.Equal(reservation.StatusNoShow, s.repo.byID[entity.ID()].Status())
	})

	s.Run("error: unknown status value", func() {
		s.SetupTest()
		entity := s.seedReservation()

		status := "ARCHIVED"
		_, err := s.commands.Update(context.Background(), entity.ID(), requestWithStatus(status))

		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("error: illegal status edge", func() {
		s.SetupTest()
		entity := s.seedReservation()

		status := string(reservation.StatusCompleted)
		_, err := s.commands.Update(context.Background(), entity.ID(), requestWithStatus(status))

		s.ErrorIs(err, errs.ErrInvalidTransition)
		s.Equal(reservation.StatusPending, s.repo.byID[entity.ID()].Status())
	})

	s.Run("error: unknown reservation", func() {
		s.SetupTest()
		address := "7 Oak Avenue"
		_, err := s.commands.Update(context.Background(), uuid.New(), requestWithAddress(address))

		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}

// =============================================================================
// Delete
// =============================================================================

func (s *ReservationCommandsTestSuite) TestDelete() {
	s.Run("success: removes the row", func() {
		s.SetupTest()
		entity := s.seedReservation()

		err := s.commands.Delete(context.Background(), entity.ID())

		s.Require().NoError(err)
		s.Empty(s.repo.byID)
	})

	s.Run("error: unknown reservation", func() {
		s.SetupTest()
		err := s.commands.Delete(context.Background(), uuid.New())

		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}

func requestWithAddress(address string) reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{Address: &address}
}

func requestWithStatus(status string) reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{Status: &status}
}
