package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fieldserve/internal/domain/reservation"
	reqdto "fieldserve/internal/handler/dto/request"
	"fieldserve/internal/infra"
	"fieldserve/internal/pkg/clock"
	"fieldserve/internal/pkg/errs"
	"fieldserve/internal/usecase/queries"
	"fieldserve/internal/usecase/shared"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

type ReservationCommands interface {
	Create(ctx context.Context, req reqdto.CreateReservationRequest) (*queries.ReservationView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error)
	Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Complete(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	parties            PartyResolver
	events             EventSink
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	parties PartyResolver,
	events EventSink,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		parties:            parties,
		events:             events,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

// Create allocates a PENDING reservation. Nothing is persisted and no event
// is emitted when any precondition fails.
func (c *reservationCommandsImpl) Create(ctx context.Context, req reqdto.CreateReservationRequest) (*queries.ReservationView, error) {
	customer, err := c.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	offering, err := c.resolveOffering(ctx, req.TechnicianID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	data, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	entity, err := reservation.NewReservation(
		customer.ID,
		reservation.Offering{TechnicianID: offering.TechnicianID, ServiceID: offering.ServiceID},
		data.ServiceDate,
		data.StartTime,
		data.Address,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Insert(ctx, tx.DB(), entity)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.emit(reservation.CreatedEvent{
		ReservationID:   entity.ID(),
		CustomerID:      customer.ID,
		TechnicianID:    offering.TechnicianID,
		CustomerEmail:   customer.Email,
		TechnicianEmail: offering.TechnicianEmail,
		ServiceName:     offering.ServiceName,
		ServiceDate:     entity.ServiceDate().Format("2006-01-02"),
	})

	return c.reservationQueries.GetByID(ctx, entity.ID())
}

// Update is the escape-hatch administrative path: only supplied fields are
// applied, and a supplied status must still be a legal transition.
func (c *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	_, err = c.mutate(ctx, id, func(entity *reservation.Reservation) error {
		return entity.ApplyPatch(patch, c.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return c.reservationQueries.GetByID(ctx, id)
}

func (c *reservationCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	entity, err := c.mutate(ctx, id, func(entity *reservation.Reservation) error {
		return entity.Confirm(c.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	if customer, offering, resolveErr := c.resolveParties(ctx, entity); resolveErr != nil {
		slog.Warn("skipping confirmation event, party resolution failed",
			"reservation_id", entity.ID(), "error", resolveErr.Error())
	} else {
		c.emit(reservation.ConfirmedEvent{
			ReservationID:  entity.ID(),
			CustomerEmail:  customer.Email,
			CustomerPhone:  customer.Phone,
			TechnicianName: offering.TechnicianDisplayName(),
			ServiceDate:    entity.ServiceDate().Format("2006-01-02"),
		})
	}

	return c.reservationQueries.GetByID(ctx, id)
}

// Cancel emits no event: cancellations have no notification contract.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	_, err := c.mutate(ctx, id, func(entity *reservation.Reservation) error {
		return entity.Cancel(c.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return c.reservationQueries.GetByID(ctx, id)
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	entity, err := c.mutate(ctx, id, func(entity *reservation.Reservation) error {
		return entity.Complete(c.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	if customer, resolveErr := c.resolveCustomer(ctx, entity.CustomerID()); resolveErr != nil {
		slog.Warn("skipping completion event, customer resolution failed",
			"reservation_id", entity.ID(), "error", resolveErr.Error())
	} else {
		c.emit(reservation.CompletedEvent{
			ReservationID: entity.ID(),
			CustomerID:    entity.CustomerID(),
			TechnicianID:  entity.Offering().TechnicianID,
			CustomerEmail: customer.Email,
		})
	}

	return c.reservationQueries.GetByID(ctx, id)
}

// Delete is a hard removal, bypassing the state machine.
func (c *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrReservationNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// mutate runs a single read-modify-write transaction against one
// reservation row, returning the post-mutation entity.
func (c *reservationCommandsImpl) mutate(
	ctx context.Context,
	id uuid.UUID,
	apply func(entity *reservation.Reservation) error,
) (*reservation.Reservation, error) {
	var entity *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		entity, err = tx.Reservations().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if err := apply(entity); err != nil {
			return err
		}
		return tx.Reservations().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrReservationNotFound
		case errors.Is(err, reservation.ErrInvalidTransition):
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		case errors.Is(err, reservation.ErrInvalidStatus):
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	return entity, nil
}

func (c *reservationCommandsImpl) resolveCustomer(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	customer, err := c.parties.CustomerByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, errs.Wrap(err, "failed to resolve customer")
	}
	return customer, nil
}

func (c *reservationCommandsImpl) resolveOffering(ctx context.Context, technicianID, serviceID uuid.UUID) (*shared.OfferingSnapshot, error) {
	offering, err := c.parties.OfferingByID(ctx, technicianID, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOfferingNotFound
		}
		return nil, errs.Wrap(err, "failed to resolve offering")
	}
	return offering, nil
}

func (c *reservationCommandsImpl) resolveParties(ctx context.Context, entity *reservation.Reservation) (*shared.CustomerSnapshot, *shared.OfferingSnapshot, error) {
	customer, err := c.resolveCustomer(ctx, entity.CustomerID())
	if err != nil {
		return nil, nil, err
	}
	offering, err := c.resolveOffering(ctx, entity.Offering().TechnicianID, entity.Offering().ServiceID)
	if err != nil {
		return nil, nil, err
	}
	return customer, offering, nil
}

// emit publishes after the mutation has committed; a failed publish is
// logged by the sink and never rolls anything back.
func (c *reservationCommandsImpl) emit(event reservation.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := c.events.Publish(ctx, event); err != nil {
			slog.Warn("failed to publish lifecycle event", "kind", event.Kind(), "error", err.Error())
		}
	}()
}
