package queries

import (
	"context"
	"time"

	"fieldserve/internal/infra"
	"fieldserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReservationReadStore is the read side of the durable store. Each filter
// maps to a targeted lookup so cost stays proportional to the result set.
type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindAll(ctx context.Context) ([]*ReservationView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*ReservationView, error)
	FindByTechnicianID(ctx context.Context, technicianID uuid.UUID) ([]*ReservationView, error)
	FindByStatus(ctx context.Context, status string) ([]*ReservationView, error)
	FindByServiceDateRange(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context) ([]*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationView, error)
	ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]*ReservationView, error)
	ListByStatus(ctx context.Context, status string) ([]*ReservationView, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	views, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations")
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.store.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations by customer")
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.store.FindByTechnicianID(ctx, technicianID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations by technician")
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListByStatus(ctx context.Context, status string) ([]*ReservationView, error) {
	views, err := q.store.FindByStatus(ctx, status)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations by status")
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListByDateRange(ctx context.Context, start, end time.Time) ([]*ReservationView, error) {
	views, err := q.store.FindByServiceDateRange(ctx, start, end)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations by date range")
	}
	return views, nil
}
