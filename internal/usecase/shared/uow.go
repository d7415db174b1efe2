package shared

import (
	"context"

	"fieldserve/internal/domain/reservation"
	"fieldserve/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	DB() db.DBTX
}

type ReservationRepository interface {
	Insert(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
	Update(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// FindByIDForUpdate locks the row for the remainder of the transaction.
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
}
