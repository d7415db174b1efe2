package repository

import (
	"context"
	"errors"

	"fieldserve/internal/domain/reservation"
	"fieldserve/internal/infra"
	"fieldserve/internal/infra/db"
	"fieldserve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const insertReservationSQL = `
INSERT INTO reservations (
    id, customer_id, technician_id, service_id,
    reservation_date, service_date, start_time, end_time,
    address, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func (r *ReservationRepository) Insert(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	_, err := dbtx.Exec(ctx, insertReservationSQL,
		res.ID(),
		res.CustomerID(),
		res.Offering().TechnicianID,
		res.Offering().ServiceID,
		pgconv.DateToPgtype(res.ReservationDate()),
		pgconv.DateToPgtype(res.ServiceDate()),
		pgconv.TimeOfDayToPgtype(res.StartTime()),
		pgconv.TimeOfDayPtrToPgtype(res.EndTime()),
		res.Address().String(),
		string(res.Status()),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err, classifyPgError(err))
	}
	return nil
}

const updateReservationSQL = `
UPDATE reservations
SET service_date = $2,
    start_time   = $3,
    end_time     = $4,
    address      = $5,
    status       = $6,
    updated_at   = $7
WHERE id = $1
`

func (r *ReservationRepository) Update(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	tag, err := dbtx.Exec(ctx, updateReservationSQL,
		res.ID(),
		pgconv.DateToPgtype(res.ServiceDate()),
		pgconv.TimeOfDayToPgtype(res.StartTime()),
		pgconv.TimeOfDayPtrToPgtype(res.EndTime()),
		res.Address().String(),
		string(res.Status()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err, classifyPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const findReservationForUpdateSQL = `
SELECT id, customer_id, technician_id, service_id,
       reservation_date, service_date, start_time, end_time,
       address, status, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, customerID, technicianID, serviceID uuid.UUID
		reservationDate, serviceDate               pgtype.Date
		startTime, endTime                         pgtype.Time
		address, status                            string
		createdAt, updatedAt                       pgtype.Timestamptz
	)

	row := dbtx.QueryRow(ctx, findReservationForUpdateSQL, id)
	err := row.Scan(
		&resID, &customerID, &technicianID, &serviceID,
		&reservationDate, &serviceDate, &startTime, &endTime,
		&address, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	addr, err := reservation.NewAddress(address)
	if err != nil {
		return nil, infra.WrapRepoErr("stored address is invalid", err)
	}
	st, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored status is invalid", err)
	}

	return reservation.ReconstructReservation(
		resID,
		customerID,
		reservation.Offering{TechnicianID: technicianID, ServiceID: serviceID},
		pgconv.DateFromPgtype(reservationDate),
		pgconv.DateFromPgtype(serviceDate),
		pgconv.TimeOfDayFromPgtype(startTime),
		pgconv.TimeOfDayPtrFromPgtype(endTime),
		addr,
		st,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func classifyPgError(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		return infra.KindDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return infra.KindForeignKeyViolated
	default:
		return infra.KindDBFailure
	}
}
