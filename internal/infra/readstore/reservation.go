package readstore

import (
	"context"
	"time"

	"fieldserve/internal/infra"
	"fieldserve/internal/infra/db"
	"fieldserve/internal/pkg/pgconv"
	"fieldserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

// Party names and the service name are denormalized into the projection;
// payment amounts and the review flag are aggregated per row so derived
// fields never live on the reservation itself.
const reservationViewSQL = `
SELECT r.id,
       r.customer_id,
       cu.first_name || ' ' || cu.last_name AS customer_name,
       r.technician_id,
       tu.first_name || ' ' || tu.last_name AS technician_name,
       r.service_id,
       s.name AS service_name,
       r.reservation_date,
       r.service_date,
       r.start_time,
       r.end_time,
       r.address,
       r.status,
       r.created_at,
       r.updated_at,
       COALESCE(p.amounts, '{}') AS payment_amounts,
       EXISTS (SELECT 1 FROM reviews rv WHERE rv.reservation_id = r.id) AS has_review
FROM reservations r
JOIN users cu ON cu.id = r.customer_id
JOIN users tu ON tu.id = r.technician_id
JOIN services s ON s.id = r.service_id
LEFT JOIN LATERAL (
    SELECT array_agg(pm.amount_cents) AS amounts
    FROM payments pm
    WHERE pm.reservation_id = r.id
) p ON true
`

const reservationViewOrderSQL = ` ORDER BY r.service_date, r.start_time, r.created_at`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, reservationViewSQL+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row.Scan)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return view, nil
}

func (s *ReservationReadStore) FindAll(ctx context.Context) ([]*queries.ReservationView, error) {
	return s.queryViews(ctx, reservationViewSQL+reservationViewOrderSQL)
}

func (s *ReservationReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.ReservationView, error) {
	return s.queryViews(ctx, reservationViewSQL+` WHERE r.customer_id = $1`+reservationViewOrderSQL, customerID)
}

func (s *ReservationReadStore) FindByTechnicianID(ctx context.Context, technicianID uuid.UUID) ([]*queries.ReservationView, error) {
	return s.queryViews(ctx, reservationViewSQL+` WHERE r.technician_id = $1`+reservationViewOrderSQL, technicianID)
}

func (s *ReservationReadStore) FindByStatus(ctx context.Context, status string) ([]*queries.ReservationView, error) {
	return s.queryViews(ctx, reservationViewSQL+` WHERE r.status = $1`+reservationViewOrderSQL, status)
}

func (s *ReservationReadStore) FindByServiceDateRange(ctx context.Context, start, end time.Time) ([]*queries.ReservationView, error) {
	return s.queryViews(
		ctx,
		reservationViewSQL+` WHERE r.service_date BETWEEN $1 AND $2`+reservationViewOrderSQL,
		pgconv.DateToPgtype(start),
		pgconv.DateToPgtype(end),
	)
}

func (s *ReservationReadStore) queryViews(ctx context.Context, sql string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows.Scan)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return views, nil
}

func scanReservationView(scan func(dest ...any) error) (*queries.ReservationView, error) {
	var (
		src             queries.ViewSource
		reservationDate pgtype.Date
		serviceDate     pgtype.Date
		startTime       pgtype.Time
		endTime         pgtype.Time
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := scan(
		&src.ID,
		&src.CustomerID,
		&src.CustomerName,
		&src.TechnicianID,
		&src.TechnicianName,
		&src.ServiceID,
		&src.ServiceName,
		&reservationDate,
		&serviceDate,
		&startTime,
		&endTime,
		&src.Address,
		&src.Status,
		&createdAt,
		&updatedAt,
		&src.PaymentAmounts,
		&src.HasReview,
	)
	if err != nil {
		return nil, err
	}

	src.ReservationDate = pgconv.DateFromPgtype(reservationDate)
	src.ServiceDate = pgconv.DateFromPgtype(serviceDate)
	src.StartTime = pgconv.TimeOfDayFromPgtype(startTime).String()
	if end := pgconv.TimeOfDayPtrFromPgtype(endTime); end != nil {
		s := end.String()
		src.EndTime = &s
	}
	src.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	src.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return queries.BuildReservationView(src), nil
}
