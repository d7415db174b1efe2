package queries

import (
	"time"

	"github.com/google/uuid"
)

// ViewSource is a raw reservation row plus its owned collections, before
// derived fields are computed.
type ViewSource struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	CustomerName    string
	TechnicianID    uuid.UUID
	TechnicianName  string
	ServiceID       uuid.UUID
	ServiceName     string
	ReservationDate time.Time
	ServiceDate     time.Time
	StartTime       string
	EndTime         *string
	Address         string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PaymentAmounts  []*int64
	HasReview       bool
}

// BuildReservationView renders the external projection. Derived fields are
// computed here each time instead of being stored on the entity: the total
// is the sum of non-null payment amounts (zero when none), and HasReview
// reflects whether a review reference is attached.
func BuildReservationView(src ViewSource) *ReservationView {
	return &ReservationView{
		ID:               src.ID,
		CustomerID:       src.CustomerID,
		CustomerName:     src.CustomerName,
		TechnicianID:     src.TechnicianID,
		TechnicianName:   src.TechnicianName,
		ServiceID:        src.ServiceID,
		ServiceName:      src.ServiceName,
		ReservationDate:  src.ReservationDate,
		ServiceDate:      src.ServiceDate,
		StartTime:        src.StartTime,
		EndTime:          src.EndTime,
		Address:          src.Address,
		Status:           src.Status,
		CreatedAt:        src.CreatedAt,
		UpdatedAt:        src.UpdatedAt,
		TotalAmountCents: sumPaymentAmounts(src.PaymentAmounts),
		HasReview:        src.HasReview,
	}
}

func sumPaymentAmounts(amounts []*int64) int64 {
	var total int64
	for _, a := range amounts {
		if a != nil {
			total += *a
		}
	}
	return total
}
