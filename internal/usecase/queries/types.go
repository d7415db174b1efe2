package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the externally visible projection of a reservation,
// including denormalized party names and derived financial/review fields.
type ReservationView struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       uuid.UUID `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	TechnicianID     uuid.UUID `json:"technician_id"`
	TechnicianName   string    `json:"technician_name"`
	ServiceID        uuid.UUID `json:"service_id"`
	ServiceName      string    `json:"service_name"`
	ReservationDate  time.Time `json:"reservation_date"`
	ServiceDate      time.Time `json:"service_date"`
	StartTime        string    `json:"start_time"`
	EndTime          *string   `json:"end_time,omitempty"`
	Address          string    `json:"address"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	HasReview        bool      `json:"has_review"`
}
