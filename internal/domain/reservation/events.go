package reservation

import "github.com/google/uuid"

// Lifecycle events are immutable records describing a committed state
// change, consumed asynchronously by notification and audit subsystems.
// Cancellation deliberately emits nothing.
type Event interface {
	Kind() string
}

type CreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	TechnicianID    uuid.UUID `json:"technician_id"`
	CustomerEmail   string    `json:"customer_email"`
	TechnicianEmail string    `json:"technician_email"`
	ServiceName     string    `json:"service_name"`
	ServiceDate     string    `json:"service_date"`
}

func (CreatedEvent) Kind() string { return "reservation.created" }

type ConfirmedEvent struct {
	ReservationID  uuid.UUID `json:"reservation_id"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  string    `json:"customer_phone"`
	TechnicianName string    `json:"technician_name"`
	ServiceDate    string    `json:"service_date"`
}

func (ConfirmedEvent) Kind() string { return "reservation.confirmed" }

type CompletedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	TechnicianID  uuid.UUID `json:"technician_id"`
	CustomerEmail string    `json:"customer_email"`
}

func (CompletedEvent) Kind() string { return "reservation.completed" }
