package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyAddress      = errors.New("address must not be empty")
	ErrAddressTooLong    = errors.New("address exceeds maximum length")
	ErrInvalidTime       = errors.New("invalid time of day")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrPastServiceDate   = errors.New("service date must be in the future")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Offering identifies the technician/service pairing a reservation books.
type Offering struct {
	TechnicianID uuid.UUID
	ServiceID    uuid.UUID
}

type Reservation struct {
	id              uuid.UUID
	customerID      uuid.UUID
	offering        Offering
	reservationDate time.Time
	serviceDate     time.Time
	startTime       TimeOfDay
	endTime         *TimeOfDay
	address         Address
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation allocates a PENDING reservation booked at now. The service
// date must fall strictly after the booking date.
func NewReservation(
	customerID uuid.UUID,
	offering Offering,
	serviceDate time.Time,
	startTime TimeOfDay,
	address Address,
	now time.Time,
) (*Reservation, error) {
	bookedOn := DateOf(now)
	if !DateOf(serviceDate).After(bookedOn) {
		return nil, ErrPastServiceDate
	}

	return &Reservation{
		id:              uuid.New(),
		customerID:      customerID,
		offering:        offering,
		reservationDate: bookedOn,
		serviceDate:     DateOf(serviceDate),
		startTime:       startTime,
		address:         address,
		status:          StatusPending,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructReservation(
	id, customerID uuid.UUID,
	offering Offering,
	reservationDate, serviceDate time.Time,
	startTime TimeOfDay,
	endTime *TimeOfDay,
	address Address,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		customerID:      customerID,
		offering:        offering,
		reservationDate: reservationDate,
		serviceDate:     serviceDate,
		startTime:       startTime,
		endTime:         endTime,
		address:         address,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Reservation) Confirm(now time.Time) error {
	return r.transition(StatusConfirmed, now)
}

func (r *Reservation) Cancel(now time.Time) error {
	if r.status != StatusPending && r.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	return r.transition(StatusCancelled, now)
}

// Complete stamps the end time with the completion clock reading.
func (r *Reservation) Complete(now time.Time) error {
	if err := r.transition(StatusCompleted, now); err != nil {
		return err
	}
	end := TimeOfDayFrom(now)
	r.endTime = &end
	return nil
}

func (r *Reservation) transition(to Status, now time.Time) error {
	if !CanTransition(r.status, to) {
		return ErrInvalidTransition
	}
	r.status = to
	r.touch(now)
	return nil
}

// Patch carries the sparse field set of the administrative update. Nil
// fields are left untouched.
type Patch struct {
	ServiceDate *time.Time
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
	Address     *Address
	Status      *Status
}

// ApplyPatch validates a supplied status against the transition table
// (writing the current status back is a no-op) before applying any field,
// so a rejected patch leaves the entity unchanged.
func (r *Reservation) ApplyPatch(p Patch, now time.Time) error {
	if p.Status != nil && *p.Status != r.status {
		if !p.Status.IsValid() {
			return ErrInvalidStatus
		}
		if !CanTransition(r.status, *p.Status) {
			return ErrInvalidTransition
		}
	}

	if p.ServiceDate != nil {
		r.serviceDate = DateOf(*p.ServiceDate)
	}
	if p.StartTime != nil {
		r.startTime = *p.StartTime
	}
	if p.EndTime != nil {
		end := *p.EndTime
		r.endTime = &end
	}
	if p.Address != nil {
		r.address = *p.Address
	}
	if p.Status != nil {
		r.status = *p.Status
	}
	r.touch(now)
	return nil
}

func (r *Reservation) touch(now time.Time) {
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) CustomerID() uuid.UUID      { return r.customerID }
func (r *Reservation) Offering() Offering         { return r.offering }
func (r *Reservation) ReservationDate() time.Time { return r.reservationDate }
func (r *Reservation) ServiceDate() time.Time     { return r.serviceDate }
func (r *Reservation) StartTime() TimeOfDay       { return r.startTime }
func (r *Reservation) EndTime() *TimeOfDay        { return r.endTime }
func (r *Reservation) Address() Address           { return r.address }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
