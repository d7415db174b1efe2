package request

import (
	"time"

	"fieldserve/internal/domain/reservation"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateReservationRequest struct {
	CustomerID   uuid.UUID `json:"customerId" binding:"required"`
	TechnicianID uuid.UUID `json:"technicianId" binding:"required"`
	ServiceID    uuid.UUID `json:"serviceId" binding:"required"`
	ServiceDate  string    `json:"serviceDate" binding:"required"`
	StartTime    string    `json:"startTime" binding:"required"`
	Address      string    `json:"address" binding:"required,max=255"`
}

// CreateReservationData carries the parsed domain values of a create request.
type CreateReservationData struct {
	ServiceDate time.Time
	StartTime   reservation.TimeOfDay
	Address     reservation.Address
}

func (r CreateReservationRequest) ToDomain() (CreateReservationData, error) {
	serviceDate, err := time.Parse(dateLayout, r.ServiceDate)
	if err != nil {
		return CreateReservationData{}, reservation.ErrInvalidDate
	}

	startTime, err := reservation.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return CreateReservationData{}, err
	}

	address, err := reservation.NewAddress(r.Address)
	if err != nil {
		return CreateReservationData{}, err
	}

	return CreateReservationData{
		ServiceDate: serviceDate,
		StartTime:   startTime,
		Address:     address,
	}, nil
}

type UpdateReservationRequest struct {
	ServiceDate *string `json:"serviceDate,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Address     *string `json:"address,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ToPatch parses only the fields present; absent fields stay nil so the
// entity leaves them untouched.
func (r UpdateReservationRequest) ToPatch() (reservation.Patch, error) {
	var patch reservation.Patch

	if r.ServiceDate != nil {
		serviceDate, err := time.Parse(dateLayout, *r.ServiceDate)
		if err != nil {
			return reservation.Patch{}, reservation.ErrInvalidDate
		}
		patch.ServiceDate = &serviceDate
	}

	if r.StartTime != nil {
		startTime, err := reservation.ParseTimeOfDay(*r.StartTime)
		if err != nil {
			return reservation.Patch{}, err
		}
		patch.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := reservation.ParseTimeOfDay(*r.EndTime)
		if err != nil {
			return reservation.Patch{}, err
		}
		patch.EndTime = &endTime
	}

	if r.Address != nil {
		address, err := reservation.NewAddress(*r.Address)
		if err != nil {
			return reservation.Patch{}, err
		}
		patch.Address = &address
	}

	if r.Status != nil {
		status, err := reservation.ParseStatus(*r.Status)
		if err != nil {
			return reservation.Patch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}
