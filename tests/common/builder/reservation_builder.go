//go:build unit

package builder

import (
	"time"

	domres "fieldserve/internal/domain/reservation"
	reqdto "fieldserve/internal/handler/dto/request"
	"fieldserve/internal/pkg/patch"
	"fieldserve/internal/usecase/queries"
	"fieldserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	CustomerName   string
	TechnicianID   uuid.UUID
	TechnicianName string
	ServiceID      uuid.UUID
	ServiceName    string
	ServiceDate    time.Time
	StartTime      string
	Address        string
	Status         string
	BookedAt       time.Time
	PaymentAmounts []*int64
	HasReview      bool
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:             uuid.New(),
		CustomerID:     uuid.New(),
		CustomerName:   "Dana Smith",
		TechnicianID:   uuid.New(),
		TechnicianName: "Alex Rivera",
		ServiceID:      uuid.New(),
		ServiceName:    "Boiler Inspection",
		ServiceDate:    now.AddDate(0, 0, 7),
		StartTime:      "10:30",
		Address:        "42 Elm Street",
		Status:         string(domres.StatusPending),
		BookedAt:       now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	startTime, err := domres.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return nil, err
	}
	address, err := domres.NewAddress(b.Address)
	if err != nil {
		return nil, err
	}
	return domres.NewReservation(
		b.CustomerID,
		domres.Offering{TechnicianID: b.TechnicianID, ServiceID: b.ServiceID},
		b.ServiceDate,
		startTime,
		address,
		b.BookedAt,
	)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CustomerID:   b.CustomerID,
		TechnicianID: b.TechnicianID,
		ServiceID:    b.ServiceID,
		ServiceDate:  b.ServiceDate.Format("2006-01-02"),
		StartTime:    b.StartTime,
		Address:      b.Address,
	}
}

func (b *ReservationBuilder) BuildUpdateRequestDTO(status *string) reqdto.UpdateReservationRequest {
	serviceDate := b.ServiceDate.Format("2006-01-02")
	startTime := b.StartTime
	address := b.Address
	return reqdto.UpdateReservationRequest{
		ServiceDate: &serviceDate,
		StartTime:   &startTime,
		Address:     &address,
		Status:      status,
	}
}

func (b *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return queries.BuildReservationView(b.BuildViewSource())
}

func (b *ReservationBuilder) BuildViewSource() queries.ViewSource {
	return queries.ViewSource{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		TechnicianID:    b.TechnicianID,
		TechnicianName:  b.TechnicianName,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ReservationDate: domres.DateOf(b.BookedAt),
		ServiceDate:     domres.DateOf(b.ServiceDate),
		StartTime:       b.StartTime,
		Address:         b.Address,
		Status:          b.Status,
		CreatedAt:       b.BookedAt,
		UpdatedAt:       b.BookedAt,
		PaymentAmounts:  b.PaymentAmounts,
		HasReview:       b.HasReview,
	}
}

func (b *ReservationBuilder) BuildCustomerSnapshot(email *string) *shared.CustomerSnapshot {
	return &shared.CustomerSnapshot{
		ID:        b.CustomerID,
		FirstName: "Dana",
		LastName:  "Smith",
		Email:     patch.Coalesce(email, "dana@example.com"),
		Phone:     "555-0142",
	}
}

func (b *ReservationBuilder) BuildOfferingSnapshot() *shared.OfferingSnapshot {
	return &shared.OfferingSnapshot{
		TechnicianID:        b.TechnicianID,
		ServiceID:           b.ServiceID,
		ServiceName:         b.ServiceName,
		TechnicianFirstName: "Alex",
		TechnicianLastName:  "Rivera",
		TechnicianEmail:     "alex@example.com",
		TechnicianPhone:     "555-0177",
	}
}
