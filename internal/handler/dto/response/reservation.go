package response

import (
	"time"

	"fieldserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       uuid.UUID `json:"customerId"`
	CustomerName     string    `json:"customerName"`
	TechnicianID     uuid.UUID `json:"technicianId"`
	TechnicianName   string    `json:"technicianName"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	ReservationDate  string    `json:"reservationDate"`
	ServiceDate      string    `json:"serviceDate"`
	StartTime        string    `json:"startTime"`
	EndTime          *string   `json:"endTime,omitempty"`
	Address          string    `json:"address"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	HasReview        bool      `json:"hasReview"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               view.ID,
		CustomerID:       view.CustomerID,
		CustomerName:     view.CustomerName,
		TechnicianID:     view.TechnicianID,
		TechnicianName:   view.TechnicianName,
		ServiceID:        view.ServiceID,
		ServiceName:      view.ServiceName,
		ReservationDate:  view.ReservationDate.Format("2006-01-02"),
		ServiceDate:      view.ServiceDate.Format("2006-01-02"),
		StartTime:        view.StartTime,
		EndTime:          view.EndTime,
		Address:          view.Address,
		Status:           view.Status,
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
		TotalAmountCents: view.TotalAmountCents,
		HasReview:        view.HasReview,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	responses := make([]*ReservationResponse, len(views))
	for i, view := range views {
		responses[i] = FromReservationView(view)
	}
	return responses
}
