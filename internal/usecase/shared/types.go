package shared

import "github.com/google/uuid"

// Write-side snapshots of externally owned party records.
type CustomerSnapshot struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c CustomerSnapshot) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

type OfferingSnapshot struct {
	TechnicianID        uuid.UUID
	ServiceID           uuid.UUID
	ServiceName         string
	TechnicianFirstName string
	TechnicianLastName  string
	TechnicianEmail     string
	TechnicianPhone     string
}

func (o OfferingSnapshot) TechnicianDisplayName() string {
	return o.TechnicianFirstName + " " + o.TechnicianLastName
}
