package readstore

import (
	"context"

	"fieldserve/internal/infra"
	"fieldserve/internal/infra/db"
	"fieldserve/internal/pkg/pgconv"
	"fieldserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// PartyReadStore resolves customer and technician/service references for
// the write side. Parties are owned by the identity subsystem, so only
// snapshots ever cross into this module.
type PartyReadStore struct {
	db db.DBTX
}

func NewPartyReadStore(dbtx db.DBTX) *PartyReadStore {
	return &PartyReadStore{db: dbtx}
}

const customerByIDSQL = `
SELECT id, first_name, last_name, email, phone
FROM users
WHERE id = $1
`

func (s *PartyReadStore) CustomerByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	var snap shared.CustomerSnapshot
	row := s.db.QueryRow(ctx, customerByIDSQL, id)
	err := row.Scan(&snap.ID, &snap.FirstName, &snap.LastName, &snap.Email, &snap.Phone)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}
	return &snap, nil
}

const offeringByIDSQL = `
SELECT ts.technician_id, ts.service_id, s.name,
       u.first_name, u.last_name, u.email, u.phone
FROM technician_services ts
JOIN users u ON u.id = ts.technician_id
JOIN services s ON s.id = ts.service_id
WHERE ts.technician_id = $1 AND ts.service_id = $2
`

func (s *PartyReadStore) OfferingByID(ctx context.Context, technicianID, serviceID uuid.UUID) (*shared.OfferingSnapshot, error) {
	var snap shared.OfferingSnapshot
	row := s.db.QueryRow(ctx, offeringByIDSQL, technicianID, serviceID)
	err := row.Scan(
		&snap.TechnicianID,
		&snap.ServiceID,
		&snap.ServiceName,
		&snap.TechnicianFirstName,
		&snap.TechnicianLastName,
		&snap.TechnicianEmail,
		&snap.TechnicianPhone,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offering", err)
	}
	return &snap, nil
}
