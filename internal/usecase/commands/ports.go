package commands

import (
	"context"

	"fieldserve/internal/domain/reservation"
	"fieldserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// PartyResolver resolves externally owned party records. Both lookups fail
// with a NotFound kind when the reference is unknown.
type PartyResolver interface {
	CustomerByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error)
	OfferingByID(ctx context.Context, technicianID, serviceID uuid.UUID) (*shared.OfferingSnapshot, error)
}

// EventSink accepts lifecycle events for asynchronous fan-out to the
// notification and audit subsystems. Emission is fire-and-forget: failures
// are the sink's to log, never the caller's.
type EventSink interface {
	Publish(ctx context.Context, event reservation.Event) error
}
