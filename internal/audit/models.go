package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded on the registry audit trail.
const (
	ActionPersonCreated = "person.created"
	ActionPersonUpdated = "person.updated"
	ActionPersonDeleted = "person.deleted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	PersonID  uuid.UUID `json:"person_id"`
	RequestID string    `json:"request_id,omitempty"`
	Summary   string    `json:"summary,omitempty"`
}
