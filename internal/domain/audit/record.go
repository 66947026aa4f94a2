// Package audit holds the immutable log of create/update/delete actions on
// tenant-scoped records.
package audit

import (
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action is what happened to the audited record.
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionChange Action = "CHANGE"
	ActionDelete Action = "DELETE"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionAdd, ActionChange, ActionDelete:
		return true
	}
	return false
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// Record is one immutable audit entry. Deletion attempts fail with
// ErrImmutableRecord at both the domain and repository level.
type Record struct {
	shared.BaseEntity
	TenantID   uuid.UUID  `json:"tenant_id"`
	UserID     *uuid.UUID `json:"user_id"`
	Action     Action     `json:"action"`
	EntityName string     `json:"entity_name"`
	EntityID   string     `json:"entity_id"`
	Summary    string     `json:"summary"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewRecord creates an audit entry attributed to the given tenant and user.
func NewRecord(tenantID uuid.UUID, userID *uuid.UUID, action Action, entityName, entityID, summary string) (*Record, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "audit tenant cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewValidationError("action", "unknown audit action")
	}
	if entityName == "" {
		return nil, shared.NewValidationError("entity_name", "audited entity name cannot be empty")
	}
	return &Record{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Summary:    summary,
		OccurredAt: time.Now(),
	}, nil
}

// OwnerTenantID returns the owning tenant.
func (r *Record) OwnerTenantID() uuid.UUID {
	return r.TenantID
}
