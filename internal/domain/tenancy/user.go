package tenancy

import (
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is an operator account belonging to a tenant. The tenant owner is
// always a master; additional users may carry the master flag as well.
type User struct {
	shared.BaseAggregateRoot
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Master   bool      `json:"master"`
	Active   bool      `json:"active"`
}

// NewUser creates a user under the given tenant.
func NewUser(tenantID uuid.UUID, name, email string, master bool) (*User, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "user tenant cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "user name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewValidationError("email", "user email cannot be empty")
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Name:              name,
		Email:             email,
		Master:            master,
		Active:            true,
	}, nil
}

// OwnerTenantID returns the tenant the user belongs to.
func (u *User) OwnerTenantID() uuid.UUID {
	return u.TenantID
}
