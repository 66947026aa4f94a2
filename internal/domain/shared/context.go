package shared

import "github.com/google/uuid"

// OperationContext carries the ambient tenant/cemetery selection made by the
// session layer. It is passed explicitly into every core operation; the core
// never reads it from a global.
type OperationContext struct {
	TenantID   uuid.UUID
	CemeteryID uuid.UUID
	UserID     *uuid.UUID
}

// NewOperationContext builds a context for a tenant-wide operation.
func NewOperationContext(tenantID uuid.UUID) OperationContext {
	return OperationContext{TenantID: tenantID}
}

// WithCemetery returns a copy scoped to the given cemetery.
func (o OperationContext) WithCemetery(cemeteryID uuid.UUID) OperationContext {
	o.CemeteryID = cemeteryID
	return o
}

// WithUser returns a copy attributed to the acting user.
func (o OperationContext) WithUser(userID uuid.UUID) OperationContext {
	o.UserID = &userID
	return o
}

// HasTenant reports whether a tenant was resolved for this operation.
func (o OperationContext) HasTenant() bool {
	return o.TenantID != uuid.Nil
}
