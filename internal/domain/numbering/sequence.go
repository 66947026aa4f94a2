package numbering

import (
	"fmt"
	"time"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SequenceCounter is one issued number in the per-tenant, per-year document
// numbering run. Each allocation inserts a new row; uniqueness of
// (tenant, year, number) is enforced by the storage layer, and allocation
// happens under an exclusive row lock so concurrent transactions never
// observe the same maximum.
type SequenceCounter struct {
	shared.BaseEntity
	TenantID uuid.UUID `json:"tenant_id"`
	Year     int       `json:"year"`
	Number   int64     `json:"number"`
}

// NewSequenceCounter creates the counter row for an allocated number.
func NewSequenceCounter(tenantID uuid.UUID, year int, number int64) (*SequenceCounter, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "sequence tenant cannot be empty")
	}
	if year < 1900 {
		return nil, shared.NewValidationError("year", "sequence year is out of range")
	}
	if number < 1 {
		return nil, shared.NewValidationError("number", "sequence number must be positive")
	}
	return &SequenceCounter{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Year:       year,
		Number:     number,
	}, nil
}

// OwnerTenantID returns the owning tenant.
func (s *SequenceCounter) OwnerTenantID() uuid.UUID {
	return s.TenantID
}

// DocumentNumber returns the textual form referenced by printed documents.
func (s *SequenceCounter) DocumentNumber() string {
	return FormatDocumentNumber(s.Number, s.Year)
}

// FormatDocumentNumber renders a document number as "<sequence>/<year>",
// e.g. "7/2025".
func FormatDocumentNumber(number int64, year int) string {
	return fmt.Sprintf("%d/%d", number, year)
}

// CurrentYear returns the year used for new allocations.
func CurrentYear(now time.Time) int {
	return now.Year()
}
