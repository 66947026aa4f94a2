package persistence

import (
	"strings"

	"github.com/camposanto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering from a shared.Filter. Search
// terms are matched by the caller against its own columns; this helper only
// handles the common page/order mechanics.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}
