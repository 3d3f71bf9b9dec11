package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// commonSortFields are the columns any list endpoint may sort by.
// OrderBy is interpolated into the query, so it must come from this
// allowlist, never from user input directly.
var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"stock":      true,
	"status":     true,
	"total":      true,
}

// validateSortField returns the field if allowlisted, or the default
func validateSortField(field, defaultField string) string {
	trimmed := strings.TrimSpace(field)
	if trimmed != "" && commonSortFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// validateSortOrder normalizes the direction to ASC or DESC
func validateSortOrder(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// applyFilter applies pagination and ordering to the query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, "created_at")
	return query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))
}
