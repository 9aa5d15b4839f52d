package postgres

import (
	"slices"

	"backoffice/internal/domain/entity"
)

// Sort columns accepted from pagination parameters. Anything else falls back
// to created_at so user input never reaches the ORDER BY clause raw.
var (
	propertySortColumns = []string{"created_at", "updated_at", "price", "status", "reference"}
	leadSortColumns     = []string{"created_at", "updated_at", "status", "name", "source"}
)

func orderClause(page entity.ListPage, allowed []string) string {
	column := page.SortBy
	if !slices.Contains(allowed, column) {
		column = "created_at"
	}

	direction := "desc"
	if page.SortDir == "asc" {
		direction = "asc"
	}

	return column + " " + direction
}
