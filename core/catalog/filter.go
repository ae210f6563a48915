package catalog

import "github.com/ericnguyen1274/Customer---App/core"

// Named is anything listed with a display name.
type Named interface {
	GetName() string
}

// FilterByName keeps the items whose name contains query, ignoring case.
// An empty query keeps everything.
func FilterByName[T Named](items []T, query string) []T {
	if query == "" {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if core.ContainsFold(item.GetName(), query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ResolveCategoryName returns the display name of the category with categoryID,
// or UnknownCategory when none matches.
func ResolveCategoryName(categories []Category, categoryID int) string {
	for _, cat := range categories {
		if cat.CategoryID.Int() == categoryID {
			return cat.DisplayName()
		}
	}
	return UnknownCategory
}

// matchesTerm reports whether the course name or description contains term, ignoring case.
func matchesTerm(c Course, term string) bool {
	return core.ContainsFold(c.Name, term) || core.ContainsFold(c.Description, term)
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
