package pipeline

import (
	"github.com/theirongolddev/bburn/internal/model"
)

// FilterByYear returns entries recorded for year.
func FilterByYear(entries []model.Entry, year int) []model.Entry {
	var result []model.Entry
	for _, e := range entries {
		if e.Year == year {
			result = append(result, e)
		}
	}
	return result
}

// FilterByPeriod returns entries for year whose month falls in [from, to].
func FilterByPeriod(entries []model.Entry, year, from, to int) []model.Entry {
	var result []model.Entry
	for _, e := range entries {
		if e.Year == year && e.Month >= from && e.Month <= to {
			result = append(result, e)
		}
	}
	return result
}

// FilterByCategories returns entries whose category is in ids.
// An empty id list matches nothing.
func FilterByCategories(entries []model.Entry, ids []string) []model.Entry {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var result []model.Entry
	for _, e := range entries {
		if _, ok := set[e.CategoryID]; ok {
			result = append(result, e)
		}
	}
	return result
}

// FilterByGroup returns the categories belonging to g.
func FilterByGroup(categories []model.Category, g model.Group) []model.Category {
	var result []model.Category
	for _, c := range categories {
		if c.Group == g {
			result = append(result, c)
		}
	}
	return result
}

// CategoriesByID returns the subset of categories with the given ids, in config order.
func CategoriesByID(categories []model.Category, ids []string) []model.Category {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var result []model.Category
	for _, c := range categories {
		if _, ok := set[c.ID]; ok {
			result = append(result, c)
		}
	}
	return result
}
