package core

import "strings"

// defaultCategories are offered when the backend has no matching category yet.
var defaultCategories = map[Kind][]string{
	Expense: {
		"Food & Drink",
		"Shopping",
		"Housing",
		"Travel",
		"Entertainment",
		"Health",
		"Others",
	},
	Income: {"Salary", "Freelance", "Gift", "Investment", "Others"},
}

// FilterByKind returns the categories scoped to the given kind.
func FilterByKind(categories []Category, kind Kind) []Category {
	var out []Category
	for _, c := range categories {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// SuggestedNames returns the backend category names for the kind followed by
// the built-in defaults that are not already present, compared
// case-insensitively.
func SuggestedNames(kind Kind, known []Category) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, c := range FilterByKind(known, kind) {
		names = append(names, c.Name)
		seen[strings.ToLower(c.Name)] = struct{}{}
	}
	for _, def := range defaultCategories[kind] {
		if _, ok := seen[strings.ToLower(def)]; ok {
			continue
		}
		names = append(names, def)
	}
	return names
}
