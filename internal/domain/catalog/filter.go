// Package catalog holds the in-memory product search used by every view of
// the catalog. All functions are pure: they never modify their input and
// keep the order of the products they are given.
package catalog

import (
	"strings"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

const (
	// AllCategories is the category value that disables the category filter.
	AllCategories = "all"

	// Uncategorized is shown instead of a blank category.
	Uncategorized = "uncategorized"
)

// Query combines the two optional filters. Empty fields are inactive.
type Query struct {
	Text     string
	Category string
}

// Filter returns the products that match both the text and the category
// filter. Text matches case-insensitively as a substring of the name, the
// description or the category. Category matches exactly unless it is empty
// or AllCategories.
func Filter(products []entity.Product, q Query) []entity.Product {
	text := strings.ToLower(q.Text)
	category := q.Category
	if category == AllCategories {
		category = ""
	}

	result := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesText(p entity.Product, lowerText string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerText) ||
		strings.Contains(strings.ToLower(p.Description), lowerText) ||
		strings.Contains(strings.ToLower(p.Category), lowerText)
}

// FindByQRCode returns the products whose QR code contains code. The match is
// a substring match, not equality: "123" finds 1234. A blank code finds
// nothing.
func FindByQRCode(products []entity.Product, code string) []entity.Product {
	code = strings.TrimSpace(code)
	if code == "" {
		return []entity.Product{}
	}

	result := make([]entity.Product, 0)
	for _, p := range products {
		if strings.Contains(p.QRCode.String(), code) {
			result = append(result, p)
		}
	}
	return result
}

// Categories returns AllCategories followed by the distinct raw category
// values in first-seen order. Blank values are kept as they are.
func Categories(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	result := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}
	return result
}

// DisplayCategories is Categories with blank values shown as Uncategorized,
// deduplicated after the substitution.
func DisplayCategories(products []entity.Product) []string {
	raw := Categories(products)
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, c := range raw {
		c = DisplayCategory(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}

// DisplayCategory maps a blank category to Uncategorized.
func DisplayCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return Uncategorized
	}
	return category
}
