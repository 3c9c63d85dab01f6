package service

import (
	"strings"

	"github.com/niksmo/product-categories/internal/core/domain"
)

// Filter returns the products that satisfy every active criterion, in their
// original order.
//
// A selected user keeps only products whose owner has that id; products
// without an owner never match. A non-empty query keeps only products whose
// name contains it, ignoring case. The query is not trimmed.
func Filter(
	products []domain.EnrichedProduct, c domain.Criteria,
) []domain.EnrichedProduct {
	userID, userSelected := c.SelectedUser()
	query := strings.ToLower(c.Query)

	out := make([]domain.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if userSelected && !ownedBy(p, userID) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func ownedBy(p domain.EnrichedProduct, userID int) bool {
	return p.Owner != nil && p.Owner.ID == userID
}
