package service

import "github.com/niksmo/product-categories/internal/core/domain"

// Enrich resolves every product's category, and the category's owner, into
// an [domain.EnrichedProduct].
//
// The owner comes from the category's OwnerID. Lookups that find nothing
// leave the field nil; a product without a category has no owner.
// The output has the same length and order as products.
func Enrich(
	products []domain.Product,
	categories []domain.Category,
	users []domain.User,
) []domain.EnrichedProduct {
	out := make([]domain.EnrichedProduct, len(products))
	for i, p := range products {
		category := findCategory(categories, p.CategoryID)

		var owner *domain.User
		if category != nil {
			owner = findUser(users, category.OwnerID)
		}

		out[i] = domain.EnrichedProduct{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Category:   category,
			Owner:      owner,
		}
	}
	return out
}

// findCategory returns a copy of the first category with the id, or nil.
func findCategory(categories []domain.Category, id int) *domain.Category {
	for _, c := range categories {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

func findUser(users []domain.User, id int) *domain.User {
	for _, u := range users {
		if u.ID == id {
			return &u
		}
	}
	return nil
}
