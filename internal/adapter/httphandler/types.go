package httphandler

import "github.com/niksmo/product-categories/internal/core/domain"

type (
	Product struct {
		ID         int       `json:"id"`
		Name       string    `json:"name"`
		CategoryID int       `json:"category_id"`
		Category   *Category `json:"category"`
		Owner      *User     `json:"owner"`
	}

	Category struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Icon    string `json:"icon"`
		OwnerID int    `json:"owner_id"`
	}

	User struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Sex  string `json:"sex"`
	}
)

func fromDomain(ps []domain.EnrichedProduct) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{ID: p.ID, Name: p.Name, CategoryID: p.CategoryID}
		if c := p.Category; c != nil {
			out[i].Category = &Category{
				ID: c.ID, Title: c.Title, Icon: c.Icon, OwnerID: c.OwnerID,
			}
		}
		if u := p.Owner; u != nil {
			out[i].Owner = &User{ID: u.ID, Name: u.Name, Sex: string(u.Sex)}
		}
	}
	return out
}
