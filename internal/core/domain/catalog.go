package domain

import "time"

type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

type (
	User struct {
		ID   int
		Name string
		Sex  Sex
	}

	Category struct {
		ID      int
		Title   string
		Icon    string
		OwnerID int
	}

	Product struct {
		ID         int
		Name       string
		CategoryID int
	}
)

// An EnrichedProduct is a [Product] with its category and the category owner
// resolved. Category and Owner are nil when the lookup found nothing.
type EnrichedProduct struct {
	ID         int
	Name       string
	CategoryID int
	Category   *Category
	Owner      *User
}

// Fixtures holds the three record sets the catalogue is built from.
type Fixtures struct {
	Users      []User
	Categories []Category
	Products   []Product
}

type CatalogView struct {
	Users      []User
	Categories []Category
	Products   []EnrichedProduct
	Criteria   Criteria
}

type SearchEvent struct {
	Criteria Criteria
	Results  int
	At       time.Time
}
