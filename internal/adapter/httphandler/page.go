package httphandler

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/niksmo/product-categories/internal/core/domain"
)

//go:embed templates/catalog.html
var templatesFS embed.FS

var catalogTmpl = template.Must(
	template.ParseFS(templatesFS, "templates/catalog.html"),
)

type (
	catalogPage struct {
		Users          []userLink
		Categories     []domain.Category
		Columns        []column
		Rows           []productRow
		Query          string
		SelectedUserID string
		AllUsersURL    string
		ClearQueryURL  string
		ResetURL       string
	}

	userLink struct {
		Name   string
		URL    string
		Active bool
	}

	// Sort icons are markup only, the table keeps the catalogue order.
	column struct {
		Title    string
		SortIcon string
	}

	productRow struct {
		ID         int
		Name       string
		Category   string
		Owner      string
		OwnerClass string
	}
)

var columns = []column{
	{"ID", "fa-sort"},
	{"Product", "fa-sort-down"},
	{"Category", "fa-sort-up"},
	{"User", "fa-sort"},
}

func renderCatalog(v domain.CatalogView) ([]byte, error) {
	var buf bytes.Buffer
	if err := catalogTmpl.Execute(&buf, newCatalogPage(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newCatalogPage(v domain.CatalogView) catalogPage {
	c := v.Criteria

	p := catalogPage{
		Categories:    v.Categories,
		Columns:       columns,
		Query:         c.Query,
		AllUsersURL:   criteriaURL(c.AllUsers()),
		ClearQueryURL: criteriaURL(c.ClearQuery()),
		ResetURL:      criteriaURL(c.Reset()),
	}

	if id, ok := c.SelectedUser(); ok {
		p.SelectedUserID = strconv.Itoa(id)
	}

	p.Users = make([]userLink, len(v.Users))
	for i, u := range v.Users {
		p.Users[i] = userLink{
			Name:   u.Name,
			URL:    criteriaURL(c.WithUser(u.ID)),
			Active: c.IsUserSelected(u.ID),
		}
	}

	p.Rows = make([]productRow, len(v.Products))
	for i, product := range v.Products {
		p.Rows[i] = newProductRow(product)
	}
	return p
}

func newProductRow(p domain.EnrichedProduct) productRow {
	row := productRow{ID: p.ID, Name: p.Name}
	if p.Category != nil {
		row.Category = p.Category.Icon + " - " + p.Category.Title
	}
	if p.Owner != nil {
		row.Owner = p.Owner.Name
		row.OwnerClass = ownerClass(p.Owner.Sex)
	}
	return row
}

func ownerClass(sex domain.Sex) string {
	if sex == domain.SexFemale {
		return "has-text-danger"
	}
	return "has-text-link"
}

// criteriaURL returns the page address that renders c.
func criteriaURL(c domain.Criteria) string {
	q := make(url.Values)
	if id, ok := c.SelectedUser(); ok {
		q.Set(userParam, strconv.Itoa(id))
	}
	if c.Query != "" {
		q.Set(queryParam, c.Query)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
