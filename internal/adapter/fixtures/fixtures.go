// Package fixtures loads the catalogue record sets from YAML.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var embedded []byte

var _ port.FixturesLoader = (*YAMLLoader)(nil)

type (
	document struct {
		Users      []user     `yaml:"users"`
		Categories []category `yaml:"categories"`
		Products   []product  `yaml:"products"`
	}

	user struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
		Sex  string `yaml:"sex"`
	}

	category struct {
		ID      int    `yaml:"id"`
		Title   string `yaml:"title"`
		Icon    string `yaml:"icon"`
		OwnerID int    `yaml:"owner_id"`
	}

	product struct {
		ID         int    `yaml:"id"`
		Name       string `yaml:"name"`
		CategoryID int    `yaml:"category_id"`
	}
)

// A YAMLLoader reads fixtures from a YAML document.
type YAMLLoader struct {
	open func() (io.ReadCloser, error)
	name string
}

// NewEmbedded returns a loader over the fixtures compiled into the binary.
func NewEmbedded() YAMLLoader {
	return YAMLLoader{
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(embedded)), nil
		},
		name: "embedded",
	}
}

func NewFile(path string) YAMLLoader {
	return YAMLLoader{
		open: func() (io.ReadCloser, error) { return os.Open(path) },
		name: path,
	}
}

func (l YAMLLoader) LoadFixtures(ctx context.Context) (domain.Fixtures, error) {
	const op = "YAMLLoader.LoadFixtures"

	if err := ctx.Err(); err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: %w", op, err)
	}

	r, err := l.open()
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: %w", op, err)
	}
	defer r.Close()

	f, err := Decode(r)
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: %s: %w", op, l.name, err)
	}
	return f, nil
}

// Decode parses a fixtures document and validates it.
func Decode(r io.Reader) (domain.Fixtures, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return domain.Fixtures{}, err
	}

	f, err := doc.toDomain()
	if err != nil {
		return domain.Fixtures{}, err
	}

	if err := f.Validate(); err != nil {
		return domain.Fixtures{}, err
	}
	return f, nil
}

func (d document) toDomain() (f domain.Fixtures, err error) {
	f.Users = make([]domain.User, len(d.Users))
	for i, u := range d.Users {
		sex := domain.Sex(u.Sex)
		if sex != domain.SexMale && sex != domain.SexFemale {
			return domain.Fixtures{}, fmt.Errorf(
				"user %d: invalid sex %q", u.ID, u.Sex,
			)
		}
		f.Users[i] = domain.User{ID: u.ID, Name: u.Name, Sex: sex}
	}

	f.Categories = make([]domain.Category, len(d.Categories))
	for i, c := range d.Categories {
		f.Categories[i] = domain.Category{
			ID: c.ID, Title: c.Title, Icon: c.Icon, OwnerID: c.OwnerID,
		}
	}

	f.Products = make([]domain.Product, len(d.Products))
	for i, p := range d.Products {
		f.Products[i] = domain.Product{
			ID: p.ID, Name: p.Name, CategoryID: p.CategoryID,
		}
	}
	return f, nil
}
