package domain

import (
	"errors"
	"fmt"
)

var ErrDuplicateID = errors.New("duplicate id")

// Validate reports identifiers that occur more than once within a record set.
//
// Foreign keys are not checked: dangling references are resolved to absent
// values by the join.
func (f Fixtures) Validate() error {
	var errs []error

	errs = append(errs, duplicates("user", f.Users, func(v User) int {
		return v.ID
	})...)
	errs = append(errs, duplicates("category", f.Categories, func(v Category) int {
		return v.ID
	})...)
	errs = append(errs, duplicates("product", f.Products, func(v Product) int {
		return v.ID
	})...)

	return errors.Join(errs...)
}

func duplicates[T any](kind string, vs []T, id func(T) int) (errs []error) {
	seen := make(map[int]struct{}, len(vs))
	for _, v := range vs {
		k := id(v)
		if _, ok := seen[k]; ok {
			errs = append(errs, fmt.Errorf("%s %d: %w", kind, k, ErrDuplicateID))
			continue
		}
		seen[k] = struct{}{}
	}
	return errs
}
