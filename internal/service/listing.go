package service

import "github.com/agrox/fieldops/internal/pkg/apperror"

// Listing is an owner list. A module with no storage target yet lists as
// empty with ModuleUnavailable set instead of failing.
type Listing[T any] struct {
	Items             []T
	ModuleUnavailable bool
}

func newListing[T any](items []T, err error) (Listing[T], error) {
	if err != nil {
		if apperror.IsModuleUnavailable(err) {
			return Listing[T]{Items: []T{}, ModuleUnavailable: true}, nil
		}
		return Listing[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Items: items}, nil
}
