package storer

import (
	"errors"
	"fmt"
)

var (
	ErrStore              = errors.New("store error")
	ErrCollectionNotFound = fmt.Errorf("%w: collection not found", ErrStore)
	ErrDimensionMismatch  = fmt.Errorf("%w: vector dimension mismatch", ErrStore)
)

func DimensionMismatch(collection string, want int, got int) error {
	return fmt.Errorf("%w: collection %q wants %d, got %d", ErrDimensionMismatch, collection, want, got)
}

func CollectionNotFound(collection string) error {
	return fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
}
