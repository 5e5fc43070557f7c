package fetcher

import (
	"context"
	"errors"
)

var ErrFetch = errors.New("fetch failed")

// Fetcher returns the plain text found at a source location.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
