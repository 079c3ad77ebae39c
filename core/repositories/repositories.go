package repositories

import (
	"context"
	"errors"
)

var (
	ErrCorruptStorage = errors.New("stored data is corrupt")
	ErrStorageWrite   = errors.New("storage write failed")
)

// CollectionStore persists an ordered collection as a whole. Load returns the
// records in stored order; Save replaces everything previously stored.
//
// Load returns an empty, non-nil slice when nothing has been stored yet and an
// error wrapping ErrCorruptStorage when stored data cannot be decoded.
type CollectionStore[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}
