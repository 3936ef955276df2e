package storage

import (
	"context"

	"github.com/louisbranch/thunderstone/internal/catalog"
	"github.com/louisbranch/thunderstone/internal/catalog/manifest"
	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// CardStore persists catalog cards. Position fixes the catalog order.
type CardStore interface {
	PutCard(ctx context.Context, card catalog.Card, position int) error
	GetCard(ctx context.Context, name string) (catalog.Card, error)
	ListCards(ctx context.Context) ([]catalog.Card, error)
	DeleteCard(ctx context.Context, name string) error
}

// SetStore persists the set manifest.
type SetStore interface {
	PutSet(ctx context.Context, set manifest.Set, position int) error
	ListSets(ctx context.Context) ([]manifest.Set, error)
	Manifest(ctx context.Context) (*manifest.Manifest, error)
	DeleteSet(ctx context.Context, name string) error
}

// CatalogStore combines the card and set stores.
type CatalogStore interface {
	CardStore
	SetStore
	// ReplaceCatalog atomically replaces every stored card and set. Slice
	// order becomes catalog and manifest order.
	ReplaceCatalog(ctx context.Context, cards []catalog.Card, sets []manifest.Set) error
	Close() error
}
