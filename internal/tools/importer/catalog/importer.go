package catalogimporter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/louisbranch/thunderstone/internal/catalog"
	"github.com/louisbranch/thunderstone/internal/catalog/manifest"
	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"github.com/louisbranch/thunderstone/internal/storage"
)

// validate builds the catalog and checks every card is importable and every
// set references cards that exist.
func validate(cards []catalog.Card, sets *manifest.Manifest) (*catalog.Catalog, error) {
	if len(cards) == 0 {
		return nil, apperrors.New(apperrors.CodeCatalogUnavailable, "catalog has no cards")
	}
	cat, err := catalog.New(cards)
	if err != nil {
		return nil, err
	}
	for i, card := range cat.Cards() {
		if !card.Category.Known() {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogUnknownCategory, "unknown card category", map[string]string{
				"index":    strconv.Itoa(i),
				"name":     card.Name,
				"category": string(card.Category),
			})
		}
	}
	for _, set := range sets.Sets() {
		for _, name := range set.Names() {
			if !cat.Contains(name) {
				return nil, apperrors.WithMetadata(apperrors.CodeCatalogUnknownCardInSet, "set references unknown card", map[string]string{
					"set":  set.Name,
					"name": name,
				})
			}
		}
	}
	return cat, nil
}

// importCatalog replaces the stored catalog, so cards and sets dropped from
// the source do not survive a re-import.
func importCatalog(ctx context.Context, store storage.CatalogStore, cat *catalog.Catalog, sets *manifest.Manifest) error {
	if err := store.ReplaceCatalog(ctx, cat.Cards(), sets.Sets()); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
