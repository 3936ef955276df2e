// Package catalog holds the immutable universe of known cards.
//
// A Catalog is built once from a Source (JSON data directory, SQLite store)
// and then only read. Card lists consult it on every query, so lookups are
// map-backed and the catalog never changes after construction.
package catalog

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
)

// ErrUnavailable is returned when a catalog is used before it was loaded.
var ErrUnavailable = apperrors.New(apperrors.CodeCatalogUnavailable, "card catalog is not loaded")

// Card is one catalog record.
type Card struct {
	Name     string
	Category Category
	// Set names the box the card ships in; empty when the data omits it.
	Set string
	// Attributes carries every other data field, opaque to the catalog.
	Attributes map[string]any
}

// Attribute returns a named attribute.
func (c Card) Attribute(key string) (any, bool) {
	value, ok := c.Attributes[key]
	return value, ok
}

// Catalog is an immutable name-indexed set of cards.
//
// Lookups on a nil or zero Catalog report nothing rather than failing;
// callers that did not build the catalog themselves check Ready first.
type Catalog struct {
	byName map[string]Card
	order  []string
}

// New builds a catalog from cards, keeping their order as catalog order.
func New(cards []Card) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]Card, len(cards)),
		order:  make([]string, 0, len(cards)),
	}
	for i, card := range cards {
		name := strings.TrimSpace(card.Name)
		if name == "" {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogCardNameEmpty, "card name is required", map[string]string{
				"index": strconv.Itoa(i),
			})
		}
		if _, exists := c.byName[name]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogDuplicateCard, "duplicate card name", map[string]string{
				"index": strconv.Itoa(i),
				"name":  name,
			})
		}
		card.Name = name
		c.byName[name] = card
		c.order = append(c.order, name)
	}
	return c, nil
}

// Ready reports ErrUnavailable for a nil catalog or one not built by New.
func (c *Catalog) Ready() error {
	if c == nil || c.byName == nil {
		return ErrUnavailable
	}
	return nil
}

// Get looks up a card by name. It reports false on an unloaded catalog, so
// use Ready to tell a missing card from a missing catalog.
func (c *Catalog) Get(name string) (Card, bool) {
	if c == nil {
		return Card{}, false
	}
	card, ok := c.byName[name]
	return card, ok
}

// Contains reports whether name is a known card.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Names returns every card name in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Cards returns every card in catalog order.
func (c *Catalog) Cards() []Card {
	if c == nil {
		return nil
	}
	cards := make([]Card, 0, len(c.order))
	for _, name := range c.order {
		cards = append(cards, c.byName[name])
	}
	return cards
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
