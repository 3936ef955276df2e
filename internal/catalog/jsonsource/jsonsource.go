// Package jsonsource loads catalog data from a directory of JSON files.
//
// The directory holds cards.json, an array of card objects, and optionally
// sets.json, a set manifest:
//
//	[{"Name": "Arnak", "Category": "Heroes", "Set": "Wrath of the Elements", "Cost": 7}]
//
// Keys other than Name, Category and Set become card attributes.
package jsonsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog"
	"github.com/louisbranch/thunderstone/internal/catalog/manifest"
)

const (
	// CardsFile is the card list file name.
	CardsFile = "cards.json"
	// SetsFile is the set manifest file name.
	SetsFile = "sets.json"
)

// Dir is a catalog data directory.
type Dir string

// Cards reads cards.json in document order.
func (d Dir) Cards(ctx context.Context) ([]catalog.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := readJSON[[]map[string]any](string(d), CardsFile)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("%s not found in %s", CardsFile, d)
	}

	cards := make([]catalog.Card, 0, len(*records))
	for i, record := range *records {
		card, err := decodeCard(record)
		if err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", CardsFile, i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Manifest reads sets.json. It returns nil when the directory has none.
func (d Dir) Manifest(ctx context.Context) (*manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readFile(string(d), SetsFile)
	if err != nil || data == nil {
		return nil, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", SetsFile, err)
	}
	return m, nil
}

func decodeCard(record map[string]any) (catalog.Card, error) {
	card := catalog.Card{Attributes: make(map[string]any)}
	for key, value := range record {
		switch key {
		case "Name":
			name, ok := value.(string)
			if !ok {
				return catalog.Card{}, fmt.Errorf("field Name must be a string")
			}
			card.Name = name
		case "Category":
			raw, ok := value.(string)
			if !ok {
				return catalog.Card{}, fmt.Errorf("field Category must be a string")
			}
			card.Category = category(raw)
		case "Set":
			set, ok := value.(string)
			if !ok {
				return catalog.Card{}, fmt.Errorf("field Set must be a string")
			}
			card.Set = strings.TrimSpace(set)
		default:
			card.Attributes[key] = value
		}
	}
	return card, nil
}

// category canonicalizes recognized tags and keeps anything else verbatim,
// so unrecognized cards still load and simply fall outside every view.
func category(raw string) catalog.Category {
	if c, err := catalog.ParseCategory(raw); err == nil {
		return c
	}
	return catalog.Category(strings.TrimSpace(raw))
}

func readFile(dir string, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func readJSON[T any](dir string, name string) (*T, error) {
	data, err := readFile(dir, name)
	if err != nil || data == nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &value, nil
}
