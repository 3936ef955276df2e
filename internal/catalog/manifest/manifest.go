// Package manifest describes which cards ship in each published set.
//
// A manifest is a JSON object keyed by set name. Each set lists its cards by
// category and may carry the "Quest Number" it was released under:
//
//	{"Base Set": {"Quest Number": 1, "Heroes": ["Amazon"], "Monsters": ["Slime"]}}
//
// Set order follows the JSON document.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog"
	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
)

const questNumberKey = "Quest Number"

// Set is one published card set.
type Set struct {
	Name        string
	QuestNumber int
	Cards       map[catalog.Category][]string
}

// Names returns every card in the set, grouped by category in canonical
// category order.
func (s Set) Names() []string {
	var names []string
	for _, category := range s.Categories() {
		names = append(names, s.Cards[category]...)
	}
	return names
}

// Categories returns the recognized categories in canonical order followed by
// any unrecognized ones the set uses, sorted.
func (s Set) Categories() []catalog.Category {
	ordered := catalog.Categories()
	var extra []catalog.Category
	for category := range s.Cards {
		if !category.Known() {
			extra = append(extra, category)
		}
	}
	slices.Sort(extra)
	return append(ordered, extra...)
}

// Manifest is an ordered collection of sets.
type Manifest struct {
	order []string
	sets  map[string]Set
}

// New builds a manifest from sets in the given order.
func New(sets ...Set) (*Manifest, error) {
	m := &Manifest{sets: make(map[string]Set, len(sets))}
	for _, set := range sets {
		if err := m.add(set); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manifest) add(set Set) error {
	set.Name = strings.TrimSpace(set.Name)
	if set.Name == "" {
		return fmt.Errorf("set name is required")
	}
	if _, ok := m.sets[set.Name]; ok {
		return fmt.Errorf("duplicate set %q", set.Name)
	}
	m.order = append(m.order, set.Name)
	m.sets[set.Name] = set
	return nil
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("manifest must be a JSON object")
	}

	m := &Manifest{sets: make(map[string]Set)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		name, _ := tok.(string)

		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode set %q: %w", name, err)
		}
		set, err := decodeSet(name, raw)
		if err != nil {
			return nil, err
		}
		if err := m.add(set); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return m, nil
}

func decodeSet(name string, raw map[string]json.RawMessage) (Set, error) {
	set := Set{Name: name, Cards: make(map[catalog.Category][]string)}
	for key, value := range raw {
		if key == questNumberKey {
			if err := json.Unmarshal(value, &set.QuestNumber); err != nil {
				return Set{}, fmt.Errorf("decode set %q quest number: %w", name, err)
			}
			continue
		}
		category, err := catalog.ParseCategory(key)
		if err != nil {
			return Set{}, fmt.Errorf("decode set %q: %w", name, err)
		}
		var cards []string
		if err := json.Unmarshal(value, &cards); err != nil {
			return Set{}, fmt.Errorf("decode set %q %s: %w", name, key, err)
		}
		set.Cards[category] = append(set.Cards[category], cards...)
	}
	return set, nil
}

// SetNames returns the set names in manifest order.
func (m *Manifest) SetNames() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.order)
}

// Set returns the named set.
func (m *Manifest) Set(name string) (Set, bool) {
	if m == nil {
		return Set{}, false
	}
	set, ok := m.sets[name]
	return set, ok
}

// Sets returns every set in manifest order.
func (m *Manifest) Sets() []Set {
	if m == nil {
		return nil
	}
	sets := make([]Set, 0, len(m.order))
	for _, name := range m.order {
		sets = append(sets, m.sets[name])
	}
	return sets
}

// Cards returns the distinct card names of the named sets, in the order the
// sets are given. With no sets it covers the whole manifest.
func (m *Manifest) Cards(sets ...string) ([]string, error) {
	if len(sets) == 0 {
		sets = m.SetNames()
	}
	seen := make(map[string]bool)
	var names []string
	for _, setName := range sets {
		set, ok := m.Set(strings.TrimSpace(setName))
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeManifestUnknownSet, "unknown set", map[string]string{"set": setName})
		}
		for _, name := range set.Names() {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// Predicate matches cards that belong to any of the named sets.
func (m *Manifest) Predicate(sets ...string) (catalog.Predicate, error) {
	names, err := m.Cards(sets...)
	if err != nil {
		return nil, err
	}
	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		members[name] = struct{}{}
	}
	return func(card catalog.Card) bool {
		_, ok := members[card.Name]
		return ok
	}, nil
}
