// Package sqlite provides a SQLite-backed catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/thunderstone/internal/catalog"
	"github.com/louisbranch/thunderstone/internal/catalog/manifest"
	sqlitemigrate "github.com/louisbranch/thunderstone/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/thunderstone/internal/platform/timeouts"
	"github.com/louisbranch/thunderstone/internal/storage"
	"github.com/louisbranch/thunderstone/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the card catalog and set manifest in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// OpenCatalog opens a SQLite catalog store and applies embedded migrations.
func OpenCatalog(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL", cleanPath, timeouts.SQLiteBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutCard inserts or replaces one card at the given catalog position.
func (s *Store) PutCard(ctx context.Context, card catalog.Card, position int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return putCard(ctx, s.sqlDB, card, position)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putCard(ctx context.Context, db execer, card catalog.Card, position int) error {
	name := strings.TrimSpace(card.Name)
	if name == "" {
		return fmt.Errorf("card name is required")
	}
	if strings.TrimSpace(string(card.Category)) == "" {
		return fmt.Errorf("card category is required")
	}
	attributes := card.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	attributesJSON, err := json.Marshal(attributes)
	if err != nil {
		return fmt.Errorf("marshal card attributes: %w", err)
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT INTO cards (name, category, set_name, attributes, position, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   category = excluded.category,
		   set_name = excluded.set_name,
		   attributes = excluded.attributes,
		   position = excluded.position,
		   updated_at = excluded.updated_at`,
		name,
		string(card.Category),
		strings.TrimSpace(card.Set),
		string(attributesJSON),
		position,
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("put card: %w", err)
	}
	return nil
}

// GetCard returns one card by name.
func (s *Store) GetCard(ctx context.Context, name string) (catalog.Card, error) {
	if err := s.ready(ctx); err != nil {
		return catalog.Card{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Card{}, fmt.Errorf("card name is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT name, category, set_name, attributes FROM cards WHERE name = ?`,
		name,
	)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Card{}, storage.ErrNotFound
		}
		return catalog.Card{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// ListCards returns every card in catalog order.
func (s *Store) ListCards(ctx context.Context) ([]catalog.Card, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name, category, set_name, attributes
		   FROM cards
		  ORDER BY position ASC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []catalog.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// Cards loads the catalog from the store.
func (s *Store) Cards(ctx context.Context) ([]catalog.Card, error) {
	return s.ListCards(ctx)
}

// DeleteCard removes one card by name.
func (s *Store) DeleteCard(ctx context.Context, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("card name is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cards WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (catalog.Card, error) {
	var (
		card           catalog.Card
		category       string
		attributesJSON string
	)
	if err := row.Scan(&card.Name, &category, &card.Set, &attributesJSON); err != nil {
		return catalog.Card{}, err
	}
	card.Category = catalog.Category(category)
	if err := json.Unmarshal([]byte(attributesJSON), &card.Attributes); err != nil {
		return catalog.Card{}, fmt.Errorf("decode attributes for %s: %w", card.Name, err)
	}
	return card, nil
}

// PutSet inserts or replaces one set and its card list.
func (s *Store) PutSet(ctx context.Context, set manifest.Set, position int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put set: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := putSet(ctx, tx, set, position); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put set: %w", err)
	}
	return nil
}

func putSet(ctx context.Context, db execer, set manifest.Set, position int) error {
	name := strings.TrimSpace(set.Name)
	if name == "" {
		return fmt.Errorf("set name is required")
	}

	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO sets (name, quest_number, position, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   quest_number = excluded.quest_number,
		   position = excluded.position,
		   updated_at = excluded.updated_at`,
		name,
		set.QuestNumber,
		position,
		toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("put set: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM set_cards WHERE set_name = ?`, name); err != nil {
		return fmt.Errorf("put set cards: %w", err)
	}

	cardPosition := 0
	for _, category := range set.Categories() {
		for _, cardName := range set.Cards[category] {
			if _, err := db.ExecContext(
				ctx,
				`INSERT INTO set_cards (set_name, category, card_name, position) VALUES (?, ?, ?, ?)`,
				name,
				string(category),
				cardName,
				cardPosition,
			); err != nil {
				return fmt.Errorf("put set cards: %w", err)
			}
			cardPosition++
		}
	}
	return nil
}

// DeleteSet removes one set and its card list.
func (s *Store) DeleteSet(ctx context.Context, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("set name is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete set: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM set_cards WHERE set_name = ?`, name); err != nil {
		return fmt.Errorf("delete set cards: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM sets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete set: %w", err)
	}
	return nil
}

// ReplaceCatalog swaps the stored cards and sets for the given ones in a
// single transaction. Slice order becomes catalog and manifest order.
func (s *Store) ReplaceCatalog(ctx context.Context, cards []catalog.Card, sets []manifest.Set) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace catalog: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"set_cards", "sets", "cards"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for position, card := range cards {
		if err := putCard(ctx, tx, card, position); err != nil {
			return fmt.Errorf("put card %s: %w", card.Name, err)
		}
	}
	for position, set := range sets {
		if err := putSet(ctx, tx, set, position); err != nil {
			return fmt.Errorf("put set %s: %w", set.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace catalog: %w", err)
	}
	return nil
}

// ListSets returns every set in manifest order.
func (s *Store) ListSets(ctx context.Context) ([]manifest.Set, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT s.name, s.quest_number, c.category, c.card_name
		   FROM sets s
		   LEFT JOIN set_cards c ON c.set_name = s.name
		  ORDER BY s.position ASC, s.name ASC, c.position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []manifest.Set
	for rows.Next() {
		var (
			name        string
			questNumber int
			category    sql.NullString
			cardName    sql.NullString
		)
		if err := rows.Scan(&name, &questNumber, &category, &cardName); err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		if len(sets) == 0 || sets[len(sets)-1].Name != name {
			sets = append(sets, manifest.Set{
				Name:        name,
				QuestNumber: questNumber,
				Cards:       make(map[catalog.Category][]string),
			})
		}
		if !cardName.Valid {
			continue
		}
		current := &sets[len(sets)-1]
		key := catalog.Category(category.String)
		current.Cards[key] = append(current.Cards[key], cardName.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

// Manifest assembles the stored sets. It returns nil when none are stored.
func (s *Store) Manifest(ctx context.Context) (*manifest.Manifest, error) {
	sets, err := s.ListSets(ctx)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return manifest.New(sets...)
}

var _ storage.CatalogStore = (*Store)(nil)
