package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store persists rules in a local SQLite database. Rules are user-owned
// and long-lived; the pipeline only ever reads them.
type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS rules (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	tag         TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	is_active   INTEGER NOT NULL DEFAULT 1,
	criteria    TEXT NOT NULL DEFAULT '{}',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
)`

// OpenStore opens (or creates) the rule database at dbPath, enables WAL
// mode, ensures the schema, and seeds the default rule set on first run.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening rule db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating rules table: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedDefaults(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// seedDefaults inserts the standard rules when the table is empty, so a
// fresh install filters and tags sensibly out of the box.
func (s *Store) seedDefaults(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM rules"); err != nil {
		return fmt.Errorf("counting rules: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, r := range DefaultRules() {
		if err := s.Save(ctx, r); err != nil {
			return fmt.Errorf("seeding default rule %q: %w", r.Tag, err)
		}
	}
	return nil
}

// List retrieves all rules in creation order.
func (s *Store) List(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, description, tag, color, is_active, criteria FROM rules ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var (
			r            Rule
			isActive     int
			criteriaJSON string
		)
		if err := rows.Scan(&r.ID, &r.Description, &r.Tag, &r.Color, &isActive, &criteriaJSON); err != nil {
			return nil, fmt.Errorf("scanning rule row: %w", err)
		}
		r.IsActive = isActive != 0
		if criteriaJSON != "" {
			if err := json.Unmarshal([]byte(criteriaJSON), &r.Criteria); err != nil {
				return nil, fmt.Errorf("unmarshaling criteria for rule %s: %w", r.ID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Save inserts or replaces a rule. A rule without an ID gets a new one.
func (s *Store) Save(ctx context.Context, r Rule) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	criteriaJSON, err := json.Marshal(r.Criteria)
	if err != nil {
		return fmt.Errorf("marshaling criteria for rule %s: %w", r.ID, err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rules (id, description, tag, color, is_active, criteria, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			tag         = excluded.tag,
			color       = excluded.color,
			is_active   = excluded.is_active,
			criteria    = excluded.criteria,
			updated_at  = excluded.updated_at`,
		r.ID, r.Description, r.Tag, r.Color, boolToInt(r.IsActive), string(criteriaJSON), now, now,
	)
	if err != nil {
		return fmt.Errorf("saving rule %s: %w", r.ID, err)
	}
	return nil
}

// Delete removes a rule by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rule %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	return nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
