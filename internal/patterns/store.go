// Package patterns implements the feature pattern catalog: per-feature
// dimension envelopes (e.g. plausible hole diameters) backed by SQLite.
//
// The catalog is an optional subsystem. The server logs a warning and
// keeps running without it when the database cannot be opened, and the
// heuristic detectors fall back to built-in constants.
package patterns

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned when a (feature type, name) pair is absent.
var ErrNotFound = errors.New("pattern not found")

// Pattern is one catalog entry: a named dimension envelope for a feature
// type. Spec is a free-form JSON object — keys depend on the pattern
// (min_diameter/max_diameter for holes, angle_range for countersinks, …).
type Pattern struct {
	FeatureType string         `json:"feature_type"`
	Name        string         `json:"name"`
	Spec        map[string]any `json:"spec"`
	UpdatedAt   string         `json:"updated_at"`
}

// Config holds catalog configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default catalog configuration, storing the
// database under ~/.cadscout.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".cadscout")}
}

// Store is the pattern catalog backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the catalog database, runs the migration, and
// seeds the default patterns.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("patterns: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "patterns.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("patterns: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("patterns: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("patterns: migration: %w", err)
	}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("patterns: seeding defaults: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS patterns (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			feature_type TEXT NOT NULL,
			name         TEXT NOT NULL,
			spec         TEXT NOT NULL,
			updated_at   TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE (feature_type, name)
		);

		CREATE INDEX IF NOT EXISTS idx_patterns_type ON patterns(feature_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// defaultPatterns is the stock catalog: conservative envelopes for the
// most common machining features.
func defaultPatterns() []Pattern {
	return []Pattern{
		{FeatureType: "hole", Name: "circular",
			Spec: map[string]any{"min_diameter": 1.0, "max_diameter": 100.0}},
		{FeatureType: "hole", Name: "counterbore",
			Spec: map[string]any{"depth_ratio": 0.3}},
		{FeatureType: "hole", Name: "countersink",
			Spec: map[string]any{"angle_range": []any{60.0, 120.0}}},
		{FeatureType: "fillet", Name: "edge_fillet",
			Spec: map[string]any{"min_radius": 0.5, "max_radius": 50.0}},
		{FeatureType: "fillet", Name: "face_fillet",
			Spec: map[string]any{"typical_ratios": []any{0.1, 0.2, 0.5}}},
	}
}

// seed inserts the default patterns, leaving user-modified rows alone.
func (s *Store) seed() error {
	for _, p := range defaultPatterns() {
		spec, err := json.Marshal(p.Spec)
		if err != nil {
			return fmt.Errorf("encoding default pattern %s/%s: %w", p.FeatureType, p.Name, err)
		}
		_, err = s.db.Exec(
			`INSERT OR IGNORE INTO patterns (feature_type, name, spec) VALUES (?, ?, ?)`,
			p.FeatureType, p.Name, string(spec),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Get returns one pattern by feature type and name.
func (s *Store) Get(featureType, name string) (*Pattern, error) {
	row := s.db.QueryRow(
		`SELECT feature_type, name, spec, updated_at FROM patterns
		 WHERE feature_type = ? AND name = ?`,
		featureType, name,
	)
	return scanPattern(row.Scan)
}

// List returns catalog entries, optionally filtered by feature type.
// Ordered by (feature_type, name) for stable output.
func (s *Store) List(featureType string) ([]Pattern, error) {
	query := `SELECT feature_type, name, spec, updated_at FROM patterns`
	args := []any{}
	if featureType != "" {
		query += ` WHERE feature_type = ?`
		args = append(args, featureType)
	}
	query += ` ORDER BY feature_type, name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("patterns: list: %w", err)
	}
	defer rows.Close()

	var out []Pattern
	for rows.Next() {
		p, err := scanPattern(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Upsert inserts or replaces a pattern envelope.
func (s *Store) Upsert(featureType, name string, spec map[string]any) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("patterns: encoding spec: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO patterns (feature_type, name, spec)
		 VALUES (?, ?, ?)
		 ON CONFLICT (feature_type, name)
		 DO UPDATE SET spec = excluded.spec, updated_at = datetime('now')`,
		featureType, name, string(data),
	)
	return err
}

// DiameterEnvelope returns the plausible [min, max] hole diameter range
// from the "hole/circular" pattern. ok is false when the catalog has no
// usable envelope — callers fall back to built-in constants.
func (s *Store) DiameterEnvelope() (min, max float64, ok bool) {
	p, err := s.Get("hole", "circular")
	if err != nil {
		return 0, 0, false
	}
	min, okMin := asFloat(p.Spec["min_diameter"])
	max, okMax := asFloat(p.Spec["max_diameter"])
	if !okMin || !okMax {
		return 0, 0, false
	}
	return min, max, true
}

func asFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func scanPattern(scan func(...any) error) (*Pattern, error) {
	var p Pattern
	var spec string
	if err := scan(&p.FeatureType, &p.Name, &spec, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patterns: scan: %w", err)
	}
	if err := json.Unmarshal([]byte(spec), &p.Spec); err != nil {
		return nil, fmt.Errorf("patterns: decoding spec for %s/%s: %w", p.FeatureType, p.Name, err)
	}
	return &p, nil
}
