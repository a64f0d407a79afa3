package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/fundboard/internal/model"
)

var (
	// ErrNotBundle is returned when a read-only open finds a database without
	// the campaigns table.
	ErrNotBundle = errors.New("not a fundboard bundle")

	// ErrReadOnly is returned when a write is attempted on a read-only bundle.
	ErrReadOnly = errors.New("bundle opened read-only")
)

// BundleDB provides SQLite-based storage for a campaign dataset.
type BundleDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the path to the SQLite database file.
	path string

	// readOnly mirrors Options.ReadOnly.
	readOnly bool
}

// Options configures BundleDB behavior.
type Options struct {
	// ReadOnly opens the bundle with mode=ro. The file must exist and be a
	// bundle; nothing is created.
	ReadOnly bool

	// CreateIfNotExists creates the file and its parent directory when
	// missing. Ignored for read-only opens.
	CreateIfNotExists bool
}

// ReadOnlyOptions returns the options used by viewing commands.
func ReadOnlyOptions() Options {
	return Options{ReadOnly: true}
}

// WritableOptions returns the options used by `fundboard bundle`.
func WritableOptions() Options {
	return Options{ReadOnly: false, CreateIfNotExists: true}
}

// Open opens the bundle at path.
// Writable opens create the parent directory, the file and the schema as
// needed. Read-only opens fail if the file is missing or is not a bundle.
func Open(path string, opts Options) (*BundleDB, error) {
	var dsn string
	if opts.ReadOnly || !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("bundle not found at %s", path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check bundle path: %w", err)
		}
	}
	if opts.ReadOnly {
		dsn = bundleDSN(path, "ro")
	} else {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create bundle directory: %w", err)
			}
		}
		dsn = bundleDSN(path, "rwc")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	bdb := &BundleDB{
		db:       db,
		path:     path,
		readOnly: opts.ReadOnly,
	}

	ctx := context.Background()
	if opts.ReadOnly {
		if err := bdb.checkSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return bdb, nil
	}

	if err := bdb.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return bdb, nil
}

// bundleDSN builds a SQLite URI filename for the absolute form of path.
// The path is percent-encoded so '?', '#' and '%' stay part of the file
// name.
func bundleDSN(path, mode string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{
		Scheme:   "file",
		Path:     slashed,
		RawQuery: url.Values{"mode": {mode}}.Encode(),
	}
	return u.String()
}

// Close closes the database connection.
func (b *BundleDB) Close() error {
	return b.db.Close()
}

// Path returns the file path of the bundle.
func (b *BundleDB) Path() string {
	return b.path
}

// createTables creates the schema if it doesn't exist.
func (b *BundleDB) createTables(ctx context.Context) error {
	schema := `
	-- One row per campaign; position preserves the authored order
	CREATE TABLE IF NOT EXISTS campaigns (
		position INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		amount_raised REAL NOT NULL CHECK (amount_raised >= 0),
		goal REAL NOT NULL CHECK (goal > 0),
		difference_from_goal REAL
	);

	-- Free-form key/value metadata about the bundle
	CREATE TABLE IF NOT EXISTS bundle_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := b.db.ExecContext(ctx, schema)
	return err
}

// checkSchema verifies that the campaigns table exists.
func (b *BundleDB) checkSchema(ctx context.Context) error {
	var count int
	err := b.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'campaigns'`,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect bundle: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrNotBundle, b.path)
	}
	return nil
}

// ReplaceCampaigns replaces the bundle contents with campaigns in a single
// transaction. Slice order becomes the stored position.
func (b *BundleDB) ReplaceCampaigns(ctx context.Context, campaigns []model.Campaign) error {
	if b.readOnly {
		return ErrReadOnly
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // no-op after commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM campaigns`); err != nil {
		return fmt.Errorf("failed to clear campaigns: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO campaigns (position, title, url, amount_raised, goal, difference_from_goal)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range campaigns {
		if _, err := stmt.ExecContext(ctx, i, c.Title, c.URL, c.AmountRaised, c.Goal, c.DifferenceFromGoal); err != nil {
			return fmt.Errorf("failed to insert campaign %d (%q): %w", i, c.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bundle: %w", err)
	}
	return nil
}

// WriteMetadata stores meta, overwriting earlier values.
// A zero CreatedAt is replaced with the current time.
func (b *BundleDB) WriteMetadata(ctx context.Context, meta Metadata) error {
	if b.readOnly {
		return ErrReadOnly
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	entries := [][2]string{
		{metaSource, meta.Source},
		{metaFingerprint, meta.Fingerprint},
		{metaCreatedAt, meta.CreatedAt.Format(time.RFC3339)},
	}
	for _, e := range entries {
		if _, err := b.db.ExecContext(ctx, `
		INSERT INTO bundle_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, e[0], e[1]); err != nil {
			return fmt.Errorf("failed to write metadata %s: %w", e[0], err)
		}
	}
	return nil
}

// LoadCampaigns returns every campaign in authored order.
// A NULL difference_from_goal is returned as goal - amount_raised.
func (b *BundleDB) LoadCampaigns(ctx context.Context) ([]model.Campaign, error) {
	rows, err := b.db.QueryContext(ctx, `
	SELECT title, url, amount_raised, goal, difference_from_goal
	FROM campaigns
	ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]model.Campaign, 0)
	for rows.Next() {
		var c model.Campaign
		var diff sql.NullFloat64
		if err := rows.Scan(&c.Title, &c.URL, &c.AmountRaised, &c.Goal, &diff); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		if diff.Valid {
			c.DifferenceFromGoal = diff.Float64
		} else {
			c.DifferenceFromGoal = c.ComputedDifference()
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

// Metadata keys.
const (
	metaSource      = "source"
	metaFingerprint = "fingerprint"
	metaCreatedAt   = "created_at"
)

// Metadata describes where a bundle came from.
type Metadata struct {
	// Source is the path of the authored dataset the bundle was built from.
	Source string

	// Fingerprint is the dataset fingerprint at bundling time.
	Fingerprint string

	// CreatedAt is when the bundle was written.
	CreatedAt time.Time
}

// Metadata reads the bundle metadata. Missing keys are left empty.
func (b *BundleDB) Metadata(ctx context.Context) (*Metadata, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT key, value FROM bundle_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	var meta Metadata
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		switch key {
		case metaSource:
			meta.Source = value
		case metaFingerprint:
			meta.Fingerprint = value
		case metaCreatedAt:
			meta.CreatedAt = parseTimestamp(value)
		}
	}

	return &meta, rows.Err()
}

// timestampFormats contains the timestamp formats that may appear in the
// metadata table. More specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse s with each known format and returns the
// zero time if none match.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
