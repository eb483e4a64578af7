package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/audience-cli/internal/model"
)

// SQLiteStore keeps a catalog snapshot and staged reconciliation results in
// a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// OpenExisting opens a catalog database that must already exist on disk
// and ensures its tables are present.
func OpenExisting(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "sqlite: open %s", path)
	}
	st, err := NewSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS focus_groups (
	id         TEXT PRIMARY KEY,
	seq        INTEGER NOT NULL,
	name       TEXT NOT NULL,
	nickname   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS focus_group_staging (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	match_status     TEXT NOT NULL,
	matched_id       TEXT,
	confidence       REAL NOT NULL,
	needs_enrichment INTEGER NOT NULL,
	review_status    TEXT NOT NULL,
	record           TEXT NOT NULL,
	created_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_focus_groups_seq ON focus_groups(seq);
CREATE INDEX IF NOT EXISTS idx_staging_review_status ON focus_group_staging(review_status);
`

// Migrate creates the catalog tables.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Import upserts records into the catalog. Records keep the order they
// were first imported in; re-importing an id updates its name and nickname.
func (s *SQLiteStore) Import(ctx context.Context, records []model.ExistingRecord) (int, error) {
	if err := Validate(records); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM focus_groups`).Scan(&next); err != nil {
		return 0, eris.Wrap(err, "sqlite: next seq")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO focus_groups (id, seq, name, nickname, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, nickname = excluded.nickname, updated_at = excluded.updated_at`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close() //nolint:errcheck

	now := time.Now().UTC()
	for _, r := range records {
		next++
		if _, err := stmt.ExecContext(ctx, r.ID, next, r.Name, r.Nickname, now); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import record %s", r.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return len(records), nil
}

// Records implements Source, returning the catalog in import order.
func (s *SQLiteStore) Records(ctx context.Context) ([]model.ExistingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, nickname FROM focus_groups ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	records := []model.ExistingRecord{}
	for rows.Next() {
		var r model.ExistingRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Nickname); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate records")
	}
	return records, nil
}

// SaveStaging stores staging records for review.
func (s *SQLiteStore) SaveStaging(ctx context.Context, records []model.StagingRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin staging")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, r := range records {
		recordJSON, err := json.Marshal(r)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal staging %s", r.ID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO focus_group_staging
				(id, name, match_status, matched_id, confidence, needs_enrichment, review_status, record)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Profile.Name, string(r.Match.Status), r.Match.MatchedID, r.Match.Confidence,
			r.NeedsEnrichment, r.ReviewStatus, string(recordJSON),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert staging %s", r.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit staging")
}

// ListStaging returns staged records, optionally filtered by review status,
// oldest first.
func (s *SQLiteStore) ListStaging(ctx context.Context, reviewStatus string) ([]model.StagingRecord, error) {
	query := `SELECT record FROM focus_group_staging WHERE 1=1`
	var args []any
	if reviewStatus != "" {
		query += ` AND review_status = ?`
		args = append(args, reviewStatus)
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list staging")
	}
	defer rows.Close() //nolint:errcheck

	records := []model.StagingRecord{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan staging")
		}
		var r model.StagingRecord
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal staging")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate staging")
	}
	return records, nil
}
