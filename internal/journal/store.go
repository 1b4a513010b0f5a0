// Package journal keeps an audit log of proposal batches applied to a
// document: what the assistant said, what it asked for, and what was
// actually applied or skipped.
//
// It uses SQLite (pure Go driver). Journal failures never affect the
// document; callers log them and move on.
package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/prdgraph/internal/contract"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is replaced in tests for stable timestamps.
var timeNow = time.Now

// FileName is the database file created inside the data directory.
const FileName = "journal.db"

// DefaultRecentLimit caps Recent when the caller passes no limit.
const DefaultRecentLimit = 10

// ErrNotFound is returned by Get for unknown entries.
var ErrNotFound = errors.New("journal entry not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry is one recorded batch.
type Entry struct {
	ID         int64               `json:"id"`
	BatchID    string              `json:"batch_id"`
	DocumentID string              `json:"document_id"`
	Narrative  string              `json:"narrative"`
	Changes    int                 `json:"changes"`
	Applied    int                 `json:"applied"`
	Skipped    int                 `json:"skipped"`
	Errors     []string            `json:"errors"`
	Citations  []contract.Citation `json:"citations"`
	Batch      json.RawMessage     `json:"batch,omitempty"`
	CreatedAt  string              `json:"created_at"`
}

// RecordParams holds the input for recording a batch.
type RecordParams struct {
	DocumentID string
	Batch      *contract.Batch
	Applied    int
	Errors     []string
}

// Stats summarizes the journal for one document.
type Stats struct {
	Batches int `json:"batches"`
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed journal.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the journal database in dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS batches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id    TEXT    NOT NULL UNIQUE,
			document_id TEXT    NOT NULL,
			narrative   TEXT    NOT NULL DEFAULT '',
			changes     INTEGER NOT NULL,
			applied     INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			errors      TEXT    NOT NULL DEFAULT '[]',
			citations   TEXT    NOT NULL DEFAULT '[]',
			batch       TEXT    NOT NULL,
			created_at  TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_batches_document ON batches(document_id, id);
	`)
	return err
}

// ─── Writes ──────────────────────────────────────────────────────────────────

// Record stores one applied batch and returns its entry id.
func (s *Store) Record(p RecordParams) (int64, error) {
	if p.Batch == nil {
		return 0, fmt.Errorf("journal: batch is required")
	}
	errs := p.Errors
	if errs == nil {
		errs = []string{}
	}
	cites := p.Batch.Citations
	if cites == nil {
		cites = []contract.Citation{}
	}

	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return 0, fmt.Errorf("journal: encode errors: %w", err)
	}
	citesJSON, err := json.Marshal(cites)
	if err != nil {
		return 0, fmt.Errorf("journal: encode citations: %w", err)
	}
	batchJSON, err := json.Marshal(p.Batch)
	if err != nil {
		return 0, fmt.Errorf("journal: encode batch: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO batches (batch_id, document_id, narrative, changes, applied, skipped, errors, citations, batch, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), p.DocumentID, p.Batch.Narrative, len(p.Batch.Changes), p.Applied, len(errs),
		string(errsJSON), string(citesJSON), string(batchJSON), now(),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: insert: %w", err)
	}
	return res.LastInsertId()
}

// ─── Reads ───────────────────────────────────────────────────────────────────

const entryColumns = `id, batch_id, document_id, narrative, changes, applied, skipped, errors, citations, created_at`

// Recent returns the newest entries first. An empty documentID matches
// every document. The raw batch is omitted; use Get for it.
func (s *Store) Recent(documentID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `SELECT ` + entryColumns + ` FROM batches WHERE 1=1`
	args := []any{}
	if documentID != "" {
		query += " AND document_id = ?"
		args = append(args, documentID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Get returns one entry including the recorded batch.
func (s *Store) Get(id int64) (*Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+`, batch FROM batches WHERE id = ?`, id)

	var batch string
	e, err := scanEntry(row, &batch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	e.Batch = json.RawMessage(batch)
	return e, nil
}

// Stats aggregates counts for one document, or all documents when
// documentID is empty.
func (s *Store) Stats(documentID string) (*Stats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(applied), 0), COALESCE(SUM(skipped), 0) FROM batches`
	args := []any{}
	if documentID != "" {
		query += " WHERE document_id = ?"
		args = append(args, documentID)
	}
	var st Stats
	if err := s.db.QueryRow(query, args...).Scan(&st.Batches, &st.Applied, &st.Skipped); err != nil {
		return nil, fmt.Errorf("journal: stats: %w", err)
	}
	return &st, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner, extra ...any) (*Entry, error) {
	var (
		e                   Entry
		errsJSON, citesJSON string
	)
	dest := []any{
		&e.ID, &e.BatchID, &e.DocumentID, &e.Narrative, &e.Changes, &e.Applied, &e.Skipped,
		&errsJSON, &citesJSON, &e.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(errsJSON), &e.Errors); err != nil {
		return nil, fmt.Errorf("journal: decode errors of entry %d: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(citesJSON), &e.Citations); err != nil {
		return nil, fmt.Errorf("journal: decode citations of entry %d: %w", e.ID, err)
	}
	return &e, nil
}

func now() string {
	return timeNow().UTC().Format("2006-01-02 15:04:05")
}
