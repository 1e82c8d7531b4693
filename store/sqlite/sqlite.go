/*
Package sqlite provides the SQLite-backed implementation of exam.Store.

PURPOSE:
  Production persistence for exam results. One table, keyed by national ID
  with a uniqueness constraint, sized for exam-cohort volumes (tens of
  thousands of rows) where the indexed point lookup must never degrade to
  a full scan.

SCHEMA:
  results:  id (autoincrement, never reused), national_id (UNIQUE),
            full_name, candidate_number, date_of_birth,
            written_score, practical_score, total_score
  Scores are stored as decimal strings to avoid binary floating-point
  drift on the way in and out of the database.

UPSERT SEMANTICS:
  UpsertMany uses INSERT ... ON CONFLICT(national_id) DO UPDATE inside a
  single database transaction. Duplicate keys are overwrites by design,
  never errors. The whole batch commits or none of it does.

TOTAL RECOMPUTATION:
  Every write rebuilds the record through exam.NewResult, which derives
  the total from the two sub-scores. A caller-supplied total never
  reaches the table.

CONCURRENCY:
  sync.RWMutex serializes writers; WAL mode lets readers proceed during a
  write without observing a partial batch.

USAGE:
  store, err := sqlite.New("./data/results.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - exam/store.go: Interface definition and contract
  - exam/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/artexam/results-portal/exam"
)

// Store implements exam.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		national_id TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		candidate_number TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		written_score TEXT NOT NULL,
		practical_score TEXT NOT NULL,
		total_score TEXT NOT NULL
	);

	-- Point lookup by national ID is the hot path of the public site
	CREATE INDEX IF NOT EXISTS idx_results_national_id
		ON results(national_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RESULT STORE (exam.Store interface)
// =============================================================================

// UpsertMany inserts or fully overwrites one record per national ID, all in
// one database transaction. Each result is rebuilt through exam.NewResult
// before the first write, so an invalid record aborts the batch untouched
// and every stored total is freshly derived.
func (s *Store) UpsertMany(ctx context.Context, results []exam.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clean := make([]exam.Result, 0, len(results))
	for _, r := range results {
		rebuilt, err := exam.NewResult(r.NationalID, r.FullName, r.CandidateNumber,
			r.DateOfBirth, r.WrittenScore, r.PracticalScore)
		if err != nil {
			return err
		}
		clean = append(clean, rebuilt)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO results
		(national_id, full_name, candidate_number, date_of_birth,
		 written_score, practical_score, total_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(national_id) DO UPDATE SET
			full_name = excluded.full_name,
			candidate_number = excluded.candidate_number,
			date_of_birth = excluded.date_of_birth,
			written_score = excluded.written_score,
			practical_score = excluded.practical_score,
			total_score = excluded.total_score
	`

	stmt, err := sqlTx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range clean {
		_, err := stmt.ExecContext(ctx,
			r.NationalID,
			r.FullName,
			r.CandidateNumber,
			r.DateOfBirth,
			r.WrittenScore.String(),
			r.PracticalScore.String(),
			r.TotalScore.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert result %s: %w", r.NationalID, err)
		}
	}

	return sqlTx.Commit()
}

// DeleteAll removes every record.
func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM results"); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}
	return nil
}

// FindByNationalID retrieves a result by its national ID.
// Returns (nil, nil) when no record exists for the key.
func (s *Store) FindByNationalID(ctx context.Context, nationalID string) (*exam.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		r                         exam.Result
		written, practical, total string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, national_id, full_name, candidate_number, date_of_birth,
		       written_score, practical_score, total_score
		FROM results
		WHERE national_id = ?`,
		nationalID,
	).Scan(&r.ID, &r.NationalID, &r.FullName, &r.CandidateNumber, &r.DateOfBirth,
		&written, &practical, &total)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query result: %w", err)
	}

	if r.WrittenScore, err = decimal.NewFromString(written); err != nil {
		return nil, fmt.Errorf("corrupt written score for %s: %w", nationalID, err)
	}
	if r.PracticalScore, err = decimal.NewFromString(practical); err != nil {
		return nil, fmt.Errorf("corrupt practical score for %s: %w", nationalID, err)
	}
	if r.TotalScore, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("corrupt total score for %s: %w", nationalID, err)
	}

	return &r, nil
}

// Count returns the number of stored results.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return n, nil
}
