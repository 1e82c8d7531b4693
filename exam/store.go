/*
store.go - Persistence interface for exam results

PURPOSE:
  Defines the contract between the domain logic and the database. The
  importer and the lookup service depend only on this interface, so tests
  run against the in-memory implementation and production runs against
  SQLite.

CONTRACT:
  UpsertMany:       Atomic batch write keyed by national ID. Insert new
                    keys, fully overwrite existing ones. Readers never
                    observe a partially applied batch.
  DeleteAll:        Wipes every record. Only ever called as the explicit
                    precursor to a fresh import.
  FindByNationalID: Point lookup. Returns (nil, nil) when absent; callers
                    that need an error use exam.ErrNotFound.

TOTAL RECOMPUTATION:
  Implementations recompute TotalScore from the sub-scores on every write.
  Combined with the NewResult constructor this means a total can never be
  persisted out of sync, even for a hand-built Result literal.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite store
  - exam/store/memory.go:   In-memory store for tests
*/
package exam

import "context"

// Store is the durable keyed collection of results.
type Store interface {
	// UpsertMany applies the batch atomically: each result is inserted if
	// its national ID is unseen, or fully overwrites the existing record
	// otherwise. A failure partway leaves the store unchanged.
	UpsertMany(ctx context.Context, results []Result) error

	// DeleteAll removes every record atomically.
	DeleteAll(ctx context.Context) error

	// FindByNationalID returns the matching record, or (nil, nil) if no
	// record exists for the key.
	FindByNationalID(ctx context.Context, nationalID string) (*Result, error)

	// Count returns the number of stored results.
	Count(ctx context.Context) (int, error)
}
