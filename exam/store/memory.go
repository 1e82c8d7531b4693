// Package store provides an in-memory exam.Store implementation.
package store

import (
	"context"
	"sync"

	"github.com/artexam/results-portal/exam"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	byKey  map[string]exam.Result
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{byKey: make(map[string]exam.Result), nextID: 1}
}

// UpsertMany applies the batch atomically. All results are rebuilt through
// NewResult first, so the batch fails before any write if a record is
// invalid, and every stored total is recomputed.
func (m *Memory) UpsertMany(_ context.Context, results []exam.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate and recompute everything before touching the map (atomic check)
	clean := make([]exam.Result, 0, len(results))
	for _, r := range results {
		rebuilt, err := exam.NewResult(r.NationalID, r.FullName, r.CandidateNumber,
			r.DateOfBirth, r.WrittenScore, r.PracticalScore)
		if err != nil {
			return err
		}
		clean = append(clean, rebuilt)
	}

	for _, r := range clean {
		if existing, ok := m.byKey[r.NationalID]; ok {
			r.ID = existing.ID
		} else {
			r.ID = m.nextID
			m.nextID++
		}
		m.byKey[r.NationalID] = r
	}
	return nil
}

func (m *Memory) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey = make(map[string]exam.Result)
	return nil
}

func (m *Memory) FindByNationalID(_ context.Context, nationalID string) (*exam.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byKey[nationalID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byKey), nil
}
