// Package store provides ledger.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps records in insertion order in a slice. IDs come from a
// monotonically increasing counter and are never reused, matching the
// AUTOINCREMENT behavior of the durable store.
type Memory struct {
	mu      sync.RWMutex
	records []ledger.Record
	nextID  int64
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Append assigns the next global ID and stores the record.
func (m *Memory) Append(_ context.Context, rec ledger.Record) (ledger.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec.ID = m.nextID
	m.nextID++
	m.records = append(m.records, rec)
	return rec, nil
}

// Latest returns the BalanceAfter of the largest-ID record for the
// dimension. Records are kept in insertion order, so scanning backward
// finds it.
func (m *Memory) Latest(_ context.Context, dimension string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].Dimension == dimension {
			return m.records[i].BalanceAfter, nil
		}
	}
	return decimal.Zero, nil
}

func (m *Memory) History(_ context.Context, dimension string, limit int) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []ledger.Record
	for _, rec := range m.records {
		if rec.Dimension == dimension {
			result = append(result, rec)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].EffectiveDate == result[j].EffectiveDate {
			return result[i].EntryTime.After(result[j].EntryTime)
		}
		return result[i].EffectiveDate.After(result[j].EffectiveDate)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *Memory) Dimensions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var dims []string
	for _, rec := range m.records {
		if !seen[rec.Dimension] {
			seen[rec.Dimension] = true
			dims = append(dims, rec.Dimension)
		}
	}
	sort.Strings(dims)
	return dims, nil
}

func (m *Memory) LoadRange(_ context.Context, r date.Range) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []ledger.Record
	for _, rec := range m.records {
		if r.Contains(rec.EffectiveDate) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *Memory) All(_ context.Context, limit int) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.Record, len(m.records))
	for i, rec := range m.records {
		result[len(m.records)-1-i] = rec
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// DeleteTail removes the record with the largest ID, which by
// construction is the last element of the slice.
func (m *Memory) DeleteTail(_ context.Context) (ledger.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records) == 0 {
		return ledger.Record{}, ledger.ErrEmptyStore
	}
	tail := m.records[len(m.records)-1]
	m.records = m.records[:len(m.records)-1]
	return tail, nil
}

var _ ledger.Store = (*Memory)(nil)
