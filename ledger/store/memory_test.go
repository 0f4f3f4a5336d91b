package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

var entryClock = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

// appendRec appends a one-unit record with a strictly increasing
// entry time, so same-day ordering is deterministic.
func appendRec(t *testing.T, m *Memory, dim, day string) ledger.Record {
	t.Helper()
	entryClock = entryClock.Add(time.Second)
	rec, err := m.Append(context.Background(), ledger.Record{
		EffectiveDate: date.MustParse(day),
		EntryTime:     entryClock,
		Dimension:     dim,
		Kind:          ledger.KindStockAdded,
		Delta:         decimal.NewFromInt(1),
		BalanceAfter:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	return rec
}

func TestMemoryHistoryOrdering(t *testing.T) {
	// GIVEN records inserted out of date order, plus same-day entries
	m := NewMemory()
	appendRec(t, m, "10x16", "2024-03-05")
	first := appendRec(t, m, "10x16", "2024-03-10")
	second := appendRec(t, m, "10x16", "2024-03-10")
	appendRec(t, m, "8x10", "2024-03-20")

	// WHEN reading history
	history, err := m.History(context.Background(), "10x16", 0)
	require.NoError(t, err)

	// THEN effective date sorts first, entry time breaks same-day ties
	require.Len(t, history, 3)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, "2024-03-05", history[2].EffectiveDate.String())
}

func TestMemoryIDsNotReusedAfterDeleteTail(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	appendRec(t, m, "10x16", "2024-03-05")
	tail := appendRec(t, m, "10x16", "2024-03-06")

	removed, err := m.DeleteTail(ctx)
	require.NoError(t, err)
	assert.Equal(t, tail.ID, removed.ID)

	next := appendRec(t, m, "10x16", "2024-03-07")
	assert.Greater(t, next.ID, removed.ID)

	_, err = m.DeleteTail(ctx)
	require.NoError(t, err)
	_, err = m.DeleteTail(ctx)
	require.NoError(t, err)
	_, err = m.DeleteTail(ctx)
	assert.ErrorIs(t, err, ledger.ErrEmptyStore)
}
