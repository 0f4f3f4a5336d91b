package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/ledger/store"
)

func newLedger() *ledger.Ledger {
	return ledger.New(store.NewMemory())
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddStockThenSell(t *testing.T) {
	// GIVEN a fresh ledger
	eng := newLedger()
	ctx := context.Background()

	// WHEN stock is added and then sold
	added, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10 X 16", Amount: d("50")})
	require.NoError(t, err)
	sold, err := eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("20")})
	require.NoError(t, err)

	// THEN both spellings hit the same dimension and balances chain
	assert.Equal(t, "10x16", added.Dimension)
	assert.Equal(t, "50", added.BalanceAfter.String())
	assert.Equal(t, ledger.KindSale, sold.Kind)
	assert.Equal(t, "-20", sold.Delta.String())
	assert.Equal(t, "30", sold.BalanceAfter.String())

	balance, err := eng.Latest(ctx, "10*16")
	require.NoError(t, err)
	assert.Equal(t, "30", balance.String())
}

func TestBackdatedEntryResolvesAgainstCurrentBalance(t *testing.T) {
	// GIVEN a ledger with today's movements: +50, then -20
	eng := newLedger()
	ctx := context.Background()
	today := date.Today()

	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("50"), Date: today})
	require.NoError(t, err)
	_, err = eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("20"), Date: today})
	require.NoError(t, err)

	// WHEN a delivery dated last week is entered now
	backdated, err := eng.AddStock(ctx, ledger.Entry{
		Dimension: "10x16",
		Amount:    d("10"),
		Date:      today.Add(-7),
	})
	require.NoError(t, err)

	// THEN it resolves against the current balance, not the balance
	// the ledger showed on its effective date
	assert.Equal(t, "40", backdated.BalanceAfter.String())

	balance, err := eng.Latest(ctx, "10x16")
	require.NoError(t, err)
	assert.Equal(t, "40", balance.String())

	// AND earlier records are untouched
	history, err := eng.History(ctx, "10x16", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, rec := range history {
		if rec.ID == 2 {
			assert.Equal(t, "30", rec.BalanceAfter.String())
		}
	}
}

func TestRecordSaleExceedingStockRejected(t *testing.T) {
	// GIVEN 5 units on hand
	eng := newLedger()
	ctx := context.Background()

	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("5")})
	require.NoError(t, err)

	// WHEN selling 8
	_, err = eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("8")})

	// THEN the sale is rejected with the shortfall spelled out
	require.Error(t, err)
	var insufficient *ledger.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.ErrorIs(t, err, ledger.ErrInsufficientStock)
	assert.Equal(t, "5", insufficient.Available.String())
	assert.Equal(t, "8", insufficient.Requested.String())
	assert.Equal(t, "3", insufficient.Shortfall().String())

	// AND nothing was appended
	count, err := eng.Store().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordSaleAllowNegative(t *testing.T) {
	// GIVEN 5 units on hand
	eng := newLedger()
	ctx := context.Background()

	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("5")})
	require.NoError(t, err)

	// WHEN overselling with the override
	rec, err := eng.RecordSale(ctx, ledger.Entry{
		Dimension:     "10x16",
		Amount:        d("8"),
		AllowNegative: true,
	})

	// THEN the balance goes negative and the ledger keeps going
	require.NoError(t, err)
	assert.Equal(t, "-3", rec.BalanceAfter.String())
}

func TestAdjustSetsAbsoluteLevel(t *testing.T) {
	// GIVEN a ledger balance of 30
	eng := newLedger()
	ctx := context.Background()

	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("30")})
	require.NoError(t, err)

	// WHEN a physical count finds 27
	rec, err := eng.Adjust(ctx, ledger.Entry{Dimension: "10x16", Amount: d("27"), Note: "shelf count"})
	require.NoError(t, err)

	// THEN the adjustment records the signed difference
	assert.Equal(t, ledger.KindAdjustment, rec.Kind)
	assert.Equal(t, "-3", rec.Delta.String())
	assert.Equal(t, "27", rec.BalanceAfter.String())

	// AND a count matching the ledger is a no-op error
	_, err = eng.Adjust(ctx, ledger.Entry{Dimension: "10x16", Amount: d("27")})
	assert.ErrorIs(t, err, ledger.ErrAmountZero)
}

func TestUndoRemovesOnlyTheLastRecord(t *testing.T) {
	// GIVEN +50 then -20
	eng := newLedger()
	ctx := context.Background()

	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("50")})
	require.NoError(t, err)
	_, err = eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("20")})
	require.NoError(t, err)

	// WHEN the sale is undone
	removed, err := eng.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindSale, removed.Kind)

	// THEN the balance rolls back
	balance, err := eng.Latest(ctx, "10x16")
	require.NoError(t, err)
	assert.Equal(t, "50", balance.String())

	// AND re-entering the sale lands on a fresh id with the same balance
	redo, err := eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("20")})
	require.NoError(t, err)
	assert.Greater(t, redo.ID, removed.ID)
	assert.Equal(t, "30", redo.BalanceAfter.String())
}

func TestUndoEmptyLedger(t *testing.T) {
	eng := newLedger()

	_, err := eng.Undo(context.Background())
	assert.ErrorIs(t, err, ledger.ErrEmptyStore)
}

func TestEntryValidation(t *testing.T) {
	eng := newLedger()
	ctx := context.Background()

	// Empty dimension
	_, err := eng.AddStock(ctx, ledger.Entry{Dimension: "   ", Amount: d("5")})
	assert.ErrorIs(t, err, ledger.ErrEmptyDimension)

	// Non-positive amounts
	_, err = eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("0")})
	assert.ErrorIs(t, err, ledger.ErrAmountNotPositive)
	_, err = eng.RecordSale(ctx, ledger.Entry{Dimension: "10x16", Amount: d("-3")})
	assert.ErrorIs(t, err, ledger.ErrAmountNotPositive)

	// Future effective date
	_, err = eng.AddStock(ctx, ledger.Entry{
		Dimension: "10x16",
		Amount:    d("5"),
		Date:      date.Today().Add(1),
	})
	assert.ErrorIs(t, err, ledger.ErrFutureDate)
}

func TestUnknownDimensionBalanceIsZero(t *testing.T) {
	eng := newLedger()

	balance, err := eng.Latest(context.Background(), "never seen")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestSuggestUsesNormalizedPrefix(t *testing.T) {
	eng := newLedger()
	ctx := context.Background()

	for _, dim := range []string{"10x16", "10x20", "8x10"} {
		_, err := eng.AddStock(ctx, ledger.Entry{Dimension: dim, Amount: d("1")})
		require.NoError(t, err)
	}

	matches, err := eng.Suggest(ctx, "10 X ")
	require.NoError(t, err)
	assert.Equal(t, []string{"10x16", "10x20"}, matches)
}

func TestActorAttribution(t *testing.T) {
	// GIVEN a ledger constructed for a named operator
	eng := ledger.New(store.NewMemory(), ledger.AsActor("alex"))
	ctx := context.Background()

	rec, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("5")})
	require.NoError(t, err)
	assert.Equal(t, "alex", rec.Actor)

	// WHEN the context carries a different actor
	rec, err = eng.AddStock(ledger.WithActor(ctx, "sam"), ledger.Entry{Dimension: "10x16", Amount: d("5")})
	require.NoError(t, err)

	// THEN the context wins for that call only
	assert.Equal(t, "sam", rec.Actor)
}

type failingBackups struct{ calls int }

func (f *failingBackups) Create() error {
	f.calls++
	return errors.New("disk full")
}

func TestBackupFailureDoesNotBlockWrites(t *testing.T) {
	// GIVEN a backup sink that always fails
	fb := &failingBackups{}
	eng := ledger.New(store.NewMemory(), ledger.WithBackups(fb))
	ctx := context.Background()

	// WHEN a mutation runs
	rec, err := eng.AddStock(ctx, ledger.Entry{Dimension: "10x16", Amount: d("5")})

	// THEN the write still lands and the backup was attempted
	require.NoError(t, err)
	assert.Equal(t, "5", rec.BalanceAfter.String())
	assert.Equal(t, 1, fb.calls)
}
