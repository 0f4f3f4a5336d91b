/*
Package export writes ledger data as CSV for spreadsheets.

Two exports exist: the full transaction log (one row per record, in
insertion order) and the current stock summary (one row per
dimension). Both write to an io.Writer so callers choose between a
file and stdout.
*/
package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/report"
)

// Transactions writes every ledger record as CSV, oldest first.
func Transactions(ctx context.Context, w io.Writer, store ledger.Store) error {
	records, err := store.All(ctx, 0)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "effective_date", "entry_time", "actor", "dimension",
		"kind", "delta", "balance_after", "unit_cost", "unit_price", "note",
	}); err != nil {
		return err
	}

	// All returns newest first; the spreadsheet reads better oldest first.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.EffectiveDate.String(),
			rec.EntryTime.UTC().Format(time.RFC3339),
			rec.Actor,
			rec.Dimension,
			string(rec.Kind),
			rec.Delta.String(),
			rec.BalanceAfter.String(),
			rec.UnitCost.String(),
			rec.UnitPrice.String(),
			rec.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Stock writes the current balance of every dimension as CSV.
func Stock(ctx context.Context, w io.Writer, store ledger.Store) error {
	levels, err := report.Inventory(ctx, store)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"dimension", "stock"}); err != nil {
		return err
	}
	for _, lv := range levels {
		if err := cw.Write([]string{lv.Dimension, lv.Stock.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
