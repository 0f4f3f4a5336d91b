/*
Package report derives read-only summaries from the ledger.

PURPOSE:
  Answers the questions the ledger itself only stores the raw material
  for: what sold in a window, what it earned and cost, how fast each
  dimension moves, and which dimensions are about to run out.

SCOPE:
  Reports select records by EFFECTIVE DATE, so a backdated sale entered
  today lands in last week's report. Balances are deliberately not
  recomputed here; the ledger's balance_after chain is the only balance
  authority.

MONEY:
  Revenue of a sale = quantity sold x unit_price captured on the
  record. Cost is the purchase side: quantity received x unit_cost
  over the window's stock additions. Profit is cash in minus cash out
  for the window, not per-unit COGS.

SEE ALSO:
  - ledger/store.go: LoadRange feeds every windowed report
*/
package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

// DimensionSales aggregates one dimension's sales inside a window.
type DimensionSales struct {
	Dimension string          `json:"dimension"`
	QtySold   decimal.Decimal `json:"qty_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// VelocityRow describes how fast one dimension sells.
type VelocityRow struct {
	Dimension string          `json:"dimension"`
	QtySold   decimal.Decimal `json:"qty_sold"`
	PerDay    decimal.Decimal `json:"per_day"`
	Stock     decimal.Decimal `json:"stock"`
	// DaysLeft is nil when nothing sold in the window: projecting
	// runway from zero velocity would divide by zero.
	DaysLeft *decimal.Decimal `json:"days_left,omitempty"`
}

// StockLevel is one dimension's current balance.
type StockLevel struct {
	Dimension string          `json:"dimension"`
	Stock     decimal.Decimal `json:"stock"`
}

// Summary is a full windowed report.
type Summary struct {
	Window       date.Range       `json:"window"`
	Sales        []DimensionSales `json:"sales"`
	Velocity     []VelocityRow    `json:"velocity"`
	TotalSold    decimal.Decimal  `json:"total_sold"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	// TotalCost is the purchase cost of stock additions in the window.
	TotalCost decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal  `json:"profit"`
	// Margin is profit as a percentage of revenue, zero when there
	// was no revenue.
	Margin decimal.Decimal `json:"margin"`
}

// Build computes the summary for records whose effective date falls
// inside the window, endpoints included.
func Build(ctx context.Context, store ledger.Store, window date.Range) (*Summary, error) {
	if !window.Valid() {
		return nil, date.ErrInvalidRange
	}
	records, err := store.LoadRange(ctx, window)
	if err != nil {
		return nil, err
	}

	s := &Summary{Window: window}
	byDim := map[string]*DimensionSales{}
	for _, rec := range records {
		switch rec.Kind {
		case ledger.KindSale:
			agg, ok := byDim[rec.Dimension]
			if !ok {
				agg = &DimensionSales{Dimension: rec.Dimension}
				byDim[rec.Dimension] = agg
			}
			qty := rec.Delta.Neg() // sales store negative deltas
			agg.QtySold = agg.QtySold.Add(qty)
			agg.Revenue = agg.Revenue.Add(qty.Mul(rec.UnitPrice))
		case ledger.KindStockAdded:
			s.TotalCost = s.TotalCost.Add(rec.Delta.Mul(rec.UnitCost))
		}
	}

	for _, agg := range byDim {
		s.Sales = append(s.Sales, *agg)
		s.TotalSold = s.TotalSold.Add(agg.QtySold)
		s.TotalRevenue = s.TotalRevenue.Add(agg.Revenue)
	}
	sort.Slice(s.Sales, func(i, j int) bool {
		// Best sellers first, ties alphabetical.
		if !s.Sales[i].QtySold.Equal(s.Sales[j].QtySold) {
			return s.Sales[i].QtySold.GreaterThan(s.Sales[j].QtySold)
		}
		return s.Sales[i].Dimension < s.Sales[j].Dimension
	})

	s.Profit = s.TotalRevenue.Sub(s.TotalCost)
	if s.TotalRevenue.IsPositive() {
		s.Margin = s.Profit.Div(s.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if err := s.buildVelocity(ctx, store, window); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Summary) buildVelocity(ctx context.Context, store ledger.Store, window date.Range) error {
	days := decimal.NewFromInt(int64(window.Days()))
	for _, sale := range s.Sales {
		stock, err := store.Latest(ctx, sale.Dimension)
		if err != nil {
			return err
		}
		row := VelocityRow{
			Dimension: sale.Dimension,
			QtySold:   sale.QtySold,
			PerDay:    sale.QtySold.Div(days).Round(4),
			Stock:     stock,
		}
		if row.PerDay.IsPositive() {
			left := stock.Div(row.PerDay).Round(1)
			row.DaysLeft = &left
		}
		s.Velocity = append(s.Velocity, row)
	}
	return nil
}

// Inventory returns the current balance of every known dimension,
// sorted by key. Zero and negative balances are included.
func Inventory(ctx context.Context, store ledger.Store) ([]StockLevel, error) {
	dims, err := store.Dimensions(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]StockLevel, 0, len(dims))
	for _, dim := range dims {
		stock, err := store.Latest(ctx, dim)
		if err != nil {
			return nil, err
		}
		levels = append(levels, StockLevel{Dimension: dim, Stock: stock})
	}
	return levels, nil
}

// LowStock returns dimensions whose balance is positive but below the
// threshold. Zero balances are sold out, not low, and stay out of the
// list.
func LowStock(ctx context.Context, store ledger.Store, threshold decimal.Decimal) ([]StockLevel, error) {
	levels, err := Inventory(ctx, store)
	if err != nil {
		return nil, err
	}
	var low []StockLevel
	for _, lv := range levels {
		if lv.Stock.IsPositive() && lv.Stock.LessThan(threshold) {
			low = append(low, lv)
		}
	}
	return low, nil
}
