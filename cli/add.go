package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

type addCmd struct {
	date string
	cost string
	note string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record received stock for a dimension" }
func (*addCmd) Usage() string {
	return `inv add [-date <YYYY-MM-DD>] [-cost <unit_cost>] [-note <text>] <dimension> <amount>

  Appends a stock addition. The dimension is normalized, so
  "10 X 16", "10x16" and "10*16" all land on the same key. The date
  defaults to today; a past date is resolved against the current
  balance, not recomputed historically.

Usage Examples:
# 50 units of 10x16 received today at 3.25 each
$ inv add -cost 3.25 "10x16" 50
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Effective date (YYYY-MM-DD, default today)")
	f.StringVar(&c.cost, "cost", "", "Unit cost of the received stock")
	f.StringVar(&c.note, "note", "", "Free-text note")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError(f, "expected: <dimension> <amount>")
	}

	entry, err := c.entry(f.Arg(0), f.Arg(1))
	if err != nil {
		return fail(err)
	}

	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	rec, err := eng.AddStock(ctx, entry)
	if err != nil {
		return fail(err)
	}
	printMarkdown(recordMarkdown("Added", rec))
	return subcommands.ExitSuccess
}

func (c *addCmd) entry(dimension, amount string) (ledger.Entry, error) {
	entry := ledger.Entry{Dimension: dimension, Note: c.note}

	var err error
	if entry.Amount, err = decimal.NewFromString(amount); err != nil {
		return entry, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if c.date != "" {
		if entry.Date, err = date.Parse(c.date); err != nil {
			return entry, err
		}
	}
	if c.cost != "" {
		if entry.UnitCost, err = decimal.NewFromString(c.cost); err != nil {
			return entry, fmt.Errorf("invalid unit cost %q: %w", c.cost, err)
		}
	}
	return entry, nil
}
