package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

type adjustCmd struct {
	date string
	note string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "set a dimension to a counted level" }
func (*adjustCmd) Usage() string {
	return `inv adjust [-date <YYYY-MM-DD>] [-note <text>] <dimension> <counted_level>

  Reconciles the ledger with a physical count. The recorded movement
  is the signed difference between the count and the current balance.

Usage Examples:
# Shelf count found 27, whatever the ledger says
$ inv adjust -note "shelf count" 10x16 27
`
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Effective date (YYYY-MM-DD, default today)")
	f.StringVar(&c.note, "note", "", "Free-text note")
}

func (c *adjustCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError(f, "expected: <dimension> <counted_level>")
	}

	entry := ledger.Entry{Dimension: f.Arg(0), Note: c.note}
	var err error
	if entry.Amount, err = decimal.NewFromString(f.Arg(1)); err != nil {
		return fail(fmt.Errorf("invalid level %q: %w", f.Arg(1), err))
	}
	if c.date != "" {
		if entry.Date, err = date.Parse(c.date); err != nil {
			return fail(err)
		}
	}

	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	rec, err := eng.Adjust(ctx, entry)
	if errors.Is(err, ledger.ErrAmountZero) {
		fmt.Println("Ledger already matches the count; nothing recorded.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(recordMarkdown("Adjusted", rec))
	return subcommands.ExitSuccess
}
