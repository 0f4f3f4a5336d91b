package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

type sellCmd struct {
	date          string
	price         string
	note          string
	allowNegative bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale" }
func (*sellCmd) Usage() string {
	return `inv sell [-date <YYYY-MM-DD>] [-price <unit_price>] [-note <text>] [-force] <dimension> <amount>

  Appends a sale. Selling more than the current balance is rejected
  unless -force is given, in which case the balance goes negative and
  a later adjustment reconciles it.

Usage Examples:
# Sold 2 at the saturday market
$ inv sell -price 12 -note "saturday market" 10x16 2
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Effective date (YYYY-MM-DD, default today)")
	f.StringVar(&c.price, "price", "", "Unit price of the sale")
	f.StringVar(&c.note, "note", "", "Free-text note")
	f.BoolVar(&c.allowNegative, "force", false, "Allow the balance to go negative")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError(f, "expected: <dimension> <amount>")
	}

	entry := ledger.Entry{
		Dimension:     f.Arg(0),
		Note:          c.note,
		AllowNegative: c.allowNegative,
	}
	var err error
	if entry.Amount, err = decimal.NewFromString(f.Arg(1)); err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", f.Arg(1), err))
	}
	if c.date != "" {
		if entry.Date, err = date.Parse(c.date); err != nil {
			return fail(err)
		}
	}
	if c.price != "" {
		if entry.UnitPrice, err = decimal.NewFromString(c.price); err != nil {
			return fail(fmt.Errorf("invalid unit price %q: %w", c.price, err))
		}
	}

	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	rec, err := eng.RecordSale(ctx, entry)
	var insufficient *ledger.InsufficientStockError
	if errors.As(err, &insufficient) {
		fmt.Fprintf(os.Stderr, "Error: only %s of %s in stock (%s requested); use -force to oversell\n",
			insufficient.Available, insufficient.Dimension, insufficient.Requested)
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(recordMarkdown("Sold", rec))
	return subcommands.ExitSuccess
}
