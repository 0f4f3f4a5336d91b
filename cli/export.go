package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/export"
	"github.com/warp/inventory-engine/ledger"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger or stock summary as CSV" }
func (*exportCmd) Usage() string {
	return `inv export [-o <file>] <transactions|stock>

  Writes CSV to stdout, or to -o. "transactions" is the full ledger
  in insertion order; "stock" is one row per dimension with its
  current balance.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (default stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError(f, "expected: transactions or stock")
	}

	var write func(context.Context, io.Writer, ledger.Store) error
	switch f.Arg(0) {
	case "transactions":
		write = export.Transactions
	case "stock":
		write = export.Stock
	default:
		return usageError(f, fmt.Sprintf("unknown export %q", f.Arg(0)))
	}

	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		w = file
	}

	if err := write(ctx, w, eng.Store()); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
