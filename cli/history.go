package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the movement history of one dimension" }
func (*historyCmd) Usage() string {
	return `inv history [-n <limit>] <dimension>

  Lists the dimension's movements, most recent effective date first.
  Backdated entries sort by their stated date, so the list reads as a
  calendar even when entries arrived out of order.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Maximum number of movements to show (0 for all)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError(f, "expected: <dimension>")
	}

	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	records, err := eng.History(ctx, f.Arg(0), c.limit)
	if err != nil {
		return fail(err)
	}
	printMarkdown(historyMarkdown(f.Arg(0), records))
	return subcommands.ExitSuccess
}
