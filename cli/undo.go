package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/ledger"
)

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "remove the most recently entered record" }
func (*undoCmd) Usage() string {
	return `inv undo

  Removes the newest record in the whole ledger, across all
  dimensions. Only the newest record can be removed; repeat to peel
  back further. A backup is taken first.
`
}

func (*undoCmd) SetFlags(_ *flag.FlagSet) {}

func (*undoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	removed, err := eng.Undo(ctx)
	if errors.Is(err, ledger.ErrEmptyStore) {
		fmt.Println("The ledger is empty; nothing to undo.")
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(fmt.Sprintf("**Removed** %s of `%s` (%s, %s)\n",
		removed.Delta, removed.Dimension, removed.Kind, removed.EffectiveDate))
	return subcommands.ExitSuccess
}
