package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/report"
)

type inventoryCmd struct {
	lowOnly bool
}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "show current stock of every dimension" }
func (*inventoryCmd) Usage() string {
	return `inv inventory [-low]

  Shows the current balance of every dimension, flagging the ones
  under the configured low-stock threshold. -low shows only those.
`
}

func (c *inventoryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.lowOnly, "low", false, "Show only dimensions running low")
}

func (c *inventoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, cfg, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	low, err := report.LowStock(ctx, eng.Store(), cfg.LowStockThreshold)
	if err != nil {
		return fail(err)
	}

	if c.lowOnly {
		printMarkdown(inventoryMarkdown(cfg, low, nil))
		return subcommands.ExitSuccess
	}

	levels, err := report.Inventory(ctx, eng.Store())
	if err != nil {
		return fail(err)
	}
	printMarkdown(inventoryMarkdown(cfg, levels, low))
	return subcommands.ExitSuccess
}
