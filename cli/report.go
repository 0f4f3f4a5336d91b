package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/report"
)

type reportCmd struct {
	start string
	end   string
	days  int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "sales, profit and velocity over a date window" }
func (*reportCmd) Usage() string {
	return `inv report [-s <start> -e <end> | -days <n>]

  Builds a sales report over a window of effective dates, endpoints
  included. Default window: the last 30 days ending today. Backdated
  sales count in the window their stated date falls into.

Usage Examples:
# March at a glance
$ inv report -s 2026-03-01 -e 2026-03-31
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Window start date (YYYY-MM-DD)")
	f.StringVar(&c.end, "e", "", "Window end date (YYYY-MM-DD)")
	f.IntVar(&c.days, "days", 30, "Window length ending today, when -s/-e are not given")
}

func (c *reportCmd) window() (date.Range, error) {
	if c.start == "" && c.end == "" {
		return date.LastDays(date.Today(), c.days), nil
	}
	from, err := date.Parse(c.start)
	if err != nil {
		return date.Range{}, err
	}
	to, err := date.Parse(c.end)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(from, to), nil
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := c.window()
	if err != nil {
		return fail(err)
	}

	eng, cfg, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	sum, err := report.Build(ctx, eng.Store(), window)
	if err != nil {
		return fail(err)
	}
	printMarkdown(reportMarkdown(cfg, sum))
	return subcommands.ExitSuccess
}
