package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type dimsCmd struct {
	prefix string
}

func (*dimsCmd) Name() string     { return "dims" }
func (*dimsCmd) Synopsis() string { return "list known dimensions" }
func (*dimsCmd) Usage() string {
	return `inv dims [-q <prefix>]

  Lists every dimension the ledger has seen. With -q, only those
  starting with the normalized prefix, the same matching the shell
  completion uses.
`
}

func (c *dimsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prefix, "q", "", "Only dimensions starting with this prefix")
}

func (c *dimsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, _, closeFn, err := OpenEngine()
	if err != nil {
		return fail(err)
	}
	defer closeFn()

	var dims []string
	if c.prefix != "" {
		dims, err = eng.Suggest(ctx, c.prefix)
	} else {
		dims, err = eng.Dimensions(ctx)
	}
	if err != nil {
		return fail(err)
	}

	for _, d := range dims {
		fmt.Println(d)
	}
	return subcommands.ExitSuccess
}
