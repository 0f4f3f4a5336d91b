// Command inv is the terminal front end of the inventory ledger.
//
// Run `inv help` for the command list, or COMP_INSTALL=1 inv to
// install shell completion.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/cli"
)

func main() {
	name := path.Base(os.Args[0])

	// Shell completion handles the request and exits when the shell
	// is asking; it must run before flag.Parse.
	cli.Completer().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
