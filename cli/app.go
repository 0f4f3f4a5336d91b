// Package cli implements the terminal application for the inventory
// ledger. Each subcommand lives in its own file; app.go holds the
// global flags and the shared engine wiring.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/warp/inventory-engine/backup"
	"github.com/warp/inventory-engine/config"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/store/sqlite"
)

// Register the subcommands.
// A main package calls Register() to install them, then Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "movements")
	c.Register(&sellCmd{}, "movements")
	c.Register(&adjustCmd{}, "movements")
	c.Register(&undoCmd{}, "movements")

	c.Register(&inventoryCmd{}, "queries")
	c.Register(&historyCmd{}, "queries")
	c.Register(&reportCmd{}, "queries")
	c.Register(&dimsCmd{}, "queries")
	c.Register(&exportCmd{}, "queries")
}

// As a CLI application with a short lifecycle, globals are fine here.

var dbFile = flag.String("db", "inventory.db", "Path to the SQLite inventory database")
var configFile = flag.String("config", config.DefaultPath, "Path to the JSON config file")
var actor = flag.String("actor", "", "Name recorded against mutations (defaults to the config user)")

// OpenEngine opens the database and wires the ledger with its backup
// manager. The returned close function must run before exit.
func OpenEngine() (*ledger.Ledger, config.Config, func(), error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, cfg, nil, err
	}

	st, err := sqlite.New(*dbFile)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("failed to open database %s: %w", *dbFile, err)
	}

	opts := []ledger.Option{
		ledger.WithBackups(backup.New(st.Path(), cfg.BackupsToKeep)),
	}
	if *actor != "" {
		opts = append(opts, ledger.AsActor(*actor))
	}
	return ledger.New(st, opts...), cfg, func() { st.Close() }, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func usageError(f *flag.FlagSet, msg string) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, msg)
	f.Usage()
	return subcommands.ExitUsageError
}
