/*
store.go - Persistence interface for ledger records

PURPOSE:
  Defines the interface between the engine and the database. The store
  assigns insertion order (record IDs) and answers the two orderings
  the engine needs: latest-by-ID for balances, effective-date windows
  for reporting.

NEAR-APPEND-ONLY CONTRACT:
  - Append() is the only way to create a record.
  - DeleteTail() is the only way to destroy one, and it is restricted
    to the record with the globally largest ID. No other mutation or
    deletion API exists; records are never updated.

IMPLEMENTATIONS:
  - store/sqlite: durable store used by the binaries
  - ledger/store: in-memory store for tests and ephemeral runs

SEE ALSO:
  - ledger.go: The orchestrator calling into this interface
*/
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
)

// Store persists ledger records and assigns insertion order.
type Store interface {
	// Append assigns the next global ID, persists the record, and
	// returns it with the ID set. It performs no business validation.
	Append(ctx context.Context, rec Record) (Record, error)

	// Latest returns the BalanceAfter of the record with the largest
	// ID for the dimension, or zero if the dimension has no records.
	Latest(ctx context.Context, dimension string) (decimal.Decimal, error)

	// History returns records for the dimension sorted by
	// (effective date desc, entry time desc), truncated to limit.
	// A non-positive limit means no truncation.
	History(ctx context.Context, dimension string, limit int) ([]Record, error)

	// Dimensions returns every normalized key ever seen, sorted.
	Dimensions(ctx context.Context) ([]string, error)

	// LoadRange returns records whose effective date falls within r,
	// boundaries included, in insertion order.
	LoadRange(ctx context.Context, r date.Range) ([]Record, error)

	// All returns records in reverse insertion order (newest first),
	// truncated to limit. A non-positive limit means no truncation.
	All(ctx context.Context, limit int) ([]Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)

	// DeleteTail removes and returns the record with the globally
	// largest ID. Returns ErrEmptyStore when no record exists.
	DeleteTail(ctx context.Context) (Record, error)
}

// =============================================================================
// BACKUPS - Best-effort durability hook
// =============================================================================

// Backups copies the whole store aside before a mutation. Failures are
// reported to the caller, which logs them and proceeds: the backup is
// best-effort and never blocks or rolls back the mutation.
type Backups interface {
	Create() error
}

// NoBackups is a Backups that does nothing. Used with in-memory stores.
type NoBackups struct{}

func (NoBackups) Create() error { return nil }
