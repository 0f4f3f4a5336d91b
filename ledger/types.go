/*
Package ledger provides the inventory ledger engine.

PURPOSE:
  Tracks stock levels of product variants ("dimensions") by recording
  every movement as an immutable ledger record and deriving balances
  from the record sequence. There is no separate stock table that can
  drift out of sync: the ledger is the only source of truth.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: An immutable ledger entry recording one stock movement
  - Kind: Closed enumeration of movement kinds
  - Dimension: Normalized string key; its existence is implied by history

ORDERING MODEL:
  Every record carries two independent orderings:
  1. Insertion order - the store-assigned, strictly increasing ID.
     Balance derivation uses this ordering exclusively.
  2. Effective date - the calendar date stated by the operator. It may
     precede records with smaller IDs (a backdated entry). Reporting
     windows use this ordering exclusively.

  A record's BalanceAfter is the dimension's balance immediately after
  the record AS OF INSERTION ORDER. Appending a backdated record never
  rewrites the BalanceAfter of records that already exist.

DESIGN PRINCIPLES:
  1. Immutability: Records are never modified; the only destructive
     operation is undoing the single most recent record store-wide.
  2. Precision: decimal.Decimal for quantities and prices, no floats.
  3. Implicit dimensions: any normalized key that ever appeared in a
     record "exists"; a key with no records has balance zero.

SEE ALSO:
  - store.go: Persistence interface
  - ledger.go: Mutation orchestrator and balance resolution
  - normalize.go: Dimension key canonicalization
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
)

// =============================================================================
// KIND - Closed enumeration of movement kinds
// =============================================================================

// Kind classifies a stock movement.
type Kind string

const (
	// KindStockAdded records received inventory. Delta is positive.
	KindStockAdded Kind = "stock_added"

	// KindSale records stock sold to a customer. Delta is negative.
	KindSale Kind = "sale"

	// KindAdjustment reconciles the ledger with a physical count.
	// Delta is signed: actual count minus the current balance.
	KindAdjustment Kind = "adjustment"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStockAdded, KindSale, KindAdjustment:
		return true
	}
	return false
}

// ParseKind converts a string into a Kind, rejecting unknown values.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

// =============================================================================
// RECORD - Immutable ledger entry
// =============================================================================

// Record is one stock movement. Once appended it is never mutated; it
// can only be destroyed by undoing the most recent record store-wide.
type Record struct {
	// ID is assigned by the store at append time. Strictly increasing
	// and unique across the whole store, it defines insertion order.
	ID int64

	// EffectiveDate is the calendar date the movement is attributed to.
	// Supplied by the caller; may be earlier than records with smaller
	// IDs (backdated entry). No monotonicity constraint.
	EffectiveDate date.Date

	// EntryTime is the wall-clock time of insertion. Used only as a
	// secondary sort key when listing same-day entries.
	EntryTime time.Time

	// Actor identifies the operator who recorded the movement.
	Actor string

	// Dimension is the normalized variant key.
	Dimension string

	Kind Kind

	// Delta is the signed quantity moved. Positive increases stock.
	Delta decimal.Decimal

	// BalanceAfter is the dimension's stock level immediately after
	// this record, as of insertion order.
	BalanceAfter decimal.Decimal

	// UnitCost is the purchase cost per unit. Meaningful on StockAdded.
	UnitCost decimal.Decimal

	// UnitPrice is the selling price per unit. Meaningful on Sale.
	UnitPrice decimal.Decimal

	Note string
}
