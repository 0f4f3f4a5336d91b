/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error conditions of the engine in one place. Callers building
  confirmation flows (CLI prompts, HTTP handlers) branch on these with
  errors.Is / errors.As.

ERROR CATEGORIES:
  1. Input validation - rejected before any store call
  2. Business rules - sale exceeding stock, empty-store undo
  3. Store failures - wrapped by the store implementations

SEE ALSO:
  - ledger.go: Where most of these are raised
  - store.go: ErrEmptyStore contract for DeleteTail
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyStore is returned by DeleteTail when no record exists.
	ErrEmptyStore = errors.New("ledger is empty")

	// ErrEmptyDimension is returned when a dimension key normalizes to
	// the empty string.
	ErrEmptyDimension = errors.New("dimension cannot be empty")

	// ErrAmountNotPositive is returned when a quantity that must be
	// strictly positive (stock received, amount sold) is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrAmountZero is returned by adjustments that would change nothing:
	// the counted stock equals the recorded balance.
	ErrAmountZero = errors.New("amount must be non-zero")

	// ErrInsufficientStock is returned when a sale exceeds the current
	// balance and negative stock was not explicitly permitted.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrFutureDate is returned when an effective date lies in the future.
	ErrFutureDate = errors.New("effective date cannot be in the future")

	// ErrUnknownKind is returned when parsing a movement kind fails.
	ErrUnknownKind = errors.New("unknown movement kind")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError details a sale that exceeds available stock.
type InsufficientStockError struct {
	Dimension string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %s, requested %s (short by %s)",
		e.Dimension, e.Available, e.Requested, e.Shortfall())
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Shortfall returns how much the request exceeds the available stock.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// IsClientError reports whether the error is due to invalid caller input
// rather than an engine or storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyDimension) ||
		errors.Is(err, ErrAmountNotPositive) ||
		errors.Is(err, ErrAmountZero) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrUnknownKind)
}
