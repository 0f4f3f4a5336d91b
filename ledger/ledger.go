/*
ledger.go - Mutation orchestrator and balance resolution

PURPOSE:
  The Ledger wires the engine together. Every mutation follows the
  same sequence:

    normalize dimension -> best-effort backup -> resolve new balance
    from the current latest-by-insertion-order record -> append

  Undo replaces the final append with DeleteTail.

BALANCE RESOLUTION:
  resolve() always reads the CURRENT balance - the BalanceAfter of the
  largest-ID record for the dimension - regardless of the new record's
  effective date. A backdated StockAdded dated yesterday, appended
  after today's sale, is resolved against today's post-sale balance,
  not against what the balance was yesterday. Inserting a backdated
  record therefore never retroactively adjusts existing records.

VALIDATION SPLIT:
  The store performs no business validation; this layer does. Sales
  exceeding the current balance are rejected before any store call
  unless the caller explicitly permits a negative result (a backdated
  correction). Adjustments and forced entries may drive a balance
  negative; confirmation flows live with the caller.

SEE ALSO:
  - store.go: Persistence contract
  - errors.go: Error conditions raised here
*/
package ledger

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
)

// Ledger orchestrates mutations over a Store.
type Ledger struct {
	store   Store
	backups Backups
	actor   string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBackups installs a backup manager invoked before every mutation.
func WithBackups(b Backups) Option {
	return func(l *Ledger) { l.backups = b }
}

// AsActor sets the default actor attributed to mutations.
func AsActor(name string) Option {
	return func(l *Ledger) { l.actor = name }
}

// New creates a Ledger over the given store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		backups: NoBackups{},
		actor:   DefaultActor,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// =============================================================================
// ENTRY - Caller-facing mutation request
// =============================================================================

// Entry describes a requested stock movement. The dimension is free
// text and is normalized by the engine. A zero Date means today.
type Entry struct {
	Dimension string
	Amount    decimal.Decimal
	Date      date.Date
	UnitCost  decimal.Decimal
	UnitPrice decimal.Decimal
	Note      string

	// AllowNegative permits a sale to drive the balance below zero.
	// Callers set it after an explicit confirmation, typically for
	// backdated corrections.
	AllowNegative bool
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AddStock records received inventory. Amount must be positive.
func (l *Ledger) AddStock(ctx context.Context, e Entry) (Record, error) {
	if !e.Amount.IsPositive() {
		return Record{}, ErrAmountNotPositive
	}
	return l.append(ctx, e, KindStockAdded, e.Amount)
}

// RecordSale records a sale of Amount units. Amount must be positive and,
// unless AllowNegative is set, must not exceed the current balance.
func (l *Ledger) RecordSale(ctx context.Context, e Entry) (Record, error) {
	if !e.Amount.IsPositive() {
		return Record{}, ErrAmountNotPositive
	}
	dim, err := l.dimension(e.Dimension)
	if err != nil {
		return Record{}, err
	}
	if !e.AllowNegative {
		available, err := l.store.Latest(ctx, dim)
		if err != nil {
			return Record{}, err
		}
		if e.Amount.GreaterThan(available) {
			return Record{}, &InsufficientStockError{
				Dimension: dim,
				Available: available,
				Requested: e.Amount,
			}
		}
	}
	return l.append(ctx, e, KindSale, e.Amount.Neg())
}

// Adjust reconciles the ledger with a physical count: Amount is the
// actual counted stock and the delta is derived from the current
// balance. A count equal to the current balance is rejected with
// ErrAmountZero since it would record nothing.
func (l *Ledger) Adjust(ctx context.Context, e Entry) (Record, error) {
	dim, err := l.dimension(e.Dimension)
	if err != nil {
		return Record{}, err
	}
	current, err := l.store.Latest(ctx, dim)
	if err != nil {
		return Record{}, err
	}
	delta := e.Amount.Sub(current)
	if delta.IsZero() {
		return Record{}, ErrAmountZero
	}
	return l.append(ctx, e, KindAdjustment, delta)
}

// Undo removes the single most recent record store-wide and returns
// it. Because IDs are global, only that record's dimension is
// affected. Fails with ErrEmptyStore when there is nothing to undo.
func (l *Ledger) Undo(ctx context.Context) (Record, error) {
	l.backup()
	return l.store.DeleteTail(ctx)
}

// append runs the shared tail of every write: resolve the new balance
// against the current one and persist.
func (l *Ledger) append(ctx context.Context, e Entry, kind Kind, delta decimal.Decimal) (Record, error) {
	dim, err := l.dimension(e.Dimension)
	if err != nil {
		return Record{}, err
	}
	effective := e.Date
	if effective.IsZero() {
		effective = date.Today()
	}
	if effective.After(date.Today()) {
		return Record{}, ErrFutureDate
	}

	l.backup()

	balance, err := l.Resolve(ctx, dim, delta)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		EffectiveDate: effective,
		EntryTime:     time.Now().UTC(),
		Actor:         l.actorFor(ctx),
		Dimension:     dim,
		Kind:          kind,
		Delta:         delta,
		BalanceAfter:  balance,
		UnitCost:      e.UnitCost,
		UnitPrice:     e.UnitPrice,
		Note:          e.Note,
	}
	return l.store.Append(ctx, rec)
}

// Resolve computes the balance a record with the given signed delta
// would leave behind: the current latest-by-insertion-order balance
// plus delta. It performs no bound checking and will happily return a
// negative balance; callers validate beforehand.
func (l *Ledger) Resolve(ctx context.Context, dimension string, delta decimal.Decimal) (decimal.Decimal, error) {
	current, err := l.store.Latest(ctx, dimension)
	if err != nil {
		return decimal.Zero, err
	}
	return current.Add(delta), nil
}

// =============================================================================
// READS
// =============================================================================

// Latest returns the current balance for a dimension, zero if the
// dimension has never been seen. The key is normalized first.
func (l *Ledger) Latest(ctx context.Context, dimension string) (decimal.Decimal, error) {
	dim, err := l.dimension(dimension)
	if err != nil {
		return decimal.Zero, err
	}
	return l.store.Latest(ctx, dim)
}

// History returns the dimension's records sorted by effective date
// then entry time, most recent first, truncated to limit.
func (l *Ledger) History(ctx context.Context, dimension string, limit int) ([]Record, error) {
	dim, err := l.dimension(dimension)
	if err != nil {
		return nil, err
	}
	return l.store.History(ctx, dim, limit)
}

// Dimensions returns every normalized key ever recorded.
func (l *Ledger) Dimensions(ctx context.Context) ([]string, error) {
	return l.store.Dimensions(ctx)
}

// Suggest returns known dimensions starting with the normalized form
// of partial, for autocomplete.
func (l *Ledger) Suggest(ctx context.Context, partial string) ([]string, error) {
	dims, err := l.store.Dimensions(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(partial, dims), nil
}

// Store exposes the underlying store for read-only collaborators
// (reporting, export).
func (l *Ledger) Store() Store { return l.store }

// =============================================================================
// INTERNALS
// =============================================================================

func (l *Ledger) dimension(raw string) (string, error) {
	dim := Normalize(raw)
	if dim == "" {
		return "", ErrEmptyDimension
	}
	return dim, nil
}

func (l *Ledger) actorFor(ctx context.Context) string {
	if name := ActorFrom(ctx); name != "" {
		return name
	}
	return l.actor
}

// backup copies the store aside. A failed backup is logged and the
// mutation proceeds: durability here is best-effort, not transactional.
func (l *Ledger) backup() {
	if err := l.backups.Create(); err != nil {
		log.Printf("ledger: backup failed, continuing: %v", err)
	}
}
