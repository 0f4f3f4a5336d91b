/*
Package sqlite provides the SQLite-backed implementation of ledger.Store.

PURPOSE:
  Persists ledger records in a single `transactions` table whose
  AUTOINCREMENT primary key IS the insertion order. The two orderings
  the engine needs map to two indexes: (dimension, id DESC) for the
  latest-balance hot path and effective_date for reporting windows.

NEAR-APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements exist for the transactions table.
  - The single DELETE is DeleteTail, restricted to MAX(id) and run
    inside a database transaction so remove-and-return is atomic.

REPRESENTATION:
  Quantities and prices are stored as decimal strings, never floats.
  Effective dates are stored as "YYYY-MM-DD" (sortable as text), entry
  times as RFC 3339.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and SQLite is opened in WAL
  mode. The system itself is single-operator; the locking exists so a
  future concurrent surface fails safe rather than corrupting.

USAGE:
  st, err := sqlite.New("./inventory.db")
  if err != nil { ... }
  defer st.Close()
  eng := ledger.New(st, ledger.WithBackups(backup.New(st.Path(), 30)))

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// New creates a SQLite store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Path returns the database file path, for the backup manager.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	-- Ledger of stock movements. id defines insertion order;
	-- AUTOINCREMENT guarantees ids are never reused after an undo.
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		effective_date TEXT NOT NULL,
		entry_time TEXT NOT NULL,
		actor TEXT NOT NULL,
		dimension TEXT NOT NULL,
		kind TEXT NOT NULL,
		delta TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		unit_cost TEXT NOT NULL DEFAULT '0',
		unit_price TEXT NOT NULL DEFAULT '0',
		note TEXT NOT NULL DEFAULT ''
	);

	-- Latest-balance lookup (hot path): largest id per dimension.
	CREATE INDEX IF NOT EXISTS idx_transactions_dimension_id
		ON transactions(dimension, id DESC);

	-- Report windows filter by effective date.
	CREATE INDEX IF NOT EXISTS idx_transactions_effective_date
		ON transactions(effective_date);

	CREATE INDEX IF NOT EXISTS idx_transactions_kind
		ON transactions(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

const recordColumns = `id, effective_date, entry_time, actor, dimension, kind,
	delta, balance_after, unit_cost, unit_price, note`

// =============================================================================
// WRITES
// =============================================================================

// Append inserts the record and returns it with the assigned id.
func (s *Store) Append(ctx context.Context, rec ledger.Record) (ledger.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO transactions
		(effective_date, entry_time, actor, dimension, kind,
		 delta, balance_after, unit_cost, unit_price, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.ExecContext(ctx, query,
		rec.EffectiveDate.String(),
		rec.EntryTime.UTC().Format(time.RFC3339Nano),
		rec.Actor,
		rec.Dimension,
		string(rec.Kind),
		rec.Delta.String(),
		rec.BalanceAfter.String(),
		rec.UnitCost.String(),
		rec.UnitPrice.String(),
		rec.Note,
	)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("failed to append record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ledger.Record{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// DeleteTail removes the record with the globally largest id. The
// select and delete run in one database transaction so the returned
// record is exactly the one removed.
func (s *Store) DeleteTail(ctx context.Context) (ledger.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM transactions ORDER BY id DESC LIMIT 1`)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, ledger.ErrEmptyStore
	}
	if err != nil {
		return ledger.Record{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, rec.ID); err != nil {
		return ledger.Record{}, fmt.Errorf("failed to delete record %d: %w", rec.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return ledger.Record{}, err
	}
	return rec, nil
}

// =============================================================================
// READS
// =============================================================================

// Latest returns the balance_after of the largest-id record for the
// dimension, zero if the dimension was never seen.
func (s *Store) Latest(ctx context.Context, dimension string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT balance_after FROM transactions
		WHERE dimension = ?
		ORDER BY id DESC
		LIMIT 1
	`, dimension).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return parseDecimal(raw)
}

// History returns the dimension's records, most recent effective date
// first, same-day entries ordered by entry time.
func (s *Store) History(ctx context.Context, dimension string, limit int) ([]ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + recordColumns + `
		FROM transactions
		WHERE dimension = ?
		ORDER BY effective_date DESC, entry_time DESC
	`
	if limit > 0 {
		return s.queryRecords(ctx, query+` LIMIT ?`, dimension, limit)
	}
	return s.queryRecords(ctx, query, dimension)
}

// Dimensions returns every dimension key ever recorded, sorted.
func (s *Store) Dimensions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT dimension FROM transactions ORDER BY dimension`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dims []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, rows.Err()
}

// LoadRange returns records with effective_date in [r.From, r.To], in
// insertion order. Canonical dates sort correctly as text.
func (s *Store) LoadRange(ctx context.Context, r date.Range) ([]ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + recordColumns + `
		FROM transactions
		WHERE effective_date >= ? AND effective_date <= ?
		ORDER BY id ASC
	`
	return s.queryRecords(ctx, query, r.From.String(), r.To.String())
}

// All returns records newest-first by insertion order.
func (s *Store) All(ctx context.Context, limit int) ([]ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + recordColumns + ` FROM transactions ORDER BY id DESC`
	if limit > 0 {
		return s.queryRecords(ctx, query+` LIMIT ?`, limit)
	}
	return s.queryRecords(ctx, query)
}

// Count returns the total number of records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

// =============================================================================
// SCANNING
// =============================================================================

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (ledger.Record, error) {
	var (
		rec           ledger.Record
		effectiveDate string
		entryTime     string
		kind          string
		delta         string
		balanceAfter  string
		unitCost      string
		unitPrice     string
	)
	err := row.Scan(&rec.ID, &effectiveDate, &entryTime, &rec.Actor, &rec.Dimension,
		&kind, &delta, &balanceAfter, &unitCost, &unitPrice, &rec.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("failed to scan record: %w", err)
	}

	if rec.EffectiveDate, err = date.Parse(effectiveDate); err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	if rec.EntryTime, err = time.Parse(time.RFC3339Nano, entryTime); err != nil {
		return rec, fmt.Errorf("record %d: invalid entry_time %q: %w", rec.ID, entryTime, err)
	}
	if rec.Kind, err = ledger.ParseKind(kind); err != nil {
		return rec, fmt.Errorf("record %d: kind %q: %w", rec.ID, kind, err)
	}
	if rec.Delta, err = parseDecimal(delta); err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	if rec.BalanceAfter, err = parseDecimal(balanceAfter); err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	if rec.UnitCost, err = parseDecimal(unitCost); err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	if rec.UnitPrice, err = parseDecimal(unitPrice); err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	return rec, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

var _ ledger.Store = (*Store)(nil)
