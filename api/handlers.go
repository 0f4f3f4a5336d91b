/*
handlers.go - HTTP API handlers for the inventory ledger

PURPOSE:
  Exposes the ledger engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Mutations:
    POST   /api/stock                  Add stock
    POST   /api/sales                  Record a sale
    POST   /api/adjustments            Set an absolute level
    POST   /api/undo                   Remove the newest record

  Reads:
    GET    /api/inventory              Current balances + low stock
    GET    /api/dimensions             All dimension keys
    GET    /api/dimensions/suggest     Autocomplete (?q=prefix)
    GET    /api/dimensions/{dim}/history  Movement history (?limit=)
    GET    /api/report                 Windowed report (?start=&end=&days=)
    GET    /api/export/transactions    Full ledger as CSV
    GET    /api/export/stock           Stock summary as CSV

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 409: Conflict (insufficient stock, undo on empty ledger)
  - 500: Internal errors

ACTOR:
  The optional X-Actor header attributes the mutation; otherwise the
  engine's default actor is recorded.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/config"
	"github.com/warp/inventory-engine/date"
	"github.com/warp/inventory-engine/export"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/report"
)

const entryTimeFormat = time.RFC3339

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	Engine *ledger.Ledger
	Config config.Config
}

// NewHandler creates a Handler around the engine.
func NewHandler(engine *ledger.Ledger, cfg config.Config) *Handler {
	return &Handler{Engine: engine, Config: cfg}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AddStock handles POST /api/stock.
func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.Engine.AddStock)
}

// RecordSale handles POST /api/sales.
func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.Engine.RecordSale)
}

// Adjust handles POST /api/adjustments.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.Engine.Adjust)
}

// Undo handles POST /api/undo.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Engine.Undo(actorContext(r))
	if errors.Is(err, ledger.ErrEmptyStore) {
		writeError(w, http.StatusConflict, "Nothing to undo", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to undo", err)
		return
	}
	writeJSON(w, http.StatusOK, UndoResponse{Removed: toRecordDTO(removed)})
}

func (h *Handler) movement(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, e ledger.Entry) (ledger.Record, error)) {
	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := req.toEntry()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid movement", err)
		return
	}

	rec, err := op(actorContext(r), entry)
	if err != nil {
		writeMovementError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordDTO(rec))
}

func (req MovementRequest) toEntry() (ledger.Entry, error) {
	entry := ledger.Entry{
		Dimension:     req.Dimension,
		Note:          req.Note,
		AllowNegative: req.AllowNegative,
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return entry, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}
	entry.Amount = amount

	if req.Date != "" {
		if entry.Date, err = date.Parse(req.Date); err != nil {
			return entry, err
		}
	}
	if req.UnitCost != "" {
		if entry.UnitCost, err = decimal.NewFromString(req.UnitCost); err != nil {
			return entry, fmt.Errorf("invalid unit_cost %q: %w", req.UnitCost, err)
		}
	}
	if req.UnitPrice != "" {
		if entry.UnitPrice, err = decimal.NewFromString(req.UnitPrice); err != nil {
			return entry, fmt.Errorf("invalid unit_price %q: %w", req.UnitPrice, err)
		}
	}
	return entry, nil
}

func writeMovementError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		writeError(w, http.StatusConflict, "Insufficient stock", err)
	case ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid movement", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to record movement", err)
	}
}

// =============================================================================
// READS
// =============================================================================

// GetInventory handles GET /api/inventory.
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	levels, err := report.Inventory(ctx, h.Engine.Store())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load inventory", err)
		return
	}
	low, err := report.LowStock(ctx, h.Engine.Store(), h.Config.LowStockThreshold)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load inventory", err)
		return
	}
	writeJSON(w, http.StatusOK, InventoryDTO{Levels: levels, LowStock: low})
}

// ListDimensions handles GET /api/dimensions.
func (h *Handler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	dims, err := h.Engine.Dimensions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list dimensions", err)
		return
	}
	if dims == nil {
		dims = []string{}
	}
	writeJSON(w, http.StatusOK, dims)
}

// SuggestDimensions handles GET /api/dimensions/suggest?q=prefix.
func (h *Handler) SuggestDimensions(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Engine.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to suggest dimensions", err)
		return
	}
	if matches == nil {
		matches = []string{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// GetHistory handles GET /api/dimensions/{dim}/history?limit=N.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	dim := chi.URLParam(r, "dim")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	records, err := h.Engine.History(r.Context(), dim, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTOs(records))
}

// GetReport handles GET /api/report. The window is either
// ?start=YYYY-MM-DD&end=YYYY-MM-DD or ?days=N (ending today,
// default 30).
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	window, err := reportWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report window", err)
		return
	}

	sum, err := report.Build(r.Context(), h.Engine.Store(), window)
	if errors.Is(err, date.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, "Invalid report window", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func reportWindow(r *http.Request) (date.Range, error) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")

	if start != "" || end != "" {
		if start == "" || end == "" {
			return date.Range{}, fmt.Errorf("start and end must be given together")
		}
		from, err := date.Parse(start)
		if err != nil {
			return date.Range{}, err
		}
		to, err := date.Parse(end)
		if err != nil {
			return date.Range{}, err
		}
		return date.NewRange(from, to), nil
	}

	days := 30
	if raw := q.Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return date.Range{}, fmt.Errorf("invalid days %q", raw)
		}
		days = n
	}
	return date.LastDays(date.Today(), days), nil
}

// ExportTransactions handles GET /api/export/transactions.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	// The status line goes out with the first flush; an error past
	// that point can only truncate the stream.
	_ = export.Transactions(r.Context(), w, h.Engine.Store())
}

// ExportStock handles GET /api/export/stock.
func (h *Handler) ExportStock(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="stock.csv"`)
	_ = export.Stock(r.Context(), w, h.Engine.Store())
}

// =============================================================================
// HELPERS
// =============================================================================

func actorContext(r *http.Request) context.Context {
	ctx := r.Context()
	if actor := r.Header.Get("X-Actor"); actor != "" {
		ctx = ledger.WithActor(ctx, actor)
	}
	return ctx
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
