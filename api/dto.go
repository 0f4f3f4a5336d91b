/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal ledger model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  All quantities and money travel as decimal strings ("2.5", "12.00"),
  never floats. Parsing happens in handlers.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/report"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// MovementRequest is the body for stock additions, sales and
// adjustments. Amount is a decimal string; Date is YYYY-MM-DD and
// defaults to today when empty.
type MovementRequest struct {
	Dimension string `json:"dimension"`
	Amount    string `json:"amount"`
	Date      string `json:"date,omitempty"`
	UnitCost  string `json:"unit_cost,omitempty"`
	UnitPrice string `json:"unit_price,omitempty"`
	Note      string `json:"note,omitempty"`

	// AllowNegative lets a sale drive the balance below zero.
	AllowNegative bool `json:"allow_negative,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RecordDTO is one ledger record in API responses.
type RecordDTO struct {
	ID            int64  `json:"id"`
	EffectiveDate string `json:"effective_date"`
	EntryTime     string `json:"entry_time"`
	Actor         string `json:"actor"`
	Dimension     string `json:"dimension"`
	Kind          string `json:"kind"`
	Delta         string `json:"delta"`
	BalanceAfter  string `json:"balance_after"`
	UnitCost      string `json:"unit_cost"`
	UnitPrice     string `json:"unit_price"`
	Note          string `json:"note,omitempty"`
}

// InventoryDTO is the current-stock response.
type InventoryDTO struct {
	Levels   []report.StockLevel `json:"levels"`
	LowStock []report.StockLevel `json:"low_stock"`
}

// UndoResponse reports the record an undo removed.
type UndoResponse struct {
	Removed RecordDTO `json:"removed"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toRecordDTO(rec ledger.Record) RecordDTO {
	return RecordDTO{
		ID:            rec.ID,
		EffectiveDate: rec.EffectiveDate.String(),
		EntryTime:     rec.EntryTime.UTC().Format(entryTimeFormat),
		Actor:         rec.Actor,
		Dimension:     rec.Dimension,
		Kind:          string(rec.Kind),
		Delta:         rec.Delta.String(),
		BalanceAfter:  rec.BalanceAfter.String(),
		UnitCost:      rec.UnitCost.String(),
		UnitPrice:     rec.UnitPrice.String(),
		Note:          rec.Note,
	}
}

func toRecordDTOs(records []ledger.Record) []RecordDTO {
	dtos := make([]RecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toRecordDTO(rec))
	}
	return dtos
}
