package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/config"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/ledger/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Ledger) {
	t.Helper()
	eng := ledger.New(store.NewMemory())
	srv := httptest.NewServer(NewRouter(NewHandler(eng, config.Default())))
	t.Cleanup(srv.Close)
	return srv, eng
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAddStockEndpoint(t *testing.T) {
	// GIVEN a running server
	srv, _ := newTestServer(t)

	// WHEN posting a stock addition with a messy dimension
	resp := postJSON(t, srv.URL+"/api/stock",
		`{"dimension": "10 X 16", "amount": "50", "unit_cost": "3.25"}`)

	// THEN the record comes back normalized with a chained balance
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := decode[RecordDTO](t, resp)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "10x16", rec.Dimension)
	assert.Equal(t, "stock_added", rec.Kind)
	assert.Equal(t, "50", rec.BalanceAfter)
	assert.Equal(t, "3.25", rec.UnitCost)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	// GIVEN 5 units on hand
	srv, _ := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x16", "amount": "5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN selling 8
	resp = postJSON(t, srv.URL+"/api/sales", `{"dimension": "10x16", "amount": "8"}`)

	// THEN the API answers 409 with the shortfall in the details
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "Insufficient stock", body.Error)
	assert.Contains(t, body.Details, "10x16")
}

func TestMovementValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"bad amount", `{"dimension": "10x16", "amount": "lots"}`},
		{"zero amount", `{"dimension": "10x16", "amount": "0"}`},
		{"empty dimension", `{"dimension": "  ", "amount": "5"}`},
		{"bad date", `{"dimension": "10x16", "amount": "5", "date": "soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/stock", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUndoEndpoint(t *testing.T) {
	// GIVEN one record
	srv, _ := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x16", "amount": "5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// WHEN undoing twice
	resp = postJSON(t, srv.URL+"/api/undo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	undo := decode[UndoResponse](t, resp)
	assert.Equal(t, int64(1), undo.Removed.ID)

	resp = postJSON(t, srv.URL+"/api/undo", "")

	// THEN the second undo finds an empty ledger
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestActorHeader(t *testing.T) {
	// GIVEN a request carrying X-Actor
	srv, eng := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/stock",
		strings.NewReader(`{"dimension": "10x16", "amount": "5"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "sam")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// THEN the record is attributed to that actor
	rec := decode[RecordDTO](t, resp)
	assert.Equal(t, "sam", rec.Actor)

	history, err := eng.History(req.Context(), "10x16", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "sam", history[0].Actor)
}

func TestInventoryAndSuggestEndpoints(t *testing.T) {
	// GIVEN two dimensions, one below the default low-stock threshold
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x16", "amount": "50"}`)
	postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x20", "amount": "3"}`)

	// WHEN reading inventory
	resp, err := http.Get(srv.URL + "/api/inventory")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	inv := decode[InventoryDTO](t, resp)
	require.Len(t, inv.Levels, 2)
	require.Len(t, inv.LowStock, 1)
	assert.Equal(t, "10x20", inv.LowStock[0].Dimension)

	// AND suggestions match the normalized prefix
	resp, err = http.Get(srv.URL + "/api/dimensions/suggest?q=10+X")
	require.NoError(t, err)
	defer resp.Body.Close()
	matches := decode[[]string](t, resp)
	assert.Equal(t, []string{"10x16", "10x20"}, matches)
}

func TestReportEndpointWindows(t *testing.T) {
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x16", "amount": "50"}`)
	postJSON(t, srv.URL+"/api/sales", `{"dimension": "10x16", "amount": "5", "unit_price": "12"}`)

	// Default 30-day window sees today's sale.
	resp, err := http.Get(srv.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum struct {
		TotalSold    string `json:"total_sold"`
		TotalRevenue string `json:"total_revenue"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, "5", sum.TotalSold)
	assert.Equal(t, "60", sum.TotalRevenue)

	// Explicit windows must be complete and parseable.
	resp, err = http.Get(srv.URL + "/api/report?start=2024-03-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/report?start=2024-03-31&end=2024-03-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/stock", `{"dimension": "10x16", "amount": "50"}`)

	resp, err := http.Get(srv.URL + "/api/export/stock")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	var buf strings.Builder
	_, err = io.Copy(&buf, resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "dimension,stock\n10x16,50\n", buf.String())
}
