/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to
  handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a local frontend

ROUTE GROUPS:
  /api/stock, /api/sales, /api/adjustments, /api/undo   Mutations
  /api/inventory, /api/dimensions/*, /api/report        Reads
  /api/export/*                                         CSV downloads

SECURITY NOTE:
  No authentication middleware. The server is meant to bind to
  localhost for a single operator.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Mutations
		r.Post("/stock", h.AddStock)
		r.Post("/sales", h.RecordSale)
		r.Post("/adjustments", h.Adjust)
		r.Post("/undo", h.Undo)

		// Reads
		r.Get("/inventory", h.GetInventory)
		r.Route("/dimensions", func(r chi.Router) {
			r.Get("/", h.ListDimensions)
			r.Get("/suggest", h.SuggestDimensions)
			r.Get("/{dim}/history", h.GetHistory)
		})
		r.Get("/report", h.GetReport)

		// Exports
		r.Route("/export", func(r chi.Router) {
			r.Get("/transactions", h.ExportTransactions)
			r.Get("/stock", h.ExportStock)
		})
	})

	return r
}
