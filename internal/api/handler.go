// Package api exposes the ledger over HTTP as JSON. Handlers are thin: they
// decode requests, call a service, and encode the result; every business
// rule lives below them.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth        *service.AuthService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	ledger      *service.LedgerService
}

// NewHandler creates a Handler over the given services.
func NewHandler(authSvc *service.AuthService, groups *service.GroupService, expenses *service.ExpenseService, settlements *service.SettlementService, ledgerSvc *service.LedgerService) *Handler {
	return &Handler{
		auth:        authSvc,
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		ledger:      ledgerSvc,
	}
}

// NewRouter builds the chi router with middleware and all routes mounted.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/register", h.register)
	r.Post("/api/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtManager))

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", h.createGroup)
			r.Get("/", h.listGroups)

			r.Route("/{groupID}", func(r chi.Router) {
				r.Get("/", h.getGroup)
				r.Post("/members", h.addMembers)
				r.Delete("/members/{userID}", h.removeMember)
				r.Post("/expenses", h.createExpense)
				r.Post("/settlements", h.recordSettlement)
				r.Get("/settlements", h.listSettlements)
				r.Get("/balances", h.balances)
				r.Get("/feed", h.feed)
				r.Get("/report", h.report)
			})
		})

		r.Delete("/api/expenses/{expenseID}", h.deleteExpense)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
