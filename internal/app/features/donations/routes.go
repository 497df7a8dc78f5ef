// internal/app/features/donations/routes.go
package donations

import (
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/donations. Pledging is public;
// everything else needs a signed-in user allowed to see the campaign's donors.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(h.pledgeLimit).Post("/", h.Create)
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.List)
		pr.Get("/{id}", h.View)
		pr.Get("/{id}/items", h.Items)
		pr.Put("/{id}/status", h.UpdateStatus)
	})
	return r
}

// FinancialRoutes returns the router mounted at /api/financial-donations.
func FinancialRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(h.pledgeLimit).Post("/", h.CreateFinancial)
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ListFinancial)
		pr.Get("/{id}", h.ViewFinancial)
		pr.Put("/{id}/status", h.UpdateFinancialStatus)
	})
	return r
}

func (h *Handler) pledgeLimit(next http.Handler) http.Handler {
	if h.PledgeLimit == nil {
		return next
	}
	return ratelimit.Middleware(h.PledgeLimit)(next)
}
