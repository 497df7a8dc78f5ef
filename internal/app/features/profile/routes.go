// internal/app/features/profile/routes.go
package profile

import (
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/auth/me.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeMe)
	r.Delete("/", h.DeleteMe)
	r.With(sm.RequireRole(models.RoleOrganization, models.RoleAdmin)).Put("/payment-account", h.UpdatePaymentAccount)
	return r
}
