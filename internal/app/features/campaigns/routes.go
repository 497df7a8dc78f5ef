// internal/app/features/campaigns/routes.go
package campaigns

import (
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/campaigns.
//
// Reads are public. {id} in GET /{id} also accepts a campaign code.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/code/{code}", h.ViewByCode)
	r.Get("/{id}", h.View)
	r.Get("/{id}/items", h.Items)
	r.Get("/{id}/progress", h.Progress)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.Create)
		pr.Put("/{id}", h.Update)
		pr.Post("/{id}/deactivate", h.Deactivate)
		pr.With(sm.RequireRole(models.RoleAdmin)).Delete("/{id}", h.Delete)
	})

	return r
}
