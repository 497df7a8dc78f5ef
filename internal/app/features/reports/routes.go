// internal/app/features/reports/routes.go
package reports

import (
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers GET /{id}/donations/export on the campaigns router.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.With(sm.RequireSignedIn).Get("/{id}/donations/export", h.ServeDonationsXLSX)
}
