// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /api/auth for sign-in and sign-up.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLoginPost)
	r.Post("/register", h.HandleRegisterPost)
	return r
}
