// internal/app/features/userinfo/handler.go
package userinfo

import (
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
)

// Handler serves session status for clients that need to know who is
// signed in without requiring it.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeUserInfo returns the current session state.
//
// Response format:
//
//	{ "isAuthenticated": bool, "id": 0, "name": "...", "login": "...", "role": "..." }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Write(w, http.StatusOK, map[string]any{
			"isAuthenticated": false,
			"id":              0,
			"name":            "",
			"login":           "",
			"role":            "",
		})
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"id":              user.ID,
		"name":            user.Name,
		"login":           user.LoginID,
		"role":            user.Role,
	})
}
