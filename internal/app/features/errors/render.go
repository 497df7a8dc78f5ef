// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
)

// RenderUnauthorized tells the client to sign in.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request) {
	httpjson.Message(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue.")
}

// RenderForbidden reports an access error with msg. An empty msg uses a
// generic message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "You don't have permission to do that."
	}
	httpjson.Message(w, http.StatusForbidden, "forbidden", msg)
}

// RenderNotFound reports a missing entity named by what ("Campaign").
func RenderNotFound(w http.ResponseWriter, r *http.Request, what string) {
	httpjson.Message(w, http.StatusNotFound, "not_found", what+" not found.")
}
