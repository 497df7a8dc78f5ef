// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
)

// Handler is the errors feature handler.
// No store needed; it only writes JSON bodies.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers routes that do not exist.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	httpjson.Message(w, http.StatusNotFound, "not_found", "No route matches "+r.Method+" "+r.URL.Path+".")
}

// MethodNotAllowed answers a known route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpjson.Message(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method "+r.Method+" is not allowed here.")
}
