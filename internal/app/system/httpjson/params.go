package httpjson

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PathID parses the chi URL parameter name as a positive id.
func PathID(r *http.Request, name string) (int64, bool) {
	return parseID(chi.URLParam(r, name))
}

// QueryID parses the query parameter name as an id. A missing parameter
// yields (0, true); a present but malformed one yields false.
func QueryID(r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	return parseID(raw)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
