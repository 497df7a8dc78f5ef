// internal/app/features/categories/handler.go
package categories

import (
	"net/http"
	"sort"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the category list. Categories are seeded at startup and
// read-only over HTTP.
type Handler struct {
	Categories store.Table[models.Category]
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(categories store.Table[models.Category], errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Categories: categories, ErrLog: errLog, Log: logger}
}

// ServeList handles GET /api/categories, ordered by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list categories")
	defer cancel()

	cats, err := h.Categories.List(ctx, nil)
	if err != nil {
		h.ErrLog.Respond(w, r, "list categories", err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].NameCI < cats[j].NameCI
	})
	httpjson.Write(w, http.StatusOK, cats)
}
