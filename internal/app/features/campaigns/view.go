// internal/app/features/campaigns/view.go
package campaigns

import (
	"net/http"
	"strings"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// List handles GET /api/campaigns. ?active=true keeps active campaigns only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list campaigns")
	defer cancel()

	f := campaignsvc.ListFilter{}
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("active"))) {
	case "true", "1", "yes":
		f.ActiveOnly = true
	}
	uid, ok := httpjson.QueryID(r, "createdBy")
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad createdBy", nil, "createdBy must be a user id.")
		return
	}
	f.CreatedBy = uid

	list, err := h.Campaigns.List(ctx, f)
	if err != nil {
		h.ErrLog.Respond(w, r, "list campaigns", err)
		return
	}
	if list == nil {
		list = []models.Campaign{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// View handles GET /api/campaigns/{id}. A numeric reference is tried as an
// id first and then as a code; anything else is looked up as a code.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get campaign")
	defer cancel()

	c, found, err := h.Campaigns.GetByRef(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Respond(w, r, "get campaign", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	httpjson.Write(w, http.StatusOK, c)
}

// ViewByCode handles GET /api/campaigns/code/{code}. The match is exact.
func (h *Handler) ViewByCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get campaign by code")
	defer cancel()

	c, found, err := h.Campaigns.ResolveByCode(ctx, chi.URLParam(r, "code"))
	if err != nil {
		h.ErrLog.Respond(w, r, "get campaign by code", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	httpjson.Write(w, http.StatusOK, c)
}

// Items handles GET /api/campaigns/{id}/items: needed items by priority.
// An unknown campaign has no items.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		httpjson.Write(w, http.StatusOK, []models.NeededItem{})
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list needed items")
	defer cancel()

	items, err := h.Match.NeededItemsByPriority(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "list needed items", err)
		return
	}
	if items == nil {
		items = []models.NeededItem{}
	}
	httpjson.Write(w, http.StatusOK, items)
}

// Progress handles GET /api/campaigns/{id}/progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCampaign(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "campaign progress")
	defer cancel()

	p, err := h.Campaigns.Progress(ctx, c.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "campaign progress", err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// loadCampaign resolves the numeric id in URL parameter param and writes
// 404 when there is no such campaign.
func (h *Handler) loadCampaign(w http.ResponseWriter, r *http.Request, param string) (models.Campaign, bool) {
	id, ok := httpjson.PathID(r, param)
	if !ok {
		uierrors.RenderNotFound(w, r, "Campaign")
		return models.Campaign{}, false
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get campaign")
	defer cancel()

	c, found, err := h.Campaigns.Get(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "get campaign", err)
		return c, false
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return c, false
	}
	return c, true
}
