// internal/app/features/neededitems/handler.go
package neededitems

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/policy/campaignpolicy"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves needed-item writes. Reads go through the campaigns feature.
type Handler struct {
	Campaigns *campaignsvc.Service
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(svc *campaignsvc.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Campaigns: svc, ErrLog: errLog, Log: logger}
}

// Create handles POST /api/needed-items. A campaign that does not exist is
// reported as a validation error on campaignId by the service.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in campaignsvc.NeededItemInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "create needed item", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create needed item")
	defer cancel()

	if in.CampaignID > 0 {
		c, found, err := h.Campaigns.Get(ctx, in.CampaignID)
		if err != nil {
			h.ErrLog.Respond(w, r, "create needed item", err)
			return
		}
		if found && !campaignpolicy.CanManage(r, c) {
			h.ErrLog.LogForbidden(w, r, "needed item create refused")
			return
		}
	}

	it, err := h.Campaigns.AddNeededItem(ctx, in)
	if err != nil {
		h.ErrLog.Respond(w, r, "create needed item", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, it)
}

// Update handles PUT /api/needed-items/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadManaged(w, r)
	if !ok {
		return
	}
	var patch models.NeededItemPatch
	if err := httpjson.Decode(w, r, &patch); err != nil {
		h.ErrLog.Respond(w, r, "update needed item", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update needed item")
	defer cancel()

	updated, found, err := h.Campaigns.UpdateNeededItem(ctx, it.ID, patch)
	if err != nil {
		h.ErrLog.Respond(w, r, "update needed item", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Needed item")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/needed-items/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadManaged(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete needed item")
	defer cancel()

	deleted, err := h.Campaigns.DeleteNeededItem(ctx, it.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete needed item", err)
		return
	}
	if !deleted {
		uierrors.RenderNotFound(w, r, "Needed item")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"id": it.ID, "deleted": true})
}

// loadManaged loads the item in {id} and checks that the current user may
// manage its campaign. An item whose campaign is gone can only be touched
// by an admin.
func (h *Handler) loadManaged(w http.ResponseWriter, r *http.Request) (models.NeededItem, bool) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		uierrors.RenderNotFound(w, r, "Needed item")
		return models.NeededItem{}, false
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get needed item")
	defer cancel()

	it, found, err := h.Campaigns.GetNeededItem(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "get needed item", err)
		return it, false
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Needed item")
		return it, false
	}
	c, _, err := h.Campaigns.Get(ctx, it.CampaignID)
	if err != nil {
		h.ErrLog.Respond(w, r, "get campaign", err)
		return it, false
	}
	if !campaignpolicy.CanManage(r, c) {
		h.ErrLog.LogForbidden(w, r, "needed item write refused")
		return it, false
	}
	return it, true
}
