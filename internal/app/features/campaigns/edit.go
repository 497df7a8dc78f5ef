// internal/app/features/campaigns/edit.go
package campaigns

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/policy/campaignpolicy"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// Create handles POST /api/campaigns. The signed-in user becomes the creator.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r)
		return
	}
	var in campaignsvc.CreateInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "create campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create campaign")
	defer cancel()

	c, err := h.Campaigns.Create(ctx, u.ID, in)
	if err != nil {
		h.ErrLog.Respond(w, r, "create campaign", err)
		return
	}
	h.Log.Info("campaign created",
		zap.Int64("campaign_id", c.ID),
		zap.String("code", c.UniqueCode),
		zap.Int64("created_by", u.ID))
	httpjson.Write(w, http.StatusCreated, c)
}

// Update handles PUT /api/campaigns/{id}. Only the fields present in the
// body change; the campaign code cannot be sent.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadManaged(w, r)
	if !ok {
		return
	}
	var patch models.CampaignPatch
	if err := httpjson.Decode(w, r, &patch); err != nil {
		h.ErrLog.Respond(w, r, "update campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update campaign")
	defer cancel()

	updated, found, err := h.Campaigns.Update(ctx, c.ID, patch)
	if err != nil {
		h.ErrLog.Respond(w, r, "update campaign", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Deactivate handles POST /api/campaigns/{id}/deactivate. Needed items and
// donations are kept.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadManaged(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate campaign")
	defer cancel()

	updated, found, err := h.Campaigns.Deactivate(ctx, c.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "deactivate campaign", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/campaigns/{id} (admin only). Everything that
// belongs to the campaign is deleted with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete campaign")
	defer cancel()

	deleted, err := h.Campaigns.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete campaign", err)
		return
	}
	if !deleted {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

// loadManaged loads the campaign in {id} and checks that the current user
// may manage it.
func (h *Handler) loadManaged(w http.ResponseWriter, r *http.Request) (models.Campaign, bool) {
	c, ok := h.loadCampaign(w, r, "id")
	if !ok {
		return c, false
	}
	if !campaignpolicy.CanManage(r, c) {
		h.ErrLog.LogForbidden(w, r, "campaign write refused")
		return c, false
	}
	return c, true
}
