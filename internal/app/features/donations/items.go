// internal/app/features/donations/items.go
package donations

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// partialBody is returned when the donation was stored but not every line.
type partialBody struct {
	donationsvc.Recorded
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Create handles POST /api/donations. Anyone may pledge.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in donationsvc.ItemDonationInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "record donation", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "record donation")
	defer cancel()

	rec, err := h.Donations.RecordItemDonation(ctx, in)
	if err != nil {
		if _, isValidation := inputval.AsValidation(err); rec.Donation.ID != 0 && !isValidation {
			h.Log.Error("record donation: partial write",
				zap.Int64("donation_id", rec.Donation.ID),
				zap.Int("lines_written", len(rec.Items)),
				zap.Error(err))
			httpjson.Write(w, http.StatusInternalServerError, partialBody{
				Error:    "partial",
				Message:  "The donation was saved but some items were not.",
				Recorded: rec,
			})
			return
		}
		h.ErrLog.Respond(w, r, "record donation", err)
		return
	}
	h.Log.Info("donation recorded",
		zap.Int64("donation_id", rec.Donation.ID),
		zap.Int64("campaign_id", rec.Donation.CampaignID),
		zap.Int("lines", len(rec.Items)))
	httpjson.Write(w, http.StatusCreated, rec)
}

// UpdateStatus handles PUT /api/donations/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDonation(w, r)
	if !ok {
		return
	}
	var in statusInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "update donation status", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update donation status")
	defer cancel()

	updated, found, err := h.Donations.UpdateDonationStatus(ctx, d.ID, in.Status)
	if err != nil {
		h.ErrLog.Respond(w, r, "update donation status", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Donation")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// List handles GET /api/donations?campaignId=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.listScope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list donations")
	defer cancel()

	list, err := h.Donations.ListDonations(ctx, campaignID)
	if err != nil {
		h.ErrLog.Respond(w, r, "list donations", err)
		return
	}
	if list == nil {
		list = []models.Donation{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// View handles GET /api/donations/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDonation(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, d)
}

// Items handles GET /api/donations/{id}/items.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDonation(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list donation items")
	defer cancel()

	lines, err := h.Donations.DonationItems(ctx, d.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "list donation items", err)
		return
	}
	if lines == nil {
		lines = []models.DonationItem{}
	}
	httpjson.Write(w, http.StatusOK, lines)
}

// loadDonation loads the donation in {id} and checks that the current user
// may see it.
func (h *Handler) loadDonation(w http.ResponseWriter, r *http.Request) (models.Donation, bool) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		uierrors.RenderNotFound(w, r, "Donation")
		return models.Donation{}, false
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get donation")
	defer cancel()

	d, found, err := h.Donations.GetDonation(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "get donation", err)
		return d, false
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Donation")
		return d, false
	}
	return d, h.canView(w, r, d.CampaignID)
}
