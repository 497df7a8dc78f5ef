// internal/app/features/donations/financial.go
package donations

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// CreateFinancial handles POST /api/financial-donations. The response
// carries the payment instructions the donor should follow.
func (h *Handler) CreateFinancial(w http.ResponseWriter, r *http.Request) {
	var in donationsvc.FinancialInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "record financial donation", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "record financial donation")
	defer cancel()

	fd, err := h.Donations.RecordFinancialDonation(ctx, in)
	if err != nil {
		h.ErrLog.Respond(w, r, "record financial donation", err)
		return
	}
	h.Log.Info("financial donation recorded",
		zap.Int64("financial_donation_id", fd.ID),
		zap.Int64("campaign_id", fd.CampaignID),
		zap.Int64("amount", fd.Amount))
	httpjson.Write(w, http.StatusCreated, fd)
}

// UpdateFinancialStatus handles PUT /api/financial-donations/{id}/status.
func (h *Handler) UpdateFinancialStatus(w http.ResponseWriter, r *http.Request) {
	fd, ok := h.loadFinancial(w, r)
	if !ok {
		return
	}
	var in statusInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "update financial status", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update financial status")
	defer cancel()

	updated, found, err := h.Donations.UpdateFinancialStatus(ctx, fd.ID, in.Status)
	if err != nil {
		h.ErrLog.Respond(w, r, "update financial status", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Financial donation")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// ListFinancial handles GET /api/financial-donations?campaignId=.
func (h *Handler) ListFinancial(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.listScope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list financial donations")
	defer cancel()

	list, err := h.Donations.ListFinancialDonations(ctx, campaignID)
	if err != nil {
		h.ErrLog.Respond(w, r, "list financial donations", err)
		return
	}
	if list == nil {
		list = []models.FinancialDonation{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ViewFinancial handles GET /api/financial-donations/{id}.
func (h *Handler) ViewFinancial(w http.ResponseWriter, r *http.Request) {
	fd, ok := h.loadFinancial(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, fd)
}

func (h *Handler) loadFinancial(w http.ResponseWriter, r *http.Request) (models.FinancialDonation, bool) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		uierrors.RenderNotFound(w, r, "Financial donation")
		return models.FinancialDonation{}, false
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get financial donation")
	defer cancel()

	fd, found, err := h.Donations.GetFinancialDonation(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "get financial donation", err)
		return fd, false
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Financial donation")
		return fd, false
	}
	return fd, h.canView(w, r, fd.CampaignID)
}
