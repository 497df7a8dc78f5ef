// internal/app/features/donations/handler.go
package donations

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/policy/campaignpolicy"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/ratelimit"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves item donations: the public pledge form and the
// owner/admin views of what was pledged.
type Handler struct {
	Donations *donationsvc.Service
	Match     *matching.Service
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger

	// PledgeLimit throttles anonymous pledges per client IP; nil disables it.
	PledgeLimit *ratelimit.Limiter
}

// NewHandler constructs a donations Handler.
func NewHandler(svc *donationsvc.Service, match *matching.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Donations: svc,
		Match:     match,
		ErrLog:    errLog,
		Log:       logger,
	}
}

// statusInput is the body of the status endpoints.
type statusInput struct {
	Status string `json:"status"`
}

// canView reports whether the current user may see donor details of the
// campaign with id campaignID. Donations whose campaign is gone are visible
// to admins only.
func (h *Handler) canView(w http.ResponseWriter, r *http.Request, campaignID int64) bool {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get campaign")
	defer cancel()

	c, _, err := h.Match.CampaignByID(ctx, campaignID)
	if err != nil {
		h.ErrLog.Respond(w, r, "get campaign", err)
		return false
	}
	if !campaignpolicy.CanViewDonations(r, c) {
		h.ErrLog.LogForbidden(w, r, "donation access refused")
		return false
	}
	return true
}

// listScope validates ?campaignId= and checks access to it. Without a
// campaign only admins may list.
func (h *Handler) listScope(w http.ResponseWriter, r *http.Request) (int64, bool) {
	campaignID, ok := httpjson.QueryID(r, "campaignId")
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad campaignId", nil, "campaignId must be a campaign id.")
		return 0, false
	}
	if campaignID == 0 {
		if !campaignpolicy.CanViewAllDonations(r) {
			h.ErrLog.LogForbidden(w, r, "donation listing refused")
			return 0, false
		}
		return 0, true
	}
	return campaignID, h.canView(w, r, campaignID)
}
