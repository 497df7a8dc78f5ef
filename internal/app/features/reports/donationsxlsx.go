// internal/app/features/reports/donationsxlsx.go
package reports

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/policy/campaignpolicy"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// ServeDonationsXLSX handles GET /api/campaigns/{id}/donations/export and
// streams a workbook with the campaign's donations, their lines, the
// per-item progress and the financial pledges.
func (h *Handler) ServeDonationsXLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.PathID(r, "id")
	if !ok {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export donations")
	defer cancel()

	c, found, err := h.Campaigns.Get(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, "export donations", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Campaign")
		return
	}
	if !campaignpolicy.CanViewDonations(r, c) {
		h.ErrLog.LogForbidden(w, r, "donation export refused")
		return
	}

	data, err := h.collect(ctx, c)
	if err != nil {
		h.ErrLog.Respond(w, r, "export donations", err)
		return
	}
	f, err := buildWorkbook(data)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build donations workbook", err, "Unable to build the spreadsheet.")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("doacoes_%s_%s.xlsx", c.UniqueCode, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
	if err := f.Write(w); err != nil {
		// Headers are already sent; nothing left to tell the client.
		h.Log.Warn("write donations workbook", zap.Int64("campaign_id", c.ID), zap.Error(err))
	}
}

func (h *Handler) collect(ctx context.Context, c models.Campaign) (exportData, error) {
	data := exportData{
		Campaign: c,
		Lines:    map[int64][]models.DonationItem{},
		Items:    map[int64]models.NeededItem{},
	}

	var err error
	if data.Donations, err = h.Donations.ListDonations(ctx, c.ID); err != nil {
		return data, err
	}
	for _, d := range data.Donations {
		lines, err := h.Donations.DonationItems(ctx, d.ID)
		if err != nil {
			return data, err
		}
		data.Lines[d.ID] = lines
	}
	if data.Progress, err = h.Campaigns.Progress(ctx, c.ID); err != nil {
		return data, err
	}
	// The sheet also shows what was pledged before cancellations.
	if data.Pledged, err = h.Match.DonatedByItem(ctx, c.ID, matching.AggregateOptions{IncludeCancelled: true}); err != nil {
		return data, err
	}
	for _, ip := range data.Progress.Items {
		data.Items[ip.NeededItemID] = models.NeededItem{ID: ip.NeededItemID, Name: ip.Name, Unit: ip.Unit, Priority: ip.Priority, Quantity: ip.Target}
	}
	if data.Financial, err = h.Donations.ListFinancialDonations(ctx, c.ID); err != nil {
		return data, err
	}
	return data, nil
}
