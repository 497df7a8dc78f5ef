// Package campaignpolicy decides who may change a campaign and see the
// donations made to it.
//
// Authorization rules:
//   - Admins manage every campaign and see every donation
//   - The user who created a campaign manages it and sees its donations
//   - Everyone else, signed in or not, only reads public campaign data
package campaignpolicy

import (
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

// CanManage reports whether the current user may edit, deactivate or add
// needed items to c, and move the status of its donations.
func CanManage(r *http.Request, c models.Campaign) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return u.IsAdmin() || (c.CreatedBy > 0 && u.ID == c.CreatedBy)
}

// CanViewDonations reports whether the current user may list donor details
// for c. Donor contact data is private to the same people who manage c.
func CanViewDonations(r *http.Request, c models.Campaign) bool {
	return CanManage(r, c)
}

// CanViewAllDonations reports whether the current user may list donations
// across every campaign.
func CanViewAllDonations(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsAdmin()
}
