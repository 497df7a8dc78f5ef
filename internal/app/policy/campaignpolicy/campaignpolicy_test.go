package campaignpolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/policy/campaignpolicy"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

func TestCanManage(t *testing.T) {
	c := models.Campaign{ID: 1, CreatedBy: 10}
	orphan := models.Campaign{ID: 2}

	tests := []struct {
		name     string
		user     *auth.SessionUser
		campaign models.Campaign
		want     bool
	}{
		{"anonymous", nil, c, false},
		{"creator", &auth.SessionUser{ID: 10, Role: "organization"}, c, true},
		{"other org", &auth.SessionUser{ID: 11, Role: "organization"}, c, false},
		{"admin", &auth.SessionUser{ID: 1, Role: "admin"}, c, true},
		{"no creator, user", &auth.SessionUser{ID: 0, Role: "user"}, orphan, false},
		{"no creator, admin", &auth.SessionUser{ID: 1, Role: "admin"}, orphan, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/api/campaigns/1", nil)
			if tt.user != nil {
				r = auth.WithTestUser(r, tt.user)
			}
			if got := campaignpolicy.CanManage(r, tt.campaign); got != tt.want {
				t.Errorf("CanManage = %v, want %v", got, tt.want)
			}
			if got := campaignpolicy.CanViewDonations(r, tt.campaign); got != tt.want {
				t.Errorf("CanViewDonations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewAllDonations(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/donations", nil)
	if campaignpolicy.CanViewAllDonations(r) {
		t.Error("anonymous must not list all donations")
	}
	if campaignpolicy.CanViewAllDonations(auth.WithTestUser(r, &auth.SessionUser{ID: 3, Role: "organization"})) {
		t.Error("organizations must not list all donations")
	}
	if !campaignpolicy.CanViewAllDonations(auth.WithTestUser(r, &auth.SessionUser{ID: 1, Role: "admin"})) {
		t.Error("admins list all donations")
	}
}
