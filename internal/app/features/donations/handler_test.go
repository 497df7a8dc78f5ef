package donations_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/assisberlanda/sousolidario/internal/app/features/donations"
	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/ratelimit"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/assisberlanda/sousolidario/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

var defaultAccount = models.AccountInfo{
	BankName:    "Banco do Brasil",
	Agency:      "1234-5",
	Account:     "67890-1",
	PixKey:      "doacoes@sousolidario.org",
	Beneficiary: "Sou Solidário",
}

func newTestHandler(t *testing.T) (*donations.Handler, *testutil.Fixtures) {
	t.Helper()
	st := store.NewMemory(nil)
	logger := zap.NewNop()
	h := donations.NewHandler(donationsvc.New(st, defaultAccount, logger), matching.New(st), uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, st)
}

func donationBody(campaignID int64, lines ...map[string]any) map[string]any {
	return map[string]any{
		"campaignId": campaignID,
		"donorName":  "Maria Silva",
		"donorPhone": "(51) 99999-0000",
		"donorEmail": "maria@example.com",
		"address":    "Rua das Flores, 10",
		"city":       "Porto Alegre",
		"state":      "RS",
		"zipCode":    "90000-000",
		"pickupDate": "2026-11-20",
		"pickupTime": "manhã",
		"items":      lines,
	}
}

func TestCreate_RecordsDonationAndLines(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	water := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	req := testutil.NewJSONRequest(t, "POST", "/api/donations",
		donationBody(c.ID, map[string]any{"neededItemId": water.ID, "quantity": 40}))
	rec := testutil.NewRecorder()
	h.Create(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got donationsvc.Recorded
	rec.DecodeJSON(t, &got)
	if got.Donation.Status != models.DonationPending {
		t.Errorf("status: got %q, want pending", got.Donation.Status)
	}
	want := []models.DonationItem{{ID: got.Items[0].ID, DonationID: got.Donation.ID, NeededItemID: water.ID, Quantity: 40}}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	other := fx.CreateCampaign(ctx, "B123456", 11)
	foreign := fx.CreateNeededItem(ctx, other.ID, "Colchão", 10, 1)
	water := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{"no items", donationBody(c.ID), "items"},
		{"item of other campaign", donationBody(c.ID, map[string]any{"neededItemId": foreign.ID, "quantity": 1}), "items[0].neededItemId"},
		{"zero quantity", donationBody(c.ID, map[string]any{"neededItemId": water.ID, "quantity": 0}), "items[0].quantity"},
		{"unknown campaign", donationBody(999999, map[string]any{"neededItemId": water.ID, "quantity": 1}), "campaignId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/donations", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			var body struct {
				Fields map[string]string `json:"fields"`
			}
			rec.DecodeJSON(t, &body)
			if _, ok := body.Fields[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, body.Fields)
			}
		})
	}

	if list, _ := fx.Store().Donations.List(ctx, nil); len(list) != 0 {
		t.Errorf("rejected donations must not be stored, found %d", len(list))
	}
}

type failingLines struct {
	store.Table[models.DonationItem]
}

func (f *failingLines) Create(context.Context, models.DonationItem) (models.DonationItem, error) {
	return models.DonationItem{}, errors.New("disk full")
}

func TestCreate_PartialWrite(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	water := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)
	fx.Store().DonationItems = &failingLines{Table: fx.Store().DonationItems}

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/donations",
		donationBody(c.ID, map[string]any{"neededItemId": water.ID, "quantity": 1})))

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, `"error":"partial"`)
	var got donationsvc.Recorded
	rec.DecodeJSON(t, &got)
	if got.Donation.ID == 0 || len(got.Items) != 0 {
		t.Errorf("unexpected partial record: %+v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	fx.CreateDonation(ctx, c.ID, models.DonationPending, nil)

	steps := []struct {
		user   testutil.TestUser
		status string
		want   int
	}{
		{testutil.DonorUser(40), "confirmed", http.StatusForbidden},
		{testutil.OrganizationUser(11), "confirmed", http.StatusOK},
		{testutil.OrganizationUser(11), "confirmed", http.StatusOK},
		{testutil.OrganizationUser(11), "collected", http.StatusConflict},
		{testutil.OrganizationUser(11), "lost", http.StatusBadRequest},
		{testutil.AdminUser(), "scheduled", http.StatusOK},
		{testutil.AdminUser(), "collected", http.StatusOK},
		{testutil.AdminUser(), "pending", http.StatusConflict},
	}
	for i, s := range steps {
		req := testutil.NewJSONRequest(t, "PUT", "/", map[string]any{"status": s.status})
		req = testutil.WithChiURLParam(testutil.WithUser(req, s.user), "id", "1")
		rec := testutil.NewRecorder()
		h.UpdateStatus(rec, req)
		if rec.Code != s.want {
			t.Fatalf("step %d (%s → %q): got %d, want %d: %s", i, s.user.Role, s.status, rec.Code, s.want, rec.Body.String())
		}
	}

	d, _, _ := fx.Store().Donations.Get(ctx, 1)
	if d.Status != models.DonationCollected {
		t.Errorf("final status: got %q, want collected", d.Status)
	}
}

func TestList_Scope(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	other := fx.CreateCampaign(ctx, "B123456", 12)
	fx.CreateDonation(ctx, c.ID, models.DonationPending, nil)
	fx.CreateDonation(ctx, other.ID, models.DonationPending, nil)

	tests := []struct {
		name      string
		user      testutil.TestUser
		target    string
		wantCode  int
		wantCount int
	}{
		{"owner own campaign", testutil.OrganizationUser(11), "/api/donations?campaignId=1", http.StatusOK, 1},
		{"owner other campaign", testutil.OrganizationUser(11), "/api/donations?campaignId=2", http.StatusForbidden, 0},
		{"owner all", testutil.OrganizationUser(11), "/api/donations", http.StatusForbidden, 0},
		{"admin all", testutil.AdminUser(), "/api/donations", http.StatusOK, 2},
		{"malformed id", testutil.AdminUser(), "/api/donations?campaignId=x", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.List(rec, testutil.WithUser(testutil.NewRequest("GET", tt.target), tt.user))
			rec.AssertStatus(t, tt.wantCode)
			if tt.wantCode == http.StatusOK {
				var got []models.Donation
				rec.DecodeJSON(t, &got)
				if len(got) != tt.wantCount {
					t.Errorf("got %d donations, want %d", len(got), tt.wantCount)
				}
			}
		})
	}
}

func TestItems(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	water := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)
	d := fx.CreateDonation(ctx, c.ID, models.DonationPending, map[int64]int64{water.ID: 12})

	req := testutil.WithChiURLParam(testutil.WithUser(testutil.NewRequest("GET", "/"), testutil.OrganizationUser(11)), "id", "1")
	rec := testutil.NewRecorder()
	h.Items(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got []models.DonationItem
	rec.DecodeJSON(t, &got)
	if len(got) != 1 || got[0].DonationID != d.ID || got[0].Quantity != 12 {
		t.Errorf("unexpected lines: %+v", got)
	}
}

func TestCreateFinancial_ReturnsAccountInfo(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)

	req := testutil.NewJSONRequest(t, "POST", "/api/financial-donations", map[string]any{
		"campaignId":    c.ID,
		"donorName":     "João",
		"donorEmail":    "joao@example.com",
		"donorPhone":    "(11) 98888-7777",
		"amount":        5000,
		"paymentMethod": "pix",
	})
	rec := testutil.NewRecorder()
	h.CreateFinancial(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got models.FinancialDonation
	rec.DecodeJSON(t, &got)
	if got.Status != models.FinancialPending || got.Amount != 5000 {
		t.Errorf("unexpected pledge: %+v", got)
	}
	if diff := cmp.Diff(defaultAccount, got.AccountInfo); diff != "" {
		t.Errorf("accountInfo mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateFinancial_Validation(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)

	req := testutil.NewJSONRequest(t, "POST", "/api/financial-donations", map[string]any{
		"campaignId":    c.ID,
		"donorName":     "João",
		"donorEmail":    "not-an-email",
		"donorPhone":    "(11) 98888-7777",
		"amount":        0,
		"paymentMethod": "boleto",
	})
	rec := testutil.NewRecorder()
	h.CreateFinancial(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	for _, f := range []string{`"amount"`, `"paymentMethod"`, `"donorEmail"`} {
		rec.AssertContains(t, f)
	}
}

func TestUpdateFinancialStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	fx.CreateFinancialDonation(ctx, c.ID, 2500)

	for _, s := range []struct {
		status string
		want   int
	}{
		{"received", http.StatusConflict},
		{"confirmed", http.StatusOK},
		{"received", http.StatusOK},
		{"cancelled", http.StatusConflict},
	} {
		req := testutil.NewJSONRequest(t, "PUT", "/", map[string]any{"status": s.status})
		req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.OrganizationUser(11)), "id", "1")
		rec := testutil.NewRecorder()
		h.UpdateFinancialStatus(rec, req)
		rec.AssertStatus(t, s.want)
	}
}

func TestListFinancial(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	fx.CreateFinancialDonation(ctx, c.ID, 1000)
	fx.CreateFinancialDonation(ctx, c.ID, 2000)

	rec := testutil.NewRecorder()
	h.ListFinancial(rec, testutil.WithUser(testutil.NewRequest("GET", "/api/financial-donations?campaignId=1"), testutil.OrganizationUser(11)))

	rec.AssertStatus(t, http.StatusOK)
	var got []models.FinancialDonation
	rec.DecodeJSON(t, &got)
	if len(got) != 2 {
		t.Errorf("got %d pledges, want 2", len(got))
	}
}

func TestRoutes_PledgeLimit(t *testing.T) {
	h, fx := newTestHandler(t)
	h.PledgeLimit = ratelimit.New(1, time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	water := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	router := donations.Routes(h, sm)
	body := donationBody(c.ID, map[string]any{"neededItemId": water.ID, "quantity": 1})

	first := testutil.NewRecorder()
	router.ServeHTTP(first, testutil.NewJSONRequest(t, "POST", "/", body))
	first.AssertStatus(t, http.StatusCreated)

	second := testutil.NewRecorder()
	router.ServeHTTP(second, testutil.NewJSONRequest(t, "POST", "/", body))
	second.AssertStatus(t, http.StatusTooManyRequests)
}
