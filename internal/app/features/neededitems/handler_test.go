package neededitems_test

import (
	"net/http"
	"testing"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/features/neededitems"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/assisberlanda/sousolidario/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*neededitems.Handler, *testutil.Fixtures) {
	t.Helper()
	st := store.NewMemory(nil)
	logger := zap.NewNop()
	h := neededitems.NewHandler(campaignsvc.New(st, logger), uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, st)
}

func TestCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	cat := fx.CreateCategory(ctx, "Alimentos", "#22c55e")

	tests := []struct {
		name      string
		user      testutil.TestUser
		body      map[string]any
		wantCode  int
		wantField string
	}{
		{
			name:     "owner",
			user:     testutil.OrganizationUser(11),
			body:     map[string]any{"campaignId": c.ID, "name": "Arroz", "categoryId": cat.ID, "quantity": 50, "unit": "kg", "priority": 2},
			wantCode: http.StatusCreated,
		},
		{
			name:     "other organization",
			user:     testutil.OrganizationUser(12),
			body:     map[string]any{"campaignId": c.ID, "name": "Arroz", "quantity": 50, "unit": "kg"},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "unknown campaign",
			user:      testutil.AdminUser(),
			body:      map[string]any{"campaignId": 999999, "name": "Arroz", "quantity": 50, "unit": "kg"},
			wantCode:  http.StatusBadRequest,
			wantField: "campaignId",
		},
		{
			name:      "unknown category",
			user:      testutil.AdminUser(),
			body:      map[string]any{"campaignId": c.ID, "name": "Arroz", "categoryId": 77, "quantity": 50, "unit": "kg"},
			wantCode:  http.StatusBadRequest,
			wantField: "categoryId",
		},
		{
			name:      "zero quantity",
			user:      testutil.AdminUser(),
			body:      map[string]any{"campaignId": c.ID, "name": "Arroz", "quantity": 0, "unit": "kg"},
			wantCode:  http.StatusBadRequest,
			wantField: "quantity",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/api/needed-items", tt.body), tt.user)
			rec := testutil.NewRecorder()
			h.Create(rec, req)

			rec.AssertStatus(t, tt.wantCode)
			if tt.wantField != "" {
				rec.AssertContains(t, `"`+tt.wantField+`"`)
			}
		})
	}
}

func TestCreate_DefaultPriority(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)

	body := map[string]any{"campaignId": c.ID, "name": "Água", "quantity": 100, "unit": "L"}
	req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/", body), testutil.OrganizationUser(11))
	rec := testutil.NewRecorder()
	h.Create(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got models.NeededItem
	rec.DecodeJSON(t, &got)
	if got.Priority != 1 {
		t.Errorf("priority: got %d, want 1", got.Priority)
	}
}

func TestUpdate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	it := fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	req := testutil.NewJSONRequest(t, "PUT", "/", map[string]any{"quantity": 250, "priority": 4})
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.OrganizationUser(11)), "id", "1")
	rec := testutil.NewRecorder()
	h.Update(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.NeededItem
	rec.DecodeJSON(t, &got)
	if got.ID != it.ID || got.Quantity != 250 || got.Priority != 4 || got.Name != "Água" {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestUpdate_Forbidden(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	req := testutil.NewJSONRequest(t, "PUT", "/", map[string]any{"quantity": 1})
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.DonorUser(30)), "id", "1")
	rec := testutil.NewRecorder()
	h.Update(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := fx.CreateCampaign(ctx, "A123456", 11)
	fx.CreateNeededItem(ctx, c.ID, "Água", 100, 1)

	for _, want := range []int{http.StatusOK, http.StatusNotFound} {
		req := testutil.WithChiURLParam(testutil.WithUser(testutil.NewRequest("DELETE", "/"), testutil.AdminUser()), "id", "1")
		rec := testutil.NewRecorder()
		h.Delete(rec, req)
		rec.AssertStatus(t, want)
	}
}
