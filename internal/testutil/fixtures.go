package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures writes test data straight into a store, bypassing validation.
type Fixtures struct {
	st *store.Store
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for st.
func NewFixtures(t *testing.T, st *store.Store) *Fixtures {
	t.Helper()
	return &Fixtures{st: st, t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() *store.Store {
	return f.st
}

// CreateUser stores an account with the given role. The password hash is
// left empty, so the account cannot sign in.
func (f *Fixtures) CreateUser(ctx context.Context, login, role string) models.User {
	f.t.Helper()
	u, err := f.st.Users.Create(ctx, models.User{
		Login:    login,
		LoginCI:  text.Fold(login),
		FullName: "Test " + login,
		Email:    login + "@test.com",
		Role:     role,
	})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateCategory stores a category.
func (f *Fixtures) CreateCategory(ctx context.Context, name, color string) models.Category {
	f.t.Helper()
	c, err := f.st.Categories.Create(ctx, models.Category{Name: name, NameCI: text.Fold(name), Color: color})
	if err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateCampaign stores an active campaign with the given code.
func (f *Fixtures) CreateCampaign(ctx context.Context, code string, createdBy int64) models.Campaign {
	f.t.Helper()
	c, err := f.st.Campaigns.Create(ctx, models.Campaign{
		Title:       "Campanha " + code,
		Description: "Arrecadação de emergência",
		Location:    "Porto Alegre, RS",
		EndDate:     "2026-12-31",
		CreatedBy:   createdBy,
		Active:      true,
		UniqueCode:  code,
	})
	if err != nil {
		f.t.Fatalf("failed to create test campaign: %v", err)
	}
	return c
}

// CreateNeededItem stores a needed item for campaignID.
func (f *Fixtures) CreateNeededItem(ctx context.Context, campaignID int64, name string, quantity int64, priority int) models.NeededItem {
	f.t.Helper()
	it, err := f.st.NeededItems.Create(ctx, models.NeededItem{
		CampaignID: campaignID,
		Name:       name,
		Quantity:   quantity,
		Unit:       "un",
		Priority:   priority,
	})
	if err != nil {
		f.t.Fatalf("failed to create test needed item: %v", err)
	}
	return it
}

// CreateDonation stores a donation with one line per entry of lines
// (needed item id → quantity).
func (f *Fixtures) CreateDonation(ctx context.Context, campaignID int64, status models.DonationStatus, lines map[int64]int64) models.Donation {
	f.t.Helper()
	d, err := f.st.Donations.Create(ctx, models.Donation{
		CampaignID: campaignID,
		DonorName:  "Doador Teste",
		DonorPhone: "(11) 90000-0000",
		Address:    "Rua A, 1",
		City:       "São Paulo",
		State:      "SP",
		ZipCode:    "01000-000",
		PickupDate: "2026-11-20",
		PickupTime: "10:00",
		Status:     status,
	})
	if err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	for itemID, q := range lines {
		if _, err := f.st.DonationItems.Create(ctx, models.DonationItem{DonationID: d.ID, NeededItemID: itemID, Quantity: q}); err != nil {
			f.t.Fatalf("failed to create test donation item: %v", err)
		}
	}
	return d
}

// CreateFinancialDonation stores a pending pledge of amount centavos.
func (f *Fixtures) CreateFinancialDonation(ctx context.Context, campaignID, amount int64) models.FinancialDonation {
	f.t.Helper()
	fd, err := f.st.FinancialDonations.Create(ctx, models.FinancialDonation{
		CampaignID:    campaignID,
		DonorName:     "Doador Teste",
		DonorEmail:    "doador@test.com",
		DonorPhone:    "(11) 90000-0000",
		Amount:        amount,
		PaymentMethod: models.PaymentPix,
		Status:        models.FinancialPending,
	})
	if err != nil {
		f.t.Fatalf("failed to create test financial donation: %v", err)
	}
	return fd
}
