package matching_test

import (
	"context"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func seedCampaign(t *testing.T, st *store.Store, code string) models.Campaign {
	t.Helper()
	c, err := st.Campaigns.Create(context.Background(), models.Campaign{
		Title: "Campanha", Description: "d", Location: "l", EndDate: "2026-12-31",
		CreatedBy: 1, Active: true, UniqueCode: code,
	})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func seedItem(t *testing.T, st *store.Store, campaignID int64, name string, qty int64, prio int) models.NeededItem {
	t.Helper()
	it, err := st.NeededItems.Create(context.Background(), models.NeededItem{
		CampaignID: campaignID, Name: name, Quantity: qty, Unit: "un", Priority: prio,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it
}

func seedDonation(t *testing.T, st *store.Store, campaignID int64, status models.DonationStatus, lines map[int64]int64) models.Donation {
	t.Helper()
	ctx := context.Background()
	d, err := st.Donations.Create(ctx, models.Donation{CampaignID: campaignID, DonorName: "Ana", Status: status})
	if err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	for itemID, q := range lines {
		if _, err := st.DonationItems.Create(ctx, models.DonationItem{DonationID: d.ID, NeededItemID: itemID, Quantity: q}); err != nil {
			t.Fatalf("seed donation item: %v", err)
		}
	}
	return d
}

func TestCampaignByRef(t *testing.T) {
	st := store.NewMemory(nil)
	svc := matching.New(st)
	ctx := context.Background()

	first := seedCampaign(t, st, "A123456")
	second := seedCampaign(t, st, "B654321")

	tests := []struct {
		ref    string
		wantID int64
		found  bool
	}{
		{"1", first.ID, true},
		{" 2 ", second.ID, true},
		{"A123456", first.ID, true},
		{"B654321", second.ID, true},
		{"a123456", 0, false},
		{"Z000000", 0, false},
		{"999999", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			c, found, err := svc.CampaignByRef(ctx, tt.ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.found || c.ID != tt.wantID {
				t.Errorf("CampaignByRef(%q) = id %d found %v, want id %d found %v", tt.ref, c.ID, found, tt.wantID, tt.found)
			}
		})
	}
}

func TestCampaignByRef_NumericCodeFallback(t *testing.T) {
	st := store.NewMemory(nil)
	svc := matching.New(st)
	// A numeric-looking ref with no campaign of that id still tries codes.
	seedCampaign(t, st, "A123456")
	if _, found, _ := svc.CampaignByRef(context.Background(), "123456"); found {
		t.Error("123456 should not match code A123456")
	}
}

func TestNeededItemsByPriority(t *testing.T) {
	st := store.NewMemory(nil)
	svc := matching.New(st)
	c := seedCampaign(t, st, "C123456")
	other := seedCampaign(t, st, "C654321")

	seedItem(t, st, c.ID, "Leite", 10, 2)
	seedItem(t, st, c.ID, "cobertores", 10, 1)
	seedItem(t, st, c.ID, "Arroz", 10, 2)
	seedItem(t, st, c.ID, "Agua", 10, 1)
	seedItem(t, st, other.ID, "Fraldas", 10, 1)

	items, err := svc.NeededItemsByPriority(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("NeededItemsByPriority: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"Agua", "cobertores", "Arroz", "Leite"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestSortByPriority_FoldsAccents(t *testing.T) {
	items := []models.NeededItem{
		{ID: 1, Name: "Arroz", Priority: 1},
		{ID: 2, Name: "Água", Priority: 1},
		{ID: 3, Name: "agua", Priority: 1},
		{ID: 4, Name: "Óleo", Priority: 1},
		{ID: 5, Name: "Feijão", Priority: 1},
	}
	matching.SortByPriority(items)

	var ids []int64
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	// "Água" and "agua" fold to the same key, so id breaks the tie.
	want := []int64{2, 3, 1, 5, 4}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestDonatedQuantity(t *testing.T) {
	st := store.NewMemory(nil)
	svc := matching.New(st)
	ctx := context.Background()
	c := seedCampaign(t, st, "D123456")
	agua := seedItem(t, st, c.ID, "Água", 100, 1)
	arroz := seedItem(t, st, c.ID, "Arroz", 50, 2)

	seedDonation(t, st, c.ID, models.DonationPending, map[int64]int64{agua.ID: 40, arroz.ID: 5})
	seedDonation(t, st, c.ID, models.DonationCollected, map[int64]int64{agua.ID: 70})
	seedDonation(t, st, c.ID, models.DonationCancelled, map[int64]int64{agua.ID: 1000})

	got, err := svc.DonatedQuantity(ctx, agua.ID, matching.AggregateOptions{})
	if err != nil {
		t.Fatalf("DonatedQuantity: %v", err)
	}
	if got != 110 {
		t.Errorf("excluding cancelled: got %d, want 110", got)
	}

	got, _ = svc.DonatedQuantity(ctx, agua.ID, matching.AggregateOptions{IncludeCancelled: true})
	if got != 1110 {
		t.Errorf("including cancelled: got %d, want 1110", got)
	}

	byItem, err := svc.DonatedByItem(ctx, c.ID, matching.AggregateOptions{})
	if err != nil {
		t.Fatalf("DonatedByItem: %v", err)
	}
	if diff := cmp.Diff(map[int64]int64{agua.ID: 110, arroz.ID: 5}, byItem); diff != "" {
		t.Errorf("by item (-want +got):\n%s", diff)
	}
}

func TestDonatedQuantity_SkipsOrphanLines(t *testing.T) {
	st := store.NewMemory(nil)
	svc := matching.New(st)
	ctx := context.Background()
	c := seedCampaign(t, st, "E123456")
	it := seedItem(t, st, c.ID, "Água", 10, 1)

	// A line whose donation was never stored.
	if _, err := st.DonationItems.Create(ctx, models.DonationItem{DonationID: 4242, NeededItemID: it.ID, Quantity: 9}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.DonatedQuantity(ctx, it.ID, matching.AggregateOptions{IncludeCancelled: true})
	if err != nil {
		t.Fatalf("DonatedQuantity: %v", err)
	}
	if got != 0 {
		t.Errorf("orphan line counted: got %d", got)
	}
}
