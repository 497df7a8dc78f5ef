package donations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/system/apperr"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func financialInput(campaignID int64) donations.FinancialInput {
	return donations.FinancialInput{
		CampaignID:    campaignID,
		DonorName:     "Maria",
		DonorEmail:    "maria@example.com",
		DonorPhone:    "(11) 98888-7777",
		Amount:        5000,
		PaymentMethod: "pix",
		Message:       "Força!",
	}
}

func TestRecordFinancialDonation_DefaultAccount(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 0)

	fd, err := f.donations.RecordFinancialDonation(context.Background(), financialInput(c.ID))
	if err != nil {
		t.Fatalf("RecordFinancialDonation: %v", err)
	}
	if fd.Status != models.FinancialPending || fd.PaymentMethod != models.PaymentPix || fd.Amount != 5000 {
		t.Errorf("stored = %+v", fd)
	}
	if diff := cmp.Diff(staticAccount, fd.AccountInfo); diff != "" {
		t.Errorf("account (-want +got):\n%s", diff)
	}
}

func TestRecordFinancialDonation_RoutesToCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	own := models.AccountInfo{BankName: "Caixa", Agency: "0001", Account: "123-4", PixKey: "12.345.678/0001-90", Beneficiary: "ONG Esperança"}
	org, err := f.st.Users.Create(ctx, models.User{Login: "esperanca", LoginCI: "esperanca", Role: models.RoleOrganization, PaymentAccount: &own})
	if err != nil {
		t.Fatal(err)
	}
	c := f.campaign(t, org.ID)

	fd, err := f.donations.RecordFinancialDonation(ctx, financialInput(c.ID))
	if err != nil {
		t.Fatalf("RecordFinancialDonation: %v", err)
	}
	if diff := cmp.Diff(own, fd.AccountInfo); diff != "" {
		t.Errorf("account (-want +got):\n%s", diff)
	}

	// The snapshot does not follow later profile changes.
	if _, _, err := f.st.Users.Update(ctx, org.ID, map[string]any{"payment_account": models.AccountInfo{PixKey: "nova"}}); err != nil {
		t.Fatal(err)
	}
	again, _, _ := f.donations.GetFinancialDonation(ctx, fd.ID)
	if again.AccountInfo.PixKey != own.PixKey {
		t.Errorf("snapshot changed to %+v", again.AccountInfo)
	}
}

func TestRecordFinancialDonation_Validation(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 1)

	tests := []struct {
		name   string
		mutate func(*donations.FinancialInput)
		field  string
	}{
		{"zero amount", func(in *donations.FinancialInput) { in.Amount = 0 }, "amount"},
		{"negative amount", func(in *donations.FinancialInput) { in.Amount = -10 }, "amount"},
		{"bad method", func(in *donations.FinancialInput) { in.PaymentMethod = "boleto" }, "paymentMethod"},
		{"no method", func(in *donations.FinancialInput) { in.PaymentMethod = "" }, "paymentMethod"},
		{"bad email", func(in *donations.FinancialInput) { in.DonorEmail = "maria at example" }, "donorEmail"},
		{"no email", func(in *donations.FinancialInput) { in.DonorEmail = "" }, "donorEmail"},
		{"no name", func(in *donations.FinancialInput) { in.DonorName = "" }, "donorName"},
		{"no phone", func(in *donations.FinancialInput) { in.DonorPhone = "" }, "donorPhone"},
		{"unknown campaign", func(in *donations.FinancialInput) { in.CampaignID = 4242 }, "campaignId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := financialInput(c.ID)
			tt.mutate(&in)
			_, err := f.donations.RecordFinancialDonation(context.Background(), in)
			res, ok := inputval.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if res.Fields()[tt.field] == "" {
				t.Errorf("expected error on %q, got %v", tt.field, res.Fields())
			}
		})
	}
}

func TestUpdateFinancialStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.campaign(t, 1)

	tests := []struct {
		name    string
		path    []string
		wantErr error
	}{
		{"received", []string{"confirmed", "received"}, nil},
		{"cancel pending", []string{"cancelled"}, nil},
		{"cancel confirmed", []string{"confirmed", "cancelled"}, nil},
		{"skip confirm", []string{"received"}, apperr.ErrInvalidTransition},
		{"reopen", []string{"cancelled", "pending"}, apperr.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd, err := f.donations.RecordFinancialDonation(ctx, financialInput(c.ID))
			if err != nil {
				t.Fatal(err)
			}
			var last error
			for _, st := range tt.path {
				_, _, last = f.donations.UpdateFinancialStatus(ctx, fd.ID, st)
				if last != nil {
					break
				}
			}
			if tt.wantErr == nil && last != nil {
				t.Errorf("unexpected error: %v", last)
			}
			if tt.wantErr != nil && !errors.Is(last, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, last)
			}
		})
	}

	if _, found, err := f.donations.UpdateFinancialStatus(ctx, 999999, "confirmed"); err != nil || found {
		t.Errorf("unknown id: found=%v err=%v", found, err)
	}
}

func TestListFinancialDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c1 := f.campaign(t, 1)
	c2 := f.campaign(t, 1)
	f.donations.RecordFinancialDonation(ctx, financialInput(c1.ID))
	f.donations.RecordFinancialDonation(ctx, financialInput(c2.ID))

	all, _ := f.donations.ListFinancialDonations(ctx, 0)
	of2, _ := f.donations.ListFinancialDonations(ctx, c2.ID)
	if len(all) != 2 || len(of2) != 1 || of2[0].CampaignID != c2.ID {
		t.Errorf("all=%d of2=%+v", len(all), of2)
	}
}
