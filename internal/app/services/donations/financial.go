package donations

import (
	"context"
	"fmt"
	"strings"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/apperr"
	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

// FinancialInput is the validated shape of a financial pledge. Amount is in
// centavos.
type FinancialInput struct {
	CampaignID    int64  `json:"campaignId" validate:"gt=0" label:"Campaign"`
	DonorName     string `json:"donorName" validate:"notblank,max=200" label:"Name"`
	DonorEmail    string `json:"donorEmail" validate:"notblank,emailaddr" label:"Email"`
	DonorPhone    string `json:"donorPhone" validate:"notblank,max=30" label:"Phone"`
	Amount        int64  `json:"amount" validate:"gt=0" label:"Amount"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=pix cartao deposito" label:"Payment method"`
	Message       string `json:"message" validate:"max=1000" label:"Message"`
}

// RecordFinancialDonation stores a pending pledge together with a snapshot of
// the payment instructions in force right now: the campaign creator's
// account when they registered one, the default account otherwise.
func (s *Service) RecordFinancialDonation(ctx context.Context, in FinancialInput) (models.FinancialDonation, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return models.FinancialDonation{}, res.Err()
	}
	method, _ := models.ParsePaymentMethod(in.PaymentMethod)

	c, err := s.openCampaign(ctx, in.CampaignID)
	if err != nil {
		return models.FinancialDonation{}, err
	}
	account, err := s.accountFor(ctx, c)
	if err != nil {
		return models.FinancialDonation{}, err
	}

	return s.st.FinancialDonations.Create(ctx, models.FinancialDonation{
		CampaignID:    in.CampaignID,
		DonorName:     htmlsanitize.PlainText(in.DonorName),
		DonorEmail:    strings.TrimSpace(in.DonorEmail),
		DonorPhone:    htmlsanitize.PlainText(in.DonorPhone),
		Amount:        in.Amount,
		PaymentMethod: method,
		AccountInfo:   account,
		Message:       htmlsanitize.PlainText(in.Message),
		Status:        models.FinancialPending,
	})
}

func (s *Service) accountFor(ctx context.Context, c models.Campaign) (models.AccountInfo, error) {
	if c.CreatedBy > 0 {
		u, found, err := s.st.Users.Get(ctx, c.CreatedBy)
		if err != nil {
			return models.AccountInfo{}, err
		}
		if found && u.PaymentAccount != nil && !u.PaymentAccount.IsZero() {
			return *u.PaymentAccount, nil
		}
	}
	return s.DefaultAccount, nil
}

// UpdateFinancialStatus moves a pledge to status when the transition table
// allows it.
func (s *Service) UpdateFinancialStatus(ctx context.Context, id int64, status string) (models.FinancialDonation, bool, error) {
	next, ok := models.ParseFinancialStatus(status)
	if !ok {
		return models.FinancialDonation{}, false, inputval.Fail("status", "Status must be one of: pending, confirmed, received, cancelled.")
	}
	fd, found, err := s.st.FinancialDonations.Get(ctx, id)
	if err != nil || !found {
		return fd, found, err
	}
	if !fd.Status.CanTransitionTo(next) {
		return fd, true, fmt.Errorf("financial donation %d: %s → %s: %w", id, fd.Status, next, apperr.ErrInvalidTransition)
	}
	if fd.Status == next {
		return fd, true, nil
	}
	return s.st.FinancialDonations.Update(ctx, id, store.Set{"status": string(next)})
}

// GetFinancialDonation returns the pledge with id.
func (s *Service) GetFinancialDonation(ctx context.Context, id int64) (models.FinancialDonation, bool, error) {
	return s.st.FinancialDonations.Get(ctx, id)
}

// ListFinancialDonations returns the pledges of one campaign, or of every
// campaign when campaignID is 0.
func (s *Service) ListFinancialDonations(ctx context.Context, campaignID int64) ([]models.FinancialDonation, error) {
	return s.st.FinancialDonations.List(ctx, campaignFilter(campaignID))
}
