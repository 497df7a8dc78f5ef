// Package donations records item and financial donations and moves them
// through their status lifecycles.
//
// An item donation is written in two steps, the Donation and then one
// DonationItem per line, with no rollback. If a line fails to store, the
// Donation and the lines written so far remain and are returned with the
// error.
package donations

import (
	"context"
	"fmt"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/apperr"
	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// LineInput is one pledged needed item.
type LineInput struct {
	NeededItemID int64 `json:"neededItemId" validate:"gt=0" label:"Item"`
	Quantity     int64 `json:"quantity" validate:"gt=0" label:"Quantity"`
}

// ItemDonationInput is the validated shape of an item donation.
type ItemDonationInput struct {
	CampaignID int64       `json:"campaignId" validate:"gt=0" label:"Campaign"`
	DonorName  string      `json:"donorName" validate:"notblank,max=200" label:"Name"`
	DonorPhone string      `json:"donorPhone" validate:"notblank,max=30" label:"Phone"`
	DonorEmail string      `json:"donorEmail" validate:"omitempty,emailaddr" label:"Email"`
	Address    string      `json:"address" validate:"notblank,max=300" label:"Address"`
	City       string      `json:"city" validate:"notblank,max=100" label:"City"`
	State      string      `json:"state" validate:"notblank,max=50" label:"State"`
	ZipCode    string      `json:"zipCode" validate:"notblank,max=20" label:"ZIP code"`
	PickupDate string      `json:"pickupDate" validate:"notblank,datetime=2006-01-02" label:"Pickup date"`
	PickupTime string      `json:"pickupTime" validate:"notblank,max=40" label:"Pickup time"`
	Items      []LineInput `json:"items" validate:"min=1,max=100,dive" label:"Items"`
}

// Recorded is a stored item donation with its lines.
type Recorded struct {
	Donation models.Donation       `json:"donation"`
	Items    []models.DonationItem `json:"items"`
}

// Service owns donation writes.
type Service struct {
	st  *store.Store
	log *zap.Logger

	// DefaultAccount is shown to financial donors when the campaign's
	// creator has no payment account of their own.
	DefaultAccount models.AccountInfo
}

func New(st *store.Store, defaultAccount models.AccountInfo, logger *zap.Logger) *Service {
	return &Service{st: st, log: logger, DefaultAccount: defaultAccount}
}

// RecordItemDonation validates in, checks that the campaign accepts
// donations and that every line names one of its needed items, then stores a
// pending Donation followed by its lines.
func (s *Service) RecordItemDonation(ctx context.Context, in ItemDonationInput) (Recorded, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return Recorded{}, res.Err()
	}
	if _, err := s.openCampaign(ctx, in.CampaignID); err != nil {
		return Recorded{}, err
	}

	res := &inputval.Result{}
	for i, ln := range in.Items {
		it, found, err := s.st.NeededItems.Get(ctx, ln.NeededItemID)
		if err != nil {
			return Recorded{}, err
		}
		if !found || it.CampaignID != in.CampaignID {
			res.Add(fmt.Sprintf("items[%d].neededItemId", i), "Item is not needed by this campaign.")
		}
	}
	if res.HasErrors() {
		return Recorded{}, res.Err()
	}

	d, err := s.st.Donations.Create(ctx, models.Donation{
		CampaignID: in.CampaignID,
		DonorName:  htmlsanitize.PlainText(in.DonorName),
		DonorPhone: htmlsanitize.PlainText(in.DonorPhone),
		DonorEmail: in.DonorEmail,
		Address:    htmlsanitize.PlainText(in.Address),
		City:       htmlsanitize.PlainText(in.City),
		State:      htmlsanitize.PlainText(in.State),
		ZipCode:    htmlsanitize.PlainText(in.ZipCode),
		PickupDate: in.PickupDate,
		PickupTime: htmlsanitize.PlainText(in.PickupTime),
		Status:     models.DonationPending,
	})
	if err != nil {
		return Recorded{}, err
	}

	out := Recorded{Donation: d, Items: make([]models.DonationItem, 0, len(in.Items))}
	for i, ln := range in.Items {
		di, err := s.st.DonationItems.Create(ctx, models.DonationItem{
			DonationID:   d.ID,
			NeededItemID: ln.NeededItemID,
			Quantity:     ln.Quantity,
		})
		if err != nil {
			s.log.Warn("donation stored with missing lines",
				zap.Int64("donation_id", d.ID),
				zap.Int("written", len(out.Items)),
				zap.Int("requested", len(in.Items)),
				zap.Error(err))
			return out, fmt.Errorf("donation %d: line %d of %d: %w", d.ID, i+1, len(in.Items), err)
		}
		out.Items = append(out.Items, di)
	}
	return out, nil
}

// UpdateDonationStatus moves a donation to status when the transition table
// allows it. Setting the current status again is a no-op.
func (s *Service) UpdateDonationStatus(ctx context.Context, id int64, status string) (models.Donation, bool, error) {
	next, ok := models.ParseDonationStatus(status)
	if !ok {
		return models.Donation{}, false, inputval.Fail("status", "Status must be one of: pending, confirmed, scheduled, collected, cancelled.")
	}
	d, found, err := s.st.Donations.Get(ctx, id)
	if err != nil || !found {
		return d, found, err
	}
	if !d.Status.CanTransitionTo(next) {
		return d, true, fmt.Errorf("donation %d: %s → %s: %w", id, d.Status, next, apperr.ErrInvalidTransition)
	}
	if d.Status == next {
		return d, true, nil
	}
	return s.st.Donations.Update(ctx, id, store.Set{"status": string(next)})
}

// GetDonation returns the donation with id.
func (s *Service) GetDonation(ctx context.Context, id int64) (models.Donation, bool, error) {
	return s.st.Donations.Get(ctx, id)
}

// DonationItems lists the lines of one donation in creation order.
func (s *Service) DonationItems(ctx context.Context, donationID int64) ([]models.DonationItem, error) {
	return s.st.DonationItems.List(ctx, store.Filter{"donation_id": donationID})
}

// ListDonations returns the donations of one campaign, or of every campaign
// when campaignID is 0.
func (s *Service) ListDonations(ctx context.Context, campaignID int64) ([]models.Donation, error) {
	return s.st.Donations.List(ctx, campaignFilter(campaignID))
}

// openCampaign is the referential check every donation write starts with.
func (s *Service) openCampaign(ctx context.Context, id int64) (models.Campaign, error) {
	c, found, err := s.st.Campaigns.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if !found {
		return c, inputval.Fail("campaignId", "Campaign not found.")
	}
	if !c.Active {
		return c, inputval.Fail("campaignId", "Campaign is no longer accepting donations.")
	}
	return c, nil
}

func campaignFilter(campaignID int64) store.Filter {
	if campaignID <= 0 {
		return nil
	}
	return store.Filter{"campaign_id": campaignID}
}
