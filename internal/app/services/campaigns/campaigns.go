// Package campaigns runs the campaign lifecycle: creation with a unique
// shareable code, partial updates, soft deactivation, hard deletion and the
// needed items that hang off a campaign.
package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.uber.org/zap"
)

// ErrCodeExhausted is returned when every generated code was already taken.
var ErrCodeExhausted = errors.New("campaigns: no free campaign code found")

// MaxCodeAttempts bounds the generate-and-check loop of Create.
const MaxCodeAttempts = 32

// CreateInput is the validated shape of a new campaign.
type CreateInput struct {
	Title       string   `json:"title" validate:"notblank,max=200" label:"Title"`
	Description string   `json:"description" validate:"notblank,max=5000" label:"Description"`
	Location    string   `json:"location" validate:"notblank,max=300" label:"Location"`
	EndDate     string   `json:"endDate" validate:"notblank,datetime=2006-01-02" label:"End date"`
	Urgent      bool     `json:"urgent"`
	ImageURLs   []string `json:"imageUrls" validate:"omitempty,max=10,dive,url" label:"Image URLs"`
	UniqueCode  string   `json:"uniqueCode" validate:"omitempty,campaigncode" label:"Unique code"`
}

// ListFilter narrows List. Zero values do not filter.
type ListFilter struct {
	ActiveOnly bool
	CreatedBy  int64
}

// Service owns campaign and needed-item writes.
type Service struct {
	st    *store.Store
	match *matching.Service
	log   *zap.Logger

	// NewCode produces candidate codes; tests replace it to force collisions.
	NewCode func() string
}

func New(st *store.Store, logger *zap.Logger) *Service {
	return &Service{
		st:      st,
		match:   matching.New(st),
		log:     logger,
		NewCode: idgen.CampaignCode,
	}
}

// Create validates in and stores a new active campaign owned by createdBy.
// Without an explicit code it draws codes until one is free.
func (s *Service) Create(ctx context.Context, createdBy int64, in CreateInput) (models.Campaign, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return models.Campaign{}, res.Err()
	}

	c := models.Campaign{
		Title:       htmlsanitize.PlainText(in.Title),
		Description: htmlsanitize.Sanitize(strings.TrimSpace(in.Description)),
		Location:    htmlsanitize.PlainText(in.Location),
		EndDate:     strings.TrimSpace(in.EndDate),
		CreatedBy:   createdBy,
		Urgent:      in.Urgent,
		ImageURLs:   in.ImageURLs,
		Active:      true,
	}
	if res := requireText(map[string]string{"title": c.Title, "description": c.Description, "location": c.Location}); res.HasErrors() {
		return models.Campaign{}, res.Err()
	}

	if in.UniqueCode != "" {
		c.UniqueCode = in.UniqueCode
		return s.insertWithCode(ctx, c)
	}

	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		c.UniqueCode = s.NewCode()
		_, taken, err := s.match.CampaignByCode(ctx, c.UniqueCode)
		if err != nil {
			return models.Campaign{}, err
		}
		if taken {
			continue
		}
		created, err := s.st.Campaigns.Create(ctx, c)
		if errors.Is(err, store.ErrDuplicate) {
			// Lost a race with a concurrent create.
			continue
		}
		if err != nil {
			return models.Campaign{}, err
		}
		if attempt > 1 {
			s.log.Debug("campaign code collision resolved", zap.Int("attempts", attempt), zap.String("code", created.UniqueCode))
		}
		return created, nil
	}
	return models.Campaign{}, ErrCodeExhausted
}

func (s *Service) insertWithCode(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	codeTaken := inputval.Fail("uniqueCode", "Unique code is already in use.")
	if _, taken, err := s.match.CampaignByCode(ctx, c.UniqueCode); err != nil {
		return models.Campaign{}, err
	} else if taken {
		return models.Campaign{}, codeTaken
	}
	created, err := s.st.Campaigns.Create(ctx, c)
	if errors.Is(err, store.ErrDuplicate) {
		return models.Campaign{}, codeTaken
	}
	return created, err
}

// Get returns the campaign with id.
func (s *Service) Get(ctx context.Context, id int64) (models.Campaign, bool, error) {
	return s.match.CampaignByID(ctx, id)
}

// ResolveByCode is a case-sensitive exact match on the unique code.
func (s *Service) ResolveByCode(ctx context.Context, code string) (models.Campaign, bool, error) {
	return s.match.CampaignByCode(ctx, code)
}

// GetByRef accepts either a numeric id or a unique code.
func (s *Service) GetByRef(ctx context.Context, ref string) (models.Campaign, bool, error) {
	return s.match.CampaignByRef(ctx, ref)
}

// List returns campaigns in creation order.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Campaign, error) {
	filter := store.Filter{}
	if f.ActiveOnly {
		filter["active"] = true
	}
	if f.CreatedBy > 0 {
		filter["created_by"] = f.CreatedBy
	}
	return s.st.Campaigns.List(ctx, filter)
}

// Update merges patch into the campaign. The unique code is not part of the
// patch type and cannot change.
func (s *Service) Update(ctx context.Context, id int64, patch models.CampaignPatch) (models.Campaign, bool, error) {
	if res := inputval.Validate(patch); res.HasErrors() {
		return models.Campaign{}, false, res.Err()
	}
	if patch.Title != nil {
		v := htmlsanitize.PlainText(*patch.Title)
		patch.Title = &v
	}
	if patch.Description != nil {
		v := htmlsanitize.Sanitize(strings.TrimSpace(*patch.Description))
		patch.Description = &v
	}
	if patch.Location != nil {
		v := htmlsanitize.PlainText(*patch.Location)
		patch.Location = &v
	}
	if patch.EndDate != nil {
		v := strings.TrimSpace(*patch.EndDate)
		patch.EndDate = &v
	}
	required := map[string]string{}
	for field, p := range map[string]*string{"title": patch.Title, "description": patch.Description, "location": patch.Location, "endDate": patch.EndDate} {
		if p != nil {
			required[field] = *p
		}
	}
	if res := requireText(required); res.HasErrors() {
		return models.Campaign{}, false, res.Err()
	}

	if patch.Empty() {
		return s.Get(ctx, id)
	}
	return s.st.Campaigns.Update(ctx, id, store.Set(patch.Set()))
}

// Deactivate flips the active flag off. Needed items and donations stay.
func (s *Service) Deactivate(ctx context.Context, id int64) (models.Campaign, bool, error) {
	return s.st.Campaigns.Update(ctx, id, store.Set{"active": false})
}

// Delete removes the campaign together with its needed items, its donations
// and their lines, and its financial donations. Children go first so a failed
// delete can simply be retried.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if _, found, err := s.Get(ctx, id); err != nil || !found {
		return false, err
	}

	items, err := s.st.NeededItems.List(ctx, store.Filter{"campaign_id": id})
	if err != nil {
		return false, err
	}
	var lines int64
	for _, it := range items {
		n, err := s.st.DonationItems.DeleteWhere(ctx, store.Filter{"needed_item_id": it.ID})
		if err != nil {
			return false, fmt.Errorf("delete lines of needed item %d: %w", it.ID, err)
		}
		lines += n
	}
	donations, err := s.st.Donations.List(ctx, store.Filter{"campaign_id": id})
	if err != nil {
		return false, err
	}
	for _, d := range donations {
		n, err := s.st.DonationItems.DeleteWhere(ctx, store.Filter{"donation_id": d.ID})
		if err != nil {
			return false, fmt.Errorf("delete lines of donation %d: %w", d.ID, err)
		}
		lines += n
	}
	nItems, err := s.st.NeededItems.DeleteWhere(ctx, store.Filter{"campaign_id": id})
	if err != nil {
		return false, err
	}
	nDonations, err := s.st.Donations.DeleteWhere(ctx, store.Filter{"campaign_id": id})
	if err != nil {
		return false, err
	}
	nFinancial, err := s.st.FinancialDonations.DeleteWhere(ctx, store.Filter{"campaign_id": id})
	if err != nil {
		return false, err
	}

	ok, err := s.st.Campaigns.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	s.log.Info("campaign deleted",
		zap.Int64("campaign_id", id),
		zap.Int64("needed_items", nItems),
		zap.Int64("donations", nDonations),
		zap.Int64("donation_items", lines),
		zap.Int64("financial_donations", nFinancial))
	return ok, nil
}

// requireText reports fields whose sanitized value came out empty.
func requireText(fields map[string]string) *inputval.Result {
	res := &inputval.Result{}
	for _, name := range []string{"title", "description", "location", "endDate"} {
		if v, ok := fields[name]; ok && strings.TrimSpace(v) == "" {
			res.Add(name, labels[name]+" is required.")
		}
	}
	return res
}

var labels = map[string]string{
	"title":       "Title",
	"description": "Description",
	"location":    "Location",
	"endDate":     "End date",
}
