package campaigns

import (
	"context"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

// NeededItemInput is the validated shape of a new needed item. Priority 0
// means "not given" and is stored as 1.
type NeededItemInput struct {
	CampaignID int64  `json:"campaignId" validate:"gt=0" label:"Campaign"`
	Name       string `json:"name" validate:"notblank,max=200" label:"Name"`
	CategoryID int64  `json:"categoryId" validate:"gte=0" label:"Category"`
	Quantity   int64  `json:"quantity" validate:"gt=0" label:"Quantity"`
	Unit       string `json:"unit" validate:"notblank,max=50" label:"Unit"`
	Priority   int    `json:"priority" validate:"gte=0,lte=100" label:"Priority"`
}

// AddNeededItem checks that the campaign (and category, when given) exist
// and stores the item.
func (s *Service) AddNeededItem(ctx context.Context, in NeededItemInput) (models.NeededItem, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return models.NeededItem{}, res.Err()
	}
	if _, found, err := s.Get(ctx, in.CampaignID); err != nil {
		return models.NeededItem{}, err
	} else if !found {
		return models.NeededItem{}, inputval.Fail("campaignId", "Campaign not found.")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return models.NeededItem{}, err
	}

	item := models.NeededItem{
		CampaignID: in.CampaignID,
		Name:       htmlsanitize.PlainText(in.Name),
		CategoryID: in.CategoryID,
		Quantity:   in.Quantity,
		Unit:       htmlsanitize.PlainText(in.Unit),
		Priority:   in.Priority,
	}
	if item.Priority == 0 {
		item.Priority = 1
	}
	if item.Name == "" {
		return models.NeededItem{}, inputval.Fail("name", "Name is required.")
	}
	return s.st.NeededItems.Create(ctx, item)
}

// GetNeededItem returns the needed item with id.
func (s *Service) GetNeededItem(ctx context.Context, id int64) (models.NeededItem, bool, error) {
	return s.st.NeededItems.Get(ctx, id)
}

// UpdateNeededItem adjusts target quantity, priority, name, unit or category.
func (s *Service) UpdateNeededItem(ctx context.Context, id int64, patch models.NeededItemPatch) (models.NeededItem, bool, error) {
	if res := inputval.Validate(patch); res.HasErrors() {
		return models.NeededItem{}, false, res.Err()
	}
	if patch.Name != nil {
		v := htmlsanitize.PlainText(*patch.Name)
		if v == "" {
			return models.NeededItem{}, false, inputval.Fail("name", "Name is required.")
		}
		patch.Name = &v
	}
	if patch.Unit != nil {
		v := htmlsanitize.PlainText(*patch.Unit)
		patch.Unit = &v
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return models.NeededItem{}, false, err
		}
	}
	set := patch.Set()
	if len(set) == 0 {
		return s.GetNeededItem(ctx, id)
	}
	return s.st.NeededItems.Update(ctx, id, store.Set(set))
}

// DeleteNeededItem removes the item. Donation lines that pledged to it are
// kept as donation history.
func (s *Service) DeleteNeededItem(ctx context.Context, id int64) (bool, error) {
	return s.st.NeededItems.Delete(ctx, id)
}

func (s *Service) checkCategory(ctx context.Context, id int64) error {
	if id == 0 {
		return nil
	}
	_, found, err := s.st.Categories.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return inputval.Fail("categoryId", "Category not found.")
	}
	return nil
}
