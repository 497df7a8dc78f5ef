// Package matching answers read questions across entities: which campaign a
// reference names, which needs come first, and how much has been pledged
// against each need.
package matching

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Service reads through the entity store; it never writes.
type Service struct {
	st *store.Store
}

func New(st *store.Store) *Service {
	return &Service{st: st}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Campaign resolution                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// CampaignByID returns the campaign with id.
func (s *Service) CampaignByID(ctx context.Context, id int64) (models.Campaign, bool, error) {
	if id <= 0 {
		return models.Campaign{}, false, nil
	}
	return s.st.Campaigns.Get(ctx, id)
}

// CampaignByCode is a case-sensitive exact match on the unique code.
func (s *Service) CampaignByCode(ctx context.Context, code string) (models.Campaign, bool, error) {
	if code == "" {
		return models.Campaign{}, false, nil
	}
	return s.st.Campaigns.FindOne(ctx, store.Filter{"unique_code": code})
}

// CampaignByRef resolves ref as a numeric id first and, when that is not a
// positive integer or finds nothing, as a unique code.
func (s *Service) CampaignByRef(ctx context.Context, ref string) (models.Campaign, bool, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		c, found, err := s.CampaignByID(ctx, id)
		if err != nil || found {
			return c, found, err
		}
	}
	return s.CampaignByCode(ctx, ref)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Needed items                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// NeededItemsByPriority lists a campaign's needed items, most urgent first.
func (s *Service) NeededItemsByPriority(ctx context.Context, campaignID int64) ([]models.NeededItem, error) {
	items, err := s.st.NeededItems.List(ctx, store.Filter{"campaign_id": campaignID})
	if err != nil {
		return nil, err
	}
	SortByPriority(items)
	return items, nil
}

// SortByPriority orders items by ascending priority, then by name compared
// case- and accent-insensitively, then by id.
func SortByPriority(items []models.NeededItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		fa, fb := text.Fold(a.Name), text.Fold(b.Name)
		if fa != fb {
			return fa < fb
		}
		return a.ID < b.ID
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Donation aggregates                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// AggregateOptions selects which donations count toward a total.
type AggregateOptions struct {
	// IncludeCancelled counts lines of cancelled donations too.
	IncludeCancelled bool
}

// DonatedQuantity sums the quantities of every donation line pledged to
// neededItemID. Lines whose donation no longer exists are skipped.
func (s *Service) DonatedQuantity(ctx context.Context, neededItemID int64, opts AggregateOptions) (int64, error) {
	lines, err := s.st.DonationItems.List(ctx, store.Filter{"needed_item_id": neededItemID})
	if err != nil {
		return 0, err
	}
	status := statusCache{st: s.st}
	var total int64
	for _, ln := range lines {
		counts, err := status.counts(ctx, ln.DonationID, opts)
		if err != nil {
			return 0, err
		}
		if counts {
			total += ln.Quantity
		}
	}
	return total, nil
}

// DonatedByItem returns neededItemID → summed quantity for every needed item
// of a campaign. Items with no pledges map to 0.
func (s *Service) DonatedByItem(ctx context.Context, campaignID int64, opts AggregateOptions) (map[int64]int64, error) {
	items, err := s.st.NeededItems.List(ctx, store.Filter{"campaign_id": campaignID})
	if err != nil {
		return nil, err
	}
	status := statusCache{st: s.st}
	out := make(map[int64]int64, len(items))
	for _, it := range items {
		lines, err := s.st.DonationItems.List(ctx, store.Filter{"needed_item_id": it.ID})
		if err != nil {
			return nil, err
		}
		var total int64
		for _, ln := range lines {
			counts, err := status.counts(ctx, ln.DonationID, opts)
			if err != nil {
				return nil, err
			}
			if counts {
				total += ln.Quantity
			}
		}
		out[it.ID] = total
	}
	return out, nil
}

// statusCache remembers donation statuses for one aggregate pass.
type statusCache struct {
	st   *store.Store
	seen map[int64]*models.DonationStatus
}

func (c *statusCache) counts(ctx context.Context, donationID int64, opts AggregateOptions) (bool, error) {
	if c.seen == nil {
		c.seen = map[int64]*models.DonationStatus{}
	}
	st, ok := c.seen[donationID]
	if !ok {
		d, found, err := c.st.Donations.Get(ctx, donationID)
		if err != nil {
			return false, err
		}
		if found {
			st = &d.Status
		}
		c.seen[donationID] = st
	}
	if st == nil {
		return false, nil
	}
	return opts.IncludeCancelled || *st != models.DonationCancelled, nil
}
