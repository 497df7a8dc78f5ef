package campaigns

import (
	"context"
	"math"

	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
)

// ItemProgress is one needed item's share of a campaign's progress.
type ItemProgress struct {
	NeededItemID int64  `json:"neededItemId"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Priority     int    `json:"priority"`
	Target       int64  `json:"target"`
	Donated      int64  `json:"donated"` // everything pledged
	Counted      int64  `json:"counted"` // Donated capped at Target
	Percent      int    `json:"percent"`
}

// Progress is how far a campaign's needs are covered by pledged items.
type Progress struct {
	CampaignID   int64          `json:"campaignId"`
	Percent      int            `json:"percent"`
	TotalTarget  int64          `json:"totalTarget"`
	TotalCounted int64          `json:"totalCounted"`
	Items        []ItemProgress `json:"items"`
}

// Progress computes per-item and overall coverage. Over-donation on one item
// never counts toward another. Cancelled donations are not counted.
func (s *Service) Progress(ctx context.Context, campaignID int64) (Progress, error) {
	p := Progress{CampaignID: campaignID, Items: []ItemProgress{}}

	items, err := s.match.NeededItemsByPriority(ctx, campaignID)
	if err != nil {
		return p, err
	}
	if len(items) == 0 {
		return p, nil
	}
	donated, err := s.match.DonatedByItem(ctx, campaignID, matching.AggregateOptions{})
	if err != nil {
		return p, err
	}

	for _, it := range items {
		ip := ItemProgress{
			NeededItemID: it.ID,
			Name:         it.Name,
			Unit:         it.Unit,
			Priority:     it.Priority,
			Target:       max(it.Quantity, 0),
			Donated:      donated[it.ID],
		}
		ip.Counted = min(max(ip.Donated, 0), ip.Target)
		ip.Percent = Percent(ip.Counted, ip.Target)
		p.TotalTarget += ip.Target
		p.TotalCounted += ip.Counted
		p.Items = append(p.Items, ip)
	}
	p.Percent = Percent(p.TotalCounted, p.TotalTarget)
	return p, nil
}

// ComputeProgress returns only the overall percentage. A campaign without
// needed items, or an unknown campaign, is at 0.
func (s *Service) ComputeProgress(ctx context.Context, campaignID int64) (int, error) {
	p, err := s.Progress(ctx, campaignID)
	return p.Percent, err
}

// Percent is round(100·counted/target) clamped to [0, 100]; 0 when target
// is not positive.
func Percent(counted, target int64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(counted) / float64(target)))
	return min(max(pct, 0), 100)
}
