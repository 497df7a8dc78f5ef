// internal/domain/models/campaign.go
package models

import (
	"time"
)

// Campaign is a relief effort collecting item or financial donations.
//
// NOTE:
//   - UniqueCode is assigned once at creation and never changes; it is not
//     part of CampaignPatch.
//   - EndDate is a calendar date kept as text (YYYY-MM-DD).
type Campaign struct {
	ID          int64     `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"`
	EndDate     string    `bson:"end_date" json:"endDate"`
	CreatedBy   int64     `bson:"created_by" json:"createdBy"`
	Urgent      bool      `bson:"urgent" json:"urgent"`
	ImageURLs   []string  `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	UniqueCode  string    `bson:"unique_code" json:"uniqueCode"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// CampaignPatch is the updatable field set of a Campaign.
type CampaignPatch struct {
	Title       *string   `json:"title" validate:"omitempty,max=200" label:"Title"`
	Description *string   `json:"description" validate:"omitempty,max=5000" label:"Description"`
	Location    *string   `json:"location" validate:"omitempty,max=300" label:"Location"`
	EndDate     *string   `json:"endDate" validate:"omitempty,datetime=2006-01-02" label:"End date"`
	Urgent      *bool     `json:"urgent"`
	ImageURLs   *[]string `json:"imageUrls" validate:"omitempty,dive,url" label:"Image URLs"`
	Active      *bool     `json:"active"`
}

// Empty reports whether the patch changes nothing.
func (p CampaignPatch) Empty() bool {
	return len(p.Set()) == 0
}

// Set renders the patch as a field-name keyed update document.
func (p CampaignPatch) Set() map[string]any {
	set := map[string]any{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.EndDate != nil {
		set["end_date"] = *p.EndDate
	}
	if p.Urgent != nil {
		set["urgent"] = *p.Urgent
	}
	if p.ImageURLs != nil {
		set["image_urls"] = *p.ImageURLs
	}
	if p.Active != nil {
		set["active"] = *p.Active
	}
	return set
}
