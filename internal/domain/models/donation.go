// internal/domain/models/donation.go
package models

import (
	"time"
)

// Donation is one donor's pledge of items to one campaign, together with the
// pickup appointment. Its line items live in DonationItem records.
type Donation struct {
	ID         int64          `bson:"_id" json:"id"`
	CampaignID int64          `bson:"campaign_id" json:"campaignId"`
	DonorName  string         `bson:"donor_name" json:"donorName"`
	DonorPhone string         `bson:"donor_phone" json:"donorPhone"`
	DonorEmail string         `bson:"donor_email,omitempty" json:"donorEmail,omitempty"`
	Address    string         `bson:"address" json:"address"`
	City       string         `bson:"city" json:"city"`
	State      string         `bson:"state" json:"state"`
	ZipCode    string         `bson:"zip_code" json:"zipCode"`
	PickupDate string         `bson:"pickup_date" json:"pickupDate"`
	PickupTime string         `bson:"pickup_time" json:"pickupTime"`
	Status     DonationStatus `bson:"status" json:"status"`
	CreatedAt  time.Time      `bson:"created_at" json:"createdAt"`
}

// DonationItem is a single line of a Donation. Quantities of every line that
// references the same NeededItem add up toward that item's target.
type DonationItem struct {
	ID           int64 `bson:"_id" json:"id"`
	DonationID   int64 `bson:"donation_id" json:"donationId"`
	NeededItemID int64 `bson:"needed_item_id" json:"neededItemId"`
	Quantity     int64 `bson:"quantity" json:"quantity"`
}
