package store

import (
	"context"
	"errors"

	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Entity kinds. Each doubles as the collection name and the id sequence name.
const (
	KindUsers              = "users"
	KindCategories         = "categories"
	KindCampaigns          = "campaigns"
	KindNeededItems        = "needed_items"
	KindDonations          = "donations"
	KindDonationItems      = "donation_items"
	KindFinancialDonations = "financial_donations"
)

// Specs lists how every kind is stored.
var Specs = map[string]Spec{
	KindUsers:              {Kind: KindUsers, Unique: []string{"login_ci"}},
	KindCategories:         {Kind: KindCategories, Unique: []string{"name_ci"}},
	KindCampaigns:          {Kind: KindCampaigns, Unique: []string{"unique_code"}, Indexed: []string{"created_by", "active"}},
	KindNeededItems:        {Kind: KindNeededItems, Indexed: []string{"campaign_id"}},
	KindDonations:          {Kind: KindDonations, Indexed: []string{"campaign_id"}},
	KindDonationItems:      {Kind: KindDonationItems, Indexed: []string{"donation_id", "needed_item_id"}},
	KindFinancialDonations: {Kind: KindFinancialDonations, Indexed: []string{"campaign_id"}},
}

// Store groups the tables of every entity kind. It is the only owner of
// entity state; services reach entities through these tables.
type Store struct {
	Backend string // "memory" or "mongo"

	Users              Table[models.User]
	Categories         Table[models.Category]
	Campaigns          Table[models.Campaign]
	NeededItems        Table[models.NeededItem]
	Donations          Table[models.Donation]
	DonationItems      Table[models.DonationItem]
	FinancialDonations Table[models.FinancialDonation]
}

// NewMemory returns a process-lifetime store. A nil alloc uses a fresh
// idgen.MemoryAllocator.
func NewMemory(alloc idgen.Allocator) *Store {
	if alloc == nil {
		alloc = idgen.NewMemoryAllocator()
	}
	return &Store{
		Backend:            "memory",
		Users:              NewMemTable[models.User](Specs[KindUsers], alloc),
		Categories:         NewMemTable[models.Category](Specs[KindCategories], alloc),
		Campaigns:          NewMemTable[models.Campaign](Specs[KindCampaigns], alloc),
		NeededItems:        NewMemTable[models.NeededItem](Specs[KindNeededItems], alloc),
		Donations:          NewMemTable[models.Donation](Specs[KindDonations], alloc),
		DonationItems:      NewMemTable[models.DonationItem](Specs[KindDonationItems], alloc),
		FinancialDonations: NewMemTable[models.FinancialDonation](Specs[KindFinancialDonations], alloc),
	}
}

// NewMongo returns a store backed by db. A nil alloc uses the database's
// counters collection.
func NewMongo(db *mongo.Database, alloc idgen.Allocator) *Store {
	if alloc == nil {
		alloc = idgen.NewMongoAllocator(db)
	}
	return &Store{
		Backend:            "mongo",
		Users:              NewMongoTable[models.User](db, Specs[KindUsers], alloc),
		Categories:         NewMongoTable[models.Category](db, Specs[KindCategories], alloc),
		Campaigns:          NewMongoTable[models.Campaign](db, Specs[KindCampaigns], alloc),
		NeededItems:        NewMongoTable[models.NeededItem](db, Specs[KindNeededItems], alloc),
		Donations:          NewMongoTable[models.Donation](db, Specs[KindDonations], alloc),
		DonationItems:      NewMongoTable[models.DonationItem](db, Specs[KindDonationItems], alloc),
		FinancialDonations: NewMongoTable[models.FinancialDonation](db, Specs[KindFinancialDonations], alloc),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates indexes on every table that supports them. It is a
// no-op for the memory backing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	tables := []any{
		s.Users, s.Categories, s.Campaigns, s.NeededItems,
		s.Donations, s.DonationItems, s.FinancialDonations,
	}
	var errs []error
	for _, t := range tables {
		if ix, ok := t.(indexer); ok {
			if err := ix.EnsureIndexes(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
