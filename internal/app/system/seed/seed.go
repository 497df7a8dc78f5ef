// Package seed loads categories and demo data into a store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/assisberlanda/sousolidario/internal/app/services/accounts"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnsureCategories stores every category whose folded name is not present
// yet and returns how many were created.
func EnsureCategories(ctx context.Context, st *store.Store, cats []models.Category, logger *zap.Logger) (int, error) {
	created := 0
	for _, c := range cats {
		c.ID = 0
		c.Name = strings.TrimSpace(c.Name)
		c.NameCI = text.Fold(c.Name)
		if c.NameCI == "" {
			continue
		}
		if _, found, err := st.Categories.FindOne(ctx, store.Filter{"name_ci": c.NameCI}); err != nil {
			return created, err
		} else if found {
			continue
		}
		if _, err := st.Categories.Create(ctx, c); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			return created, fmt.Errorf("create category %q: %w", c.Name, err)
		}
		created++
	}
	if created > 0 {
		logger.Info("categories seeded", zap.Int("created", created))
	}
	return created, nil
}

// File is the layout of a seed file.
type File struct {
	Users     []User     `yaml:"users"`
	Campaigns []Campaign `yaml:"campaigns"`
}

type User struct {
	Login            string              `yaml:"login"`
	Password         string              `yaml:"password"`
	Name             string              `yaml:"name"`
	Email            string              `yaml:"email"`
	Role             string              `yaml:"role"`
	OrganizationName string              `yaml:"organization_name"`
	PaymentAccount   *models.AccountInfo `yaml:"payment_account"`
}

type Campaign struct {
	Owner       string     `yaml:"owner"` // login of the creator
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Location    string     `yaml:"location"`
	EndDate     string     `yaml:"end_date"`
	Urgent      bool       `yaml:"urgent"`
	UniqueCode  string     `yaml:"unique_code"`
	Items       []Item     `yaml:"items"`
	Donations   []Donation `yaml:"donations"`
}

type Item struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Quantity int64  `yaml:"quantity"`
	Unit     string `yaml:"unit"`
	Priority int    `yaml:"priority"`
}

type Donation struct {
	DonorName  string `yaml:"donor_name"`
	DonorPhone string `yaml:"donor_phone"`
	DonorEmail string `yaml:"donor_email"`
	Address    string `yaml:"address"`
	City       string `yaml:"city"`
	State      string `yaml:"state"`
	ZipCode    string `yaml:"zip_code"`
	PickupDate string `yaml:"pickup_date"`
	PickupTime string `yaml:"pickup_time"`
	Items      []Line `yaml:"items"`
}

type Line struct {
	Item     string `yaml:"item"` // needed item name within the campaign
	Quantity int64  `yaml:"quantity"`
}

// Parse decodes a seed file.
func Parse(raw []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// Load reads and decodes the seed file at path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Summary counts what Apply wrote.
type Summary struct {
	Users         int
	UsersSkipped  int
	Campaigns     int
	NeededItems   int
	Donations     int
	DonationLines int
}

// Seeder writes seed files through the services, so every record passes
// the same validation as an API request.
type Seeder struct {
	Store     *store.Store
	Accounts  *accounts.Service
	Campaigns *campaignsvc.Service
	Donations *donations.Service
	Log       *zap.Logger
}

// Apply writes f. Users whose login already exists are skipped; campaigns
// are always created anew.
func (s *Seeder) Apply(ctx context.Context, f File) (Summary, error) {
	var sum Summary

	for _, u := range f.Users {
		existing, found, err := s.Accounts.FindByLogin(ctx, u.Login)
		if err != nil {
			return sum, err
		}
		id := existing.ID
		if found {
			sum.UsersSkipped++
		} else {
			created, err := s.Accounts.Register(ctx, accounts.RegisterInput{
				Login:            u.Login,
				Password:         u.Password,
				Name:             u.Name,
				Email:            u.Email,
				Role:             u.Role,
				OrganizationName: u.OrganizationName,
			})
			if err != nil {
				return sum, fmt.Errorf("user %q: %w", u.Login, err)
			}
			id = created.ID
			sum.Users++
		}
		if u.PaymentAccount != nil {
			pa := u.PaymentAccount
			if _, _, err := s.Accounts.SetPaymentAccount(ctx, id, accounts.PaymentAccountInput{
				BankName:    pa.BankName,
				Agency:      pa.Agency,
				Account:     pa.Account,
				PixKey:      pa.PixKey,
				Beneficiary: pa.Beneficiary,
			}); err != nil {
				return sum, fmt.Errorf("user %q payment account: %w", u.Login, err)
			}
		}
	}

	categories, err := s.categoryIDs(ctx)
	if err != nil {
		return sum, err
	}

	for ci, c := range f.Campaigns {
		owner, found, err := s.Accounts.FindByLogin(ctx, c.Owner)
		if err != nil {
			return sum, err
		}
		if !found {
			return sum, fmt.Errorf("campaign %d (%q): owner %q not found", ci, c.Title, c.Owner)
		}
		camp, err := s.Campaigns.Create(ctx, owner.ID, campaignsvc.CreateInput{
			Title:       c.Title,
			Description: c.Description,
			Location:    c.Location,
			EndDate:     c.EndDate,
			Urgent:      c.Urgent,
			UniqueCode:  c.UniqueCode,
		})
		if err != nil {
			return sum, fmt.Errorf("campaign %d (%q): %w", ci, c.Title, err)
		}
		sum.Campaigns++

		itemIDs := make(map[string]int64, len(c.Items))
		for _, it := range c.Items {
			var catID int64
			if it.Category != "" {
				id, ok := categories[text.Fold(it.Category)]
				if !ok {
					return sum, fmt.Errorf("campaign %q item %q: unknown category %q", c.Title, it.Name, it.Category)
				}
				catID = id
			}
			ni, err := s.Campaigns.AddNeededItem(ctx, campaignsvc.NeededItemInput{
				CampaignID: camp.ID,
				Name:       it.Name,
				CategoryID: catID,
				Quantity:   it.Quantity,
				Unit:       it.Unit,
				Priority:   it.Priority,
			})
			if err != nil {
				return sum, fmt.Errorf("campaign %q item %q: %w", c.Title, it.Name, err)
			}
			itemIDs[text.Fold(it.Name)] = ni.ID
			sum.NeededItems++
		}

		for di, d := range c.Donations {
			lines := make([]donations.LineInput, 0, len(d.Items))
			for _, ln := range d.Items {
				id, ok := itemIDs[text.Fold(ln.Item)]
				if !ok {
					return sum, fmt.Errorf("campaign %q donation %d: unknown item %q", c.Title, di, ln.Item)
				}
				lines = append(lines, donations.LineInput{NeededItemID: id, Quantity: ln.Quantity})
			}
			rec, err := s.Donations.RecordItemDonation(ctx, donations.ItemDonationInput{
				CampaignID: camp.ID,
				DonorName:  d.DonorName,
				DonorPhone: d.DonorPhone,
				DonorEmail: d.DonorEmail,
				Address:    d.Address,
				City:       d.City,
				State:      d.State,
				ZipCode:    d.ZipCode,
				PickupDate: d.PickupDate,
				PickupTime: d.PickupTime,
				Items:      lines,
			})
			if err != nil {
				return sum, fmt.Errorf("campaign %q donation %d: %w", c.Title, di, err)
			}
			sum.Donations++
			sum.DonationLines += len(rec.Items)
		}
	}

	s.Log.Info("seed applied",
		zap.Int("users", sum.Users),
		zap.Int("users_skipped", sum.UsersSkipped),
		zap.Int("campaigns", sum.Campaigns),
		zap.Int("needed_items", sum.NeededItems),
		zap.Int("donations", sum.Donations))
	return sum, nil
}

func (s *Seeder) categoryIDs(ctx context.Context) (map[string]int64, error) {
	cats, err := s.Store.Categories.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(cats))
	for _, c := range cats {
		out[c.NameCI] = c.ID
	}
	return out, nil
}
