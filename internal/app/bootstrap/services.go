// internal/app/bootstrap/services.go
package bootstrap

import (
	"github.com/assisberlanda/sousolidario/internal/app/services/accounts"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"github.com/assisberlanda/sousolidario/internal/app/system/seed"
	"go.uber.org/zap"
)

// Services bundles the domain services over one store. The HTTP handlers
// and solidarioctl share it.
type Services struct {
	Accounts  *accounts.Service
	Campaigns *campaignsvc.Service
	Donations *donationsvc.Service
	Matching  *matching.Service
}

// NewServices builds the services over deps.Store.
func NewServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) Services {
	return Services{
		Accounts:  accounts.New(deps.Store, logger),
		Campaigns: campaignsvc.New(deps.Store, logger),
		Donations: donationsvc.New(deps.Store, appCfg.PaymentAccount, logger),
		Matching:  matching.New(deps.Store),
	}
}

// Seeder returns a seed file loader writing through svcs.
func (svcs Services) Seeder(deps DBDeps, logger *zap.Logger) *seed.Seeder {
	return &seed.Seeder{
		Store:     deps.Store,
		Accounts:  svcs.Accounts,
		Campaigns: svcs.Campaigns,
		Donations: svcs.Donations,
		Log:       logger,
	}
}
