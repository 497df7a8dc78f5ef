// internal/app/features/reports/handler.go
package reports

import (
	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	donationsvc "github.com/assisberlanda/sousolidario/internal/app/services/donations"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"go.uber.org/zap"
)

// Handler serves spreadsheet exports of a campaign's donations.
type Handler struct {
	Campaigns *campaignsvc.Service
	Donations *donationsvc.Service
	Match     *matching.Service
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(camps *campaignsvc.Service, dons *donationsvc.Service, match *matching.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Campaigns: camps,
		Donations: dons,
		Match:     match,
		ErrLog:    errLog,
		Log:       logger,
	}
}
