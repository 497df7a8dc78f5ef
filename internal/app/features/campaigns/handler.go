// internal/app/features/campaigns/handler.go
package campaigns

import (
	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/app/services/matching"
	"go.uber.org/zap"
)

// Handler serves campaign reads and the owner/admin campaign writes.
type Handler struct {
	Campaigns *campaignsvc.Service
	Match     *matching.Service
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a campaigns Handler.
func NewHandler(svc *campaignsvc.Service, match *matching.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Campaigns: svc,
		Match:     match,
		ErrLog:    errLog,
		Log:       logger,
	}
}
