// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	campaignsfeature "github.com/assisberlanda/sousolidario/internal/app/features/campaigns"
	categoriesfeature "github.com/assisberlanda/sousolidario/internal/app/features/categories"
	donationsfeature "github.com/assisberlanda/sousolidario/internal/app/features/donations"
	errorsfeature "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	healthfeature "github.com/assisberlanda/sousolidario/internal/app/features/health"
	loginfeature "github.com/assisberlanda/sousolidario/internal/app/features/login"
	logoutfeature "github.com/assisberlanda/sousolidario/internal/app/features/logout"
	neededitemsfeature "github.com/assisberlanda/sousolidario/internal/app/features/neededitems"
	profilefeature "github.com/assisberlanda/sousolidario/internal/app/features/profile"
	reportsfeature "github.com/assisberlanda/sousolidario/internal/app/features/reports"
	userinfofeature "github.com/assisberlanda/sousolidario/internal/app/features/userinfo"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/ratelimit"
	"github.com/assisberlanda/sousolidario/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the session manager and the
// domain services, then mounts the JSON API under /api and the health
// check under /health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg != nil && coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	svcs := NewServices(appCfg, deps, logger)

	// LoadSessionUser re-reads the account on each request so role changes
	// and deleted accounts take effect immediately.
	sessionMgr.SetUserFetcher(svcs.Accounts)

	return newRouter(deps, svcs, sessionMgr, logger), nil
}

// pledgesPerMinute caps anonymous pledges (item and financial together) per client IP.
const pledgesPerMinute = 30

func newRouter(deps DBDeps, svcs Services, sessionMgr *auth.SessionManager, logger *zap.Logger) chi.Router {
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Set before any Mount so subrouters inherit them.
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	r.Use(requestlog.Middleware(logger))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Store.Backend, deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		// Accounts and sessions
		loginHandler := loginfeature.NewHandler(svcs.Accounts, sessionMgr, errLog, logger)
		loginHandler.Limiter = ratelimit.NewLoginLimiter()
		authRouter := loginfeature.Routes(loginHandler)
		logoutfeature.MountRoutes(authRouter, logoutfeature.NewHandler(sessionMgr, logger))
		userinfofeature.MountRoutes(authRouter, userinfofeature.NewHandler())
		authRouter.Mount("/me", profilefeature.Routes(profilefeature.NewHandler(svcs.Accounts, sessionMgr, errLog, logger), sessionMgr))
		api.Mount("/auth", authRouter)

		api.Mount("/categories", categoriesfeature.Routes(categoriesfeature.NewHandler(deps.Store.Categories, errLog, logger)))

		// Campaigns, with the spreadsheet export on the same subrouter
		campaignsRouter := campaignsfeature.Routes(campaignsfeature.NewHandler(svcs.Campaigns, svcs.Matching, errLog, logger), sessionMgr)
		reportsfeature.MountRoutes(campaignsRouter, reportsfeature.NewHandler(svcs.Campaigns, svcs.Donations, svcs.Matching, errLog, logger), sessionMgr)
		api.Mount("/campaigns", campaignsRouter)

		api.Mount("/needed-items", neededitemsfeature.Routes(neededitemsfeature.NewHandler(svcs.Campaigns, errLog, logger), sessionMgr))

		donationsHandler := donationsfeature.NewHandler(svcs.Donations, svcs.Matching, errLog, logger)
		donationsHandler.PledgeLimit = ratelimit.New(pledgesPerMinute, time.Minute)
		api.Mount("/donations", donationsfeature.Routes(donationsHandler, sessionMgr))
		api.Mount("/financial-donations", donationsfeature.FinancialRoutes(donationsHandler, sessionMgr))
	})

	return r
}
