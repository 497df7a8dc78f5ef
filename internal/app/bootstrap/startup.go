// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/assisberlanda/sousolidario/internal/app/resources"
	"github.com/assisberlanda/sousolidario/internal/app/system/seed"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: it applies
// the configured timeouts, seeds the categories and ensures the bootstrap
// admin account exists.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if err := seedCategories(ctx, appCfg, deps, logger); err != nil {
		return err
	}

	svcs := NewServices(appCfg, deps, logger)
	if _, err := svcs.Accounts.EnsureAdmin(ctx, appCfg.AdminLogin, appCfg.AdminPassword); err != nil {
		logger.Error("ensure admin failed", zap.Error(err))
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func seedCategories(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var (
		cats []models.Category
		err  error
	)
	if appCfg.CategoriesFile != "" {
		cats, err = resources.LoadCategories(appCfg.CategoriesFile)
	} else {
		cats, err = resources.DefaultCategories()
	}
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	added, err := seed.EnsureCategories(ctx, deps.Store, cats, logger)
	if err != nil {
		logger.Error("category seed failed", zap.Error(err))
		return fmt.Errorf("seed categories: %w", err)
	}
	if added > 0 {
		logger.Info("categories seeded", zap.Int("added", added))
	}
	return nil
}
