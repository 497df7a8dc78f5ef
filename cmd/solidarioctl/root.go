package main

import (
	"context"
	"os"
	"strconv"

	"github.com/assisberlanda/sousolidario/internal/app/bootstrap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

// opener connects to the backends described by cfg.
type opener func(ctx context.Context, cfg bootstrap.AppConfig, logger *zap.Logger) (bootstrap.DBDeps, func(), error)

func defaultOpener(ctx context.Context, cfg bootstrap.AppConfig, logger *zap.Logger) (bootstrap.DBDeps, func(), error) {
	deps, err := bootstrap.OpenBackends(ctx, cfg, logger)
	if err != nil {
		return deps, nil, err
	}
	return deps, func() { _ = bootstrap.CloseBackends(context.Background(), deps, logger) }, nil
}

// cli is the state shared by every subcommand.
type cli struct {
	cfg     bootstrap.AppConfig
	verbose bool
	open    opener
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "solidarioctl",
		Short: "Administer a Sou Solidário backend",
		Long: "solidarioctl loads seed data, reports campaign progress and issues campaign codes.\n" +
			"Backend flags default to the SOUSOLIDARIO_* environment variables the server reads.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfg.StorageBackend, "storage", envOr("SOUSOLIDARIO_STORAGE_BACKEND", bootstrap.BackendMemory), "Entity storage: memory or mongo")
	f.StringVar(&c.cfg.IDBackend, "ids", os.Getenv("SOUSOLIDARIO_ID_BACKEND"), "Id allocation: memory, mongo or redis (blank follows --storage)")
	f.StringVar(&c.cfg.MongoURI, "mongo-uri", envOr("SOUSOLIDARIO_MONGO_URI", bootstrap.DefaultMongoURI), "MongoDB connection URI")
	f.StringVar(&c.cfg.MongoDatabase, "mongo-db", envOr("SOUSOLIDARIO_MONGO_DATABASE", bootstrap.DefaultMongoDatabase), "MongoDB database name")
	f.StringVar(&c.cfg.RedisAddr, "redis-addr", envOr("SOUSOLIDARIO_REDIS_ADDR", bootstrap.DefaultRedisAddr), "Redis address")
	f.StringVar(&c.cfg.RedisPassword, "redis-password", os.Getenv("SOUSOLIDARIO_REDIS_PASSWORD"), "Redis password")
	f.IntVar(&c.cfg.RedisDB, "redis-db", envInt("SOUSOLIDARIO_REDIS_DB", 0), "Redis database number")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Log backend activity to stderr")

	c.cfg.PaymentAccount = bootstrap.DefaultPaymentAccount

	root.AddCommand(c.seedCmd())
	root.AddCommand(c.progressCmd())
	root.AddCommand(codeCmd())
	return root
}

func (c *cli) logger() *zap.Logger {
	if !c.verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// connect validates the flags and opens the backends.
func (c *cli) connect(ctx context.Context) (bootstrap.DBDeps, bootstrap.Services, func(), error) {
	logger := c.logger()
	if err := bootstrap.ValidateConfig(nil, c.cfg, logger); err != nil {
		return bootstrap.DBDeps{}, bootstrap.Services{}, nil, err
	}
	deps, closeFn, err := c.open(ctx, c.cfg, logger)
	if err != nil {
		return deps, bootstrap.Services{}, nil, err
	}
	return deps, bootstrap.NewServices(c.cfg, deps, logger), closeFn, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}
