// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// Defaults shared by the server and solidarioctl.
const (
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "sou_solidario"
	DefaultRedisAddr     = "localhost:6379"
	DefaultSessionName   = "sousolidario-session"

	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
)

// DefaultPaymentAccount is the fallback shown to financial donors.
var DefaultPaymentAccount = models.AccountInfo{
	BankName:    "Banco do Brasil",
	Agency:      "0001",
	Account:     "12345-6",
	PixKey:      "doacoes@sousolidario.org",
	Beneficiary: "Sou Solidário",
}

// appConfigKeys defines the configuration keys for Sou Solidário.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: storage_backend, mongo_uri, etc.
//   - Environment variables: SOUSOLIDARIO_STORAGE_BACKEND, SOUSOLIDARIO_MONGO_URI, etc.
//   - Command-line flags: --storage_backend, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "storage_backend", Default: BackendMemory, Desc: "Entity storage: 'memory' or 'mongo'"},
	{Name: "id_backend", Default: "", Desc: "Id allocation: 'memory', 'mongo' or 'redis' (blank follows storage_backend)"},

	{Name: "mongo_uri", Default: DefaultMongoURI, Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: DefaultMongoDatabase, Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "redis_addr", Default: DefaultRedisAddr, Desc: "Redis address for id allocation"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: DefaultSessionName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 24h, 30m)"},

	{Name: "admin_login", Default: "", Desc: "Login of the bootstrap admin (created on startup if absent)"},
	{Name: "admin_password", Default: "", Desc: "Password of the bootstrap admin"},

	{Name: "categories_file", Default: "", Desc: "YAML file with the category seed (blank uses the built-in list)"},

	// Fallback payment instructions
	{Name: "payment_bank", Default: DefaultPaymentAccount.BankName, Desc: "Bank name shown to financial donors"},
	{Name: "payment_agency", Default: DefaultPaymentAccount.Agency, Desc: "Bank agency shown to financial donors"},
	{Name: "payment_account", Default: DefaultPaymentAccount.Account, Desc: "Bank account shown to financial donors"},
	{Name: "payment_pix_key", Default: DefaultPaymentAccount.PixKey, Desc: "PIX key shown to financial donors"},
	{Name: "payment_beneficiary", Default: DefaultPaymentAccount.Beneficiary, Desc: "Beneficiary name shown to financial donors"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-record store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for lists and writes with a lookup"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for multi-entity writes and exports"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, in order of precedence,
// command-line flags, SOUSOLIDARIO_* environment variables, config
// files (.env, config.yaml/json/toml) and the defaults above.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SOUSOLIDARIO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StorageBackend: appValues.String("storage_backend"),
		IDBackend:      appValues.String("id_backend"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		AdminLogin:    appValues.String("admin_login"),
		AdminPassword: appValues.String("admin_password"),

		CategoriesFile: appValues.String("categories_file"),

		PaymentAccount: models.AccountInfo{
			BankName:    appValues.String("payment_bank"),
			Agency:      appValues.String("payment_agency"),
			Account:     appValues.String("payment_account"),
			PixKey:      appValues.String("payment_pix_key"),
			Beneficiary: appValues.String("payment_beneficiary"),
		},

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateApp(appCfg); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey || len(appCfg.SessionKey) < 32 {
			return errors.New("session_key must be at least 32 characters and not the dev default in prod")
		}
	}
	return nil
}

// validateApp checks the settings that do not depend on the environment.
// solidarioctl runs it on the configuration it builds from flags.
func validateApp(appCfg AppConfig) error {
	switch appCfg.StorageBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("storage_backend %q: want %q or %q", appCfg.StorageBackend, BackendMemory, BackendMongo)
	}

	switch appCfg.EffectiveIDBackend() {
	case BackendMemory, BackendMongo, BackendRedis:
	default:
		return fmt.Errorf("id_backend %q: want %q, %q or %q", appCfg.IDBackend, BackendMemory, BackendMongo, BackendRedis)
	}

	// A process-local counter would hand out ids that already exist in a
	// durable store after a restart.
	if appCfg.StorageBackend == BackendMongo && appCfg.EffectiveIDBackend() == BackendMemory {
		return errors.New("id_backend memory cannot be combined with storage_backend mongo")
	}

	if appCfg.UsesMongo() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return errors.New("mongo_database is required")
		}
	}
	if appCfg.UsesRedis() && appCfg.RedisAddr == "" {
		return errors.New("redis_addr is required when id_backend is redis")
	}

	if (appCfg.AdminLogin == "") != (appCfg.AdminPassword == "") {
		return errors.New("admin_login and admin_password must be set together")
	}
	return nil
}
