// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

// Backend names accepted by storage_backend and id_backend.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). Ports, TLS, log level and
// the other framework-level settings live in WAFFLE's CoreConfig.
type AppConfig struct {
	// Where entities live: "memory" (process lifetime) or "mongo".
	StorageBackend string
	// Where id sequences live: "memory", "mongo" or "redis".
	// Blank means the same as StorageBackend.
	IDBackend string

	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Redis (id allocation only)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: sousolidario-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Bootstrap admin, created on startup when both are set and the login is free.
	AdminLogin    string
	AdminPassword string

	// Optional YAML category seed; the embedded list is used when blank.
	CategoriesFile string

	// Payment instructions for financial donations to campaigns whose
	// owner has no payment account of their own.
	PaymentAccount models.AccountInfo

	// Context deadlines around store calls (see system/timeouts).
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}

// EffectiveIDBackend resolves a blank IDBackend to the storage backend.
func (c AppConfig) EffectiveIDBackend() string {
	if c.IDBackend == "" {
		return c.StorageBackend
	}
	return c.IDBackend
}

// UsesMongo reports whether either backend needs a Mongo connection.
func (c AppConfig) UsesMongo() bool {
	return c.StorageBackend == BackendMongo || c.EffectiveIDBackend() == BackendMongo
}

// UsesRedis reports whether ids are allocated in Redis.
func (c AppConfig) UsesRedis() bool {
	return c.EffectiveIDBackend() == BackendRedis
}
