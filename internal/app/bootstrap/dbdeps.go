// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// The clients are nil when the configuration does not use them.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Redis         *redis.Client

	Store *store.Store
}
