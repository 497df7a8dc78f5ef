// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB opens the configured backends and builds the entity store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	return OpenBackends(ctx, appCfg, logger)
}

// OpenBackends connects to Mongo and Redis as appCfg requires and wires
// the store with the matching id allocator. On error everything opened so
// far is closed again.
func OpenBackends(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (deps DBDeps, err error) {
	defer func() {
		if err != nil {
			_ = CloseBackends(context.Background(), deps, logger)
			deps = DBDeps{}
		}
	}()

	if appCfg.UsesMongo() {
		opts := options.Client().ApplyURI(appCfg.MongoURI)
		if appCfg.MongoMaxPoolSize > 0 {
			opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
		}
		if appCfg.MongoMinPoolSize > 0 {
			opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
		}
		client, cerr := mongo.Connect(ctx, opts)
		if cerr != nil {
			return deps, fmt.Errorf("connect mongo: %w", cerr)
		}
		deps.MongoClient = client
		pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if perr := client.Ping(pctx, nil); perr != nil {
			return deps, fmt.Errorf("ping mongo: %w", perr)
		}
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	}

	if appCfg.UsesRedis() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		deps.Redis = rdb
		pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if perr := rdb.Ping(pctx).Err(); perr != nil {
			return deps, fmt.Errorf("ping redis: %w", perr)
		}
		logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))
	}

	var alloc idgen.Allocator
	switch appCfg.EffectiveIDBackend() {
	case BackendMongo:
		alloc = idgen.NewMongoAllocator(deps.MongoDatabase)
	case BackendRedis:
		alloc = idgen.NewRedisAllocator(deps.Redis, "")
	case BackendMemory:
		alloc = idgen.NewMemoryAllocator()
	default:
		return deps, fmt.Errorf("unknown id backend %q", appCfg.EffectiveIDBackend())
	}

	switch appCfg.StorageBackend {
	case BackendMongo:
		deps.Store = store.NewMongo(deps.MongoDatabase, alloc)
	case BackendMemory:
		deps.Store = store.NewMemory(alloc)
	default:
		return deps, fmt.Errorf("unknown storage backend %q", appCfg.StorageBackend)
	}

	logger.Info("entity store ready",
		zap.String("storage_backend", appCfg.StorageBackend),
		zap.String("id_backend", appCfg.EffectiveIDBackend()))
	return deps, nil
}

// CloseBackends disconnects whatever OpenBackends connected.
func CloseBackends(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	var errs []error
	if deps.Redis != nil {
		logger.Info("closing Redis client")
		if err := deps.Redis.Close(); err != nil {
			logger.Error("Redis close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnsureSchema creates the unique and lookup indexes of every collection.
// It is a no-op for the memory backend.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Store == nil {
		return errors.New("entity store not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()
	if err := deps.Store.EnsureIndexes(ctx); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
