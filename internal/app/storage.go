package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/dietpop-lineup/internal/config"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/resilience"
)

type storage struct {
	store  kvstore.Store
	pinger kvstore.Pinger
	close  func() error
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage ready", "driver", cfg.StorageDriver)
		return storage{store: memory.NewKVStore(), close: func() error { return nil }}, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "path", cfg.SQLitePath)
		return storage{store: store, pinger: store, close: store.Close}, nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return storage{}, err
		}
		remote := wrapRemoteStore(cfg, postgres.NewKVStore(db), logger)
		logger.Info("storage ready",
			"driver", cfg.StorageDriver,
			"db_name", dbNameFromURL(cfg.DBURL),
			"cache_enabled", cfg.CacheEnabled,
			"circuit_enabled", cfg.StorageCircuitEnabled,
		)
		pinger, _ := remote.(kvstore.Pinger)
		return storage{store: remote, pinger: pinger, close: db.Close}, nil
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := PostgresURL(cfg)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, kvstore.Unavailable(err, "ping postgres")
	}
	return db, nil
}

// wrapRemoteStore puts the read-through cache, and the circuit breaker it
// guards calls with, in front of a network-backed store.
func wrapRemoteStore(cfg config.Config, next kvstore.Store, logger *logging.Logger) kvstore.Store {
	if !cfg.CacheEnabled {
		return next
	}

	var breaker *resilience.Breaker
	if cfg.StorageCircuitEnabled {
		breaker = cache.NewBreaker(resilience.BreakerConfig{
			Name:             "kv-store",
			FailureThreshold: cfg.StorageCircuitFailureCount,
			OpenTimeout:      cfg.StorageCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenMaxReq,
		}, resilience.WithStateChange(func(name string, from, to resilience.State) {
			logger.Warn("storage circuit state changed", "breaker", name, "from", from, "to", to)
		}))
	}
	return cache.NewKVStore(next, cfg.CacheTTL, breaker)
}
