package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shivanand-hulikatti/campus-events/internal/config"
	"github.com/Shivanand-hulikatti/campus-events/internal/database"
)

// Open connects to the store selected by cfg.StoreDriver and prepares its
// schema. The caller must Close the returned Store.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return NewEventRepository(pool), nil

	case config.DriverMongo:
		client, coll, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return NewMongoEventRepository(client, coll), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteEventRepository(db), nil

	case config.DriverMemory:
		return NewMemoryEventRepository(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
