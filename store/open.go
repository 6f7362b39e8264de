package store

import (
	"fmt"

	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/config"
)

// Open creates the store selected by the configuration
func Open(cfg config.Configuration) (Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemStore(), nil
	case config.StoreBolt:
		return NewBoltStore(cfg.BoltPath)
	case config.StoreRedis:
		return NewRedisStore(cfg.RedisAddr), nil
	case config.StorePostgres:
		return OpenPostgres(cfg.DatabaseURL)
	case config.StoreSQLite:
		return OpenSQLite(cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store '%s'", cfg.Store)
}
