package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/polygame/internal/client/config"
	"github.com/dmitrijs2005/polygame/internal/client/repositories/metadata"
	"github.com/redis/go-redis/v9"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the metadata repository selected by cfg.StorageDriver
// together with the closer releasing its connection.
func Open(ctx context.Context, cfg *config.Config) (metadata.Repository, io.Closer, error) {
	switch cfg.StorageDriver {
	case DriverSQLite, "":
		db, err := OpenSQLite(ctx, cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), db, nil

	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return metadata.NewRedisRepository(rdb, cfg.RedisPrefix), rdb, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
