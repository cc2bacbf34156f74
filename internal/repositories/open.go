package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"pixfacil/internal/config"
)

// HealthChecker is implemented by backends that can report connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Open connects the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config) (BlobStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Println("⚠️ using in-memory store, state is lost on exit")
		return NewMemoryStore(), nil
	case config.BackendFile:
		f, err := NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.BackendRedis:
		r, err := ConnectRedis(ctx, &RedisConfig{
			Host:         cfg.RedisHost,
			Port:         cfg.RedisPort,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}, "pixfacil:")
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.BackendPostgres:
		p, err := ConnectPostgres(DBConfig{
			Host:            cfg.DBHost,
			Port:            cfg.DBPort,
			User:            cfg.DBUser,
			Password:        cfg.DBPassword,
			Name:            cfg.DBName,
			SSLMode:         cfg.DBSSLMode,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
