package sheet

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
	"github.com/shandysiswandi/gosheet/internal/sheet/inbound"
	"github.com/shandysiswandi/gosheet/internal/sheet/store"
	"github.com/shandysiswandi/gosheet/internal/sheet/usecase"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	ID      pkguid.StringID
	Metrics usecase.Metrics
}

func New(dep Dependency) (func(context.Context) error, error) {
	storage, closer, err := newStore(dep.Config)
	if err != nil {
		return nil, err
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Store:          storage,
		Metrics:        dep.Metrics,
		ID:             dep.ID,
		PointScanLimit: int(dep.Config.GetInt("modules.sheet.point_scan_limit")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetInt("upload.max_bytes"))

	return closer, nil
}

func newStore(cfg pkgconfig.Config) (usecase.Store, func(context.Context) error, error) {
	switch driver := cfg.GetString("store.driver"); driver {
	case "", "memory":
		return store.NewInMemoryStore(), nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetString("store.redis.address"),
			Password: cfg.GetString("store.redis.password"),
			DB:       int(cfg.GetInt("store.redis.db")),
		})
		closer := func(context.Context) error { return client.Close() }
		return store.NewRedisStore(client, cfg.GetString("store.redis.prefix")), closer, nil
	case "postgres":
		db, err := store.OpenPostgres(cfg.GetString("store.postgres.dsn"))
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		ids, err := pkguid.NewSnowflake(cfg.GetInt("store.postgres.node_id"))
		if err != nil {
			return nil, nil, fmt.Errorf("init snowflake: %w", err)
		}
		pg, err := store.NewPostgresStore(db, ids)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, nil, err
		}
		return pg, func(context.Context) error { return pg.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
