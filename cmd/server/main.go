package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	staticcatalog "github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/catalog/static"
	httpadapter "github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/http"
	metricsinmem "github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/metrics/inmemory"
	gormrepo "github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/gorm"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/memory"
	sqliterepo "github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/sqlite"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/action"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/history"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/inventory"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shared/keylock"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shared/randsrc"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shop"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/status"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/platform/config"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/platform/otel"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/platform/random"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Setup(ctx, otel.Options{
		ServiceName: cfg.OTelServiceName,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}

	repos, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	seed, err := random.Resolve(cfg.RandSeed)
	if err != nil {
		log.Fatalf("random seed: %v", err)
	}

	kpiRecorder := metricsinmem.NewRecorder()
	catalog := &staticcatalog.Provider{Root: cfg.CatalogRoot, File: cfg.CatalogFile}
	if _, err := catalog.Catalog(ctx); err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	h := buildHandler(cfg, repos, catalog, kpiRecorder, randsrc.New(seed))

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
		if err := repos.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	})

	log.Printf("lampdragon server listening on %s (storage=%s)", cfg.HTTPAddr, cfg.Storage)
	s.Spin()
}

// storage bundles the repositories for one backend.
type storage struct {
	Companions ports.CompanionRepository
	Events     ports.EventRepository
	TxManager  ports.TxManager
	close      func() error
}

func (s storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func buildStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage {
	case config.StorageMemory, "":
		store := memory.NewStore()
		return storage{
			Companions: memory.NewCompanionRepo(store),
			Events:     memory.NewEventRepo(store),
			TxManager:  memory.NewTxManager(store),
		}, nil
	case config.StorageSQLite:
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		return storage{
			Companions: sqliterepo.NewCompanionRepo(store),
			Events:     sqliterepo.NewEventRepo(store),
			TxManager:  sqliterepo.NewTxManager(store),
			close:      store.Close,
		}, nil
	case config.StoragePostgres:
		db, err := gormrepo.OpenPostgresWithPool(cfg.DBDSN, gormrepo.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return storage{}, err
		}
		if cfg.AutoMigrate {
			if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
				return storage{}, fmt.Errorf("apply migrations: %w", err)
			}
		}
		return storage{
			Companions: gormrepo.NewCompanionRepo(db),
			Events:     gormrepo.NewEventRepo(db),
			TxManager:  gormrepo.NewTxManager(db),
			close: func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	default:
		return storage{}, errors.New("unsupported storage backend: " + cfg.Storage)
	}
}

func buildHandler(cfg config.Config, repos storage, catalog ports.CatalogProvider, kpi *metricsinmem.Recorder, rng *randsrc.Source) httpadapter.Handler {
	runner := interaction.Runner{
		TxManager:    repos.TxManager,
		Companions:   repos.Companions,
		Events:       repos.Events,
		Locks:        keylock.New(),
		Metrics:      kpi,
		Rand:         rng,
		Now:          time.Now,
		DefaultName:  cfg.DefaultName,
		StartingGold: cfg.StartingGold,
	}
	return httpadapter.Handler{
		ActionUC:    action.UseCase{Runner: runner},
		StatusUC:    status.UseCase{Runner: runner},
		RenameUC:    status.RenameUseCase{Runner: runner},
		InventoryUC: inventory.UseCase{Runner: runner, Catalog: catalog},
		ShopUC:      shop.UseCase{Runner: runner, Catalog: catalog},
		HistoryUC:   history.UseCase{Events: repos.Events},
		KPI:         kpi,
		CORSOrigins: cfg.CORSOrigins,
	}
}
