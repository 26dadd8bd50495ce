package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/dietpop-lineup/internal/config"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dietpop-lineup/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/dietpop-lineup/internal/platform/id"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

// Runtime holds the services shared by the API server and the CLI.
type Runtime struct {
	Lineups  *usecase.LineupService
	Catalog  *usecase.CatalogService
	Settings *usecase.SettingsService
	Data     *usecase.DataService

	store  storage
	mirror *usecase.Mirror
	logger *logging.Logger
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	extra, err := memory.LoadSeedFile(cfg.CatalogSeedPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	standard, err := memory.NewStandardRepository(extra...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	mirror, err := usecase.NewMirror(cfg.PersistWorkers, cfg.PersistTimeout, logger)
	if err != nil {
		_ = store.close()
		return nil, fmt.Errorf("start persistence pool: %w", err)
	}

	settingsSvc := usecase.NewSettingsService(kv.NewSettingsRepository(store.store), mirror, logger)
	catalogSvc := usecase.NewCatalogService(
		standard,
		kv.NewCustomPopRepository(store.store),
		idgen.NewUUIDGenerator("custom-"),
		mirror,
		logger,
	)
	lineupSvc := usecase.NewLineupService(
		kv.NewLineupRepository(store.store),
		catalogSvc,
		idgen.NewUUIDGenerator("lineup-"),
		mirror,
		logger,
	)
	catalogSvc.SetLineupRemover(lineupSvc)
	catalogSvc.SetAutoSaver(settingsSvc)
	lineupSvc.SetAutoSaver(settingsSvc)
	dataSvc := usecase.NewDataService(lineupSvc, catalogSvc, settingsSvc, kv.NewInspector(store.store), logger)

	return &Runtime{
		Lineups:  lineupSvc,
		Catalog:  catalogSvc,
		Settings: settingsSvc,
		Data:     dataSvc,
		store:    store,
		mirror:   mirror,
		logger:   logger,
	}, nil
}

// Readiness is nil for backends without a remote connection.
func (r *Runtime) Readiness() kvstore.Pinger {
	return r.store.pinger
}

// Close drains pending writes before closing the storage backend.
func (r *Runtime) Close(ctx context.Context) error {
	mirrorErr := r.mirror.Close(ctx)
	if failures := r.mirror.Failures(); failures > 0 {
		r.logger.WarnContext(ctx, "persistence writes failed during run", "failures", failures)
	}
	return errors.Join(mirrorErr, r.store.close())
}

func NewHTTPServer(cfg config.Config, rt *Runtime, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(rt.Lineups, rt.Catalog, rt.Settings, rt.Data, logger)
	if pinger := rt.Readiness(); pinger != nil {
		handler.SetReadiness(pinger)
	}
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
