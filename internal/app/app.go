package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pitchlink/stats-engine/external/apifootball"
	"github.com/pitchlink/stats-engine/internal/config"
	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	"github.com/pitchlink/stats-engine/internal/domain/tier"
	"github.com/pitchlink/stats-engine/internal/infrastructure/account/gatekeeper"
	"github.com/pitchlink/stats-engine/internal/infrastructure/provider/simulated"
	cacherepo "github.com/pitchlink/stats-engine/internal/infrastructure/repository/cache"
	"github.com/pitchlink/stats-engine/internal/infrastructure/repository/memory"
	"github.com/pitchlink/stats-engine/internal/infrastructure/repository/postgres"
	"github.com/pitchlink/stats-engine/internal/interfaces/httpapi"
	basecache "github.com/pitchlink/stats-engine/internal/platform/cache"
	idgen "github.com/pitchlink/stats-engine/internal/platform/id"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
	"github.com/pitchlink/stats-engine/internal/platform/resilience"
	"github.com/pitchlink/stats-engine/internal/usecase"
)

// NewHTTPServer wires repositories, the remote source, services and the
// router into a ready-to-run server. The returned cleanup releases store
// connections and must run after shutdown.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, zlog *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if zlog == nil {
		zlog = logging.Default()
	}

	entityRepo, statRepo, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		statRepo = cacherepo.NewStatisticRepository(statRepo, basecache.NewStore(cfg.CacheTTL))
	}

	source, err := buildStatsSource(cfg, zlog)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	syncSvc := usecase.NewSyncService(entityRepo, statRepo, source, usecase.SyncConfig{
		Season: cfg.SyncSeason,
	}, zlog)
	bulkSvc := usecase.NewBulkSyncService(entityRepo, syncSvc, idgen.NewRandomGenerator(), usecase.BulkConfig{
		PaceInterval: cfg.BulkPaceInterval,
		RetainedRuns: cfg.BulkRetainedRuns,
	}, zlog)

	policy := tier.NewPolicy(cfg.TierBasicMetrics)
	statsSvc := usecase.NewStatsService(entityRepo, statRepo, policy, zlog)
	entitySvc := usecase.NewEntityService(entityRepo, statRepo, zlog)

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(syncSvc, bulkSvc, statsSvc, entitySvc, cfg.WarmMaxWorkers, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config) (entity.Repository, statistic.Repository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := otelsqlx.Open("postgres", cfg.DBURL,
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(16)
		db.SetMaxIdleConns(4)
		db.SetConnMaxLifetime(30 * time.Minute)

		return postgres.NewEntityRepository(db), postgres.NewStatisticRepository(db), db.Close, nil
	default:
		entityRepo := memory.NewEntityRepository()
		if cfg.AppEnv == config.EnvDev {
			memory.SeedEntities(entityRepo)
		}
		return entityRepo, memory.NewStatisticRepository(), func() error { return nil }, nil
	}
}

func buildStatsSource(cfg config.Config, zlog *logging.Logger) (usecase.RemoteStatsSource, error) {
	switch cfg.StatsProvider {
	case config.StatsProviderAPIFootball:
		return apifootball.NewClient(apifootball.ClientConfig{
			BaseURL:        cfg.APIFootballBaseURL,
			Token:          cfg.APIFootballToken,
			Timeout:        cfg.APIFootballTimeout,
			MaxRetries:     cfg.APIFootballMaxRetries,
			RequestsPerMin: cfg.APIFootballRequestsPerMin,
			Logger:         zlog,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.APIFootballCircuitEnabled,
				FailureThreshold: cfg.APIFootballCircuitFailureCount,
				OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
			},
		}), nil
	case config.StatsProviderSimulated:
		return simulated.NewSource(), nil
	default:
		return nil, fmt.Errorf("unknown stats provider %q", cfg.StatsProvider)
	}
}
