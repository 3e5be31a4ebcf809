package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"

	"github.com/mlb-tools/roster-watch/external/statsapi"
	"github.com/mlb-tools/roster-watch/internal/config"
	"github.com/mlb-tools/roster-watch/internal/interfaces/httpapi"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
	"github.com/mlb-tools/roster-watch/internal/platform/resilience"
	"github.com/mlb-tools/roster-watch/internal/usecase"
)

// App owns the HTTP server and its supporting infrastructure: the sqlite
// cache and the background sweep scheduler.
type App struct {
	Server *http.Server

	db      *sqlx.DB
	sweeper *cron.Cron
	logger  *logging.Logger
}

func New(cfg config.Config, slogLogger *slog.Logger, logger *logging.Logger) (*App, error) {
	if slogLogger == nil {
		slogLogger = slog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	store := cache.NewStore(db, map[cache.Category]time.Duration{
		cache.CategoryRoster:        cfg.CacheRosterTTL,
		cache.CategoryTransactions:  cfg.CacheTransactionsTTL,
		cache.CategoryPlayerHistory: cfg.CachePlayerHistoryTTL,
	}, logger)
	if err := store.Initialize(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	client := statsapi.NewClient(statsapi.ClientConfig{
		BaseURL:    cfg.StatsAPIBaseURL,
		TeamID:     cfg.StatsAPITeamID,
		Timeout:    cfg.StatsAPITimeout,
		MaxRetries: cfg.StatsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsAPICircuitEnabled,
			FailureThreshold: cfg.StatsAPICircuitFailureCount,
			OpenTimeout:      cfg.StatsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsAPICircuitHalfOpenMaxReq,
		},
	})

	rosterSvc := usecase.NewRosterService(client, store, logger)
	timelineSvc := usecase.NewTimelineService(rosterSvc, client, store, logger, cfg.TimelineSampleDelay)
	statusSvc := usecase.NewStatusService(rosterSvc, timelineSvc, cfg.StatsAPITeamID, cfg.AffiliateNames, logger)
	jobSvc := usecase.NewJobService(rosterSvc, store, logger)

	handler := httpapi.NewHandler(rosterSvc, timelineSvc, statusSvc, jobSvc, slogLogger)
	router := httpapi.NewRouter(handler, slogLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	sweeper, err := newCacheSweeper(cfg.CacheSweepSchedule, store, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db:      db,
		sweeper: sweeper,
		logger:  logger,
	}, nil
}

func newCacheSweeper(schedule string, store *cache.Store, logger *logging.Logger) (*cron.Cron, error) {
	sweeper := cron.New()
	_, err := sweeper.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cleared, err := store.ClearExpired(ctx)
		if err != nil {
			logger.Warn("cache sweep failed", "error", err)
			return
		}
		if cleared > 0 {
			logger.Info("cache sweep completed", "cleared", cleared)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache sweep %q: %w", schedule, err)
	}

	return sweeper, nil
}

// Start launches the background cache sweeper. The HTTP server itself is
// started by the caller so it controls failure handling.
func (a *App) Start() {
	a.sweeper.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	stopCtx := a.sweeper.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}

	err := a.Server.Shutdown(ctx)
	if closeErr := a.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
