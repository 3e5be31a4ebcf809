package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

const (
	defaultWarmupWorkers = 4
	maxWarmupDays        = 120
)

type WarmupInput struct {
	Start      time.Time
	End        time.Time
	MaxWorkers int
}

type WarmupResult struct {
	DateCount    int              `json:"date_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Dates        []WarmupDateItem `json:"dates"`
}

type WarmupDateItem struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"
)

// JobService backs the internal maintenance endpoints and the scheduled
// cache sweep.
type JobService struct {
	rosters *RosterService
	store   *cache.Store
	logger  *logging.Logger
}

func NewJobService(rosters *RosterService, store *cache.Store, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}

	return &JobService{
		rosters: rosters,
		store:   store,
		logger:  logger,
	}
}

// SweepCache removes expired entries and reports how many were dropped.
func (s *JobService) SweepCache(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "JobService.SweepCache")
	defer span.End()

	cleared, err := s.store.ClearExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "cache sweep completed", "cleared", cleared)
	return cleared, nil
}

// ClearCache wipes the cache unconditionally.
func (s *JobService) ClearCache(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "JobService.ClearCache")
	defer span.End()

	cleared, err := s.store.ClearAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "cache cleared", "cleared", cleared)
	return cleared, nil
}

// WarmRoster pre-populates the roster cache for every day in the window
// using a bounded worker pool. Individual date failures are recorded, not
// fatal.
func (s *JobService) WarmRoster(ctx context.Context, input WarmupInput) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "JobService.WarmRoster")
	defer span.End()

	start, end := roster.Day(input.Start), roster.Day(input.End)
	if start.IsZero() || end.IsZero() {
		return WarmupResult{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if start.After(end) {
		return WarmupResult{}, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidInput, roster.FormatDate(start), roster.FormatDate(end))
	}

	dates := make([]time.Time, 0, 32)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dates = append(dates, date)
	}
	if len(dates) > maxWarmupDays {
		return WarmupResult{}, fmt.Errorf("%w: warmup window exceeds %d days", ErrInvalidInput, maxWarmupDays)
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 {
		workerCount = defaultWarmupWorkers
	}
	if workerCount > len(dates) {
		workerCount = len(dates)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmupDateItem, len(dates))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, date := range dates {
		date := date
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			begin := time.Now()
			item := WarmupDateItem{Date: roster.FormatDate(date)}

			if _, fetchErr := s.rosters.RosterForDate(ctx, date); fetchErr != nil {
				item.Status = warmupStatusFailed
				item.Message = fetchErr.Error()
				failedCount.Add(1)
			} else {
				item.Status = warmupStatusSuccess
				successCount.Add(1)
			}
			item.DurationMs = time.Since(begin).Milliseconds()

			results <- item
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit warmup task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := WarmupResult{
		DateCount:   len(dates),
		WorkerCount: workerCount,
		Dates:       make([]WarmupDateItem, 0, len(dates)),
	}
	for item := range results {
		result.Dates = append(result.Dates, item)
	}
	sort.SliceStable(result.Dates, func(i, j int) bool {
		return result.Dates[i].Date < result.Dates[j].Date
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "roster warmup completed",
		"dates", result.DateCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount)

	return result, nil
}
