package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/usecase"
)

type Handler struct {
	rosterService   *usecase.RosterService
	timelineService *usecase.TimelineService
	statusService   *usecase.StatusService
	jobService      *usecase.JobService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	timelineService *usecase.TimelineService,
	statusService *usecase.StatusService,
	jobService *usecase.JobService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:   rosterService,
		timelineService: timelineService,
		statusService:   statusService,
		jobService:      jobService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// dateRangeQuery is the start/end pair shared by every windowed endpoint.
type dateRangeQuery struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

func (h *Handler) parseDateRange(r *http.Request, startParam, endParam string) (time.Time, time.Time, error) {
	query := dateRangeQuery{
		Start: strings.TrimSpace(r.URL.Query().Get(startParam)),
		End:   strings.TrimSpace(r.URL.Query().Get(endParam)),
	}
	if err := h.validator.StructCtx(r.Context(), query); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s and %s must be YYYY-MM-DD dates",
			usecase.ErrInvalidInput, startParam, endParam)
	}

	start, err := roster.ParseDate(query.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid %s date", usecase.ErrInvalidInput, startParam)
	}
	end, err := roster.ParseDate(query.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid %s date", usecase.ErrInvalidInput, endParam)
	}

	return start, end, nil
}

func parsePlayerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("playerID"))
	playerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || playerID <= 0 {
		return 0, fmt.Errorf("%w: player id must be a positive integer", usecase.ErrInvalidInput)
	}
	return playerID, nil
}
