package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/usecase"
)

const maxJobBodyBytes = 1 << 20

type warmRosterRequest struct {
	Start      string `json:"start" validate:"required,datetime=2006-01-02"`
	End        string `json:"end" validate:"required,datetime=2006-01-02"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,min=1,max=16"`
}

func (h *Handler) RunCacheSweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCacheSweepJob")
	defer span.End()

	cleared, err := h.jobService.SweepCache(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "cache sweep job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"cleared": cleared})
}

func (h *Handler) RunCacheClearJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCacheClearJob")
	defer span.End()

	cleared, err := h.jobService.ClearCache(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "cache clear job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"cleared": cleared})
}

func (h *Handler) RunWarmRosterJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmRosterJob")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxJobBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}

	var req warmRosterRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: request body must be JSON", usecase.ErrInvalidInput))
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: start and end must be YYYY-MM-DD dates", usecase.ErrInvalidInput))
		return
	}

	start, err := roster.ParseDate(req.Start)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid start date", usecase.ErrInvalidInput))
		return
	}
	end, err := roster.ParseDate(req.End)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid end date", usecase.ErrInvalidInput))
		return
	}

	result, err := h.jobService.WarmRoster(ctx, usecase.WarmupInput{
		Start:      start,
		End:        end,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warm roster job failed",
			"start", req.Start, "end", req.End, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
