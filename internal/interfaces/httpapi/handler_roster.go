package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/usecase"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: date query parameter is required", usecase.ErrInvalidInput))
		return
	}
	date, err := roster.ParseDate(raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must be a YYYY-MM-DD date", usecase.ErrInvalidInput))
		return
	}

	snapshot, err := h.rosterService.RosterForDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "date", raw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newRosterDTO(snapshot))
}

func (h *Handler) CompareRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareRosters")
	defer span.End()

	from, to, err := h.parseDateRange(r, "from", "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.rosterService.CompareRosters(ctx, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "compare rosters failed",
			"from", roster.FormatDate(from), "to", roster.FormatDate(to), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newComparisonDTO(comparison))
}

func (h *Handler) GetChangesTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChangesTimeline")
	defer span.End()

	start, end, err := h.parseDateRange(r, "start", "end")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparisons, err := h.timelineService.ChangesTimeline(ctx, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "changes timeline failed",
			"start", roster.FormatDate(start), "end", roster.FormatDate(end), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]comparisonDTO, 0, len(comparisons))
	for _, comparison := range comparisons {
		items = append(items, newComparisonDTO(comparison))
	}

	writeSuccess(ctx, w, http.StatusOK, changesTimelineDTO{
		Comparisons: items,
		DateRange: dateRangeDTO{
			Start: roster.FormatDate(start),
			End:   roster.FormatDate(end),
		},
		Count: len(items),
	})
}

func (h *Handler) GetDetailedTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDetailedTimeline")
	defer span.End()

	start, end, err := h.parseDateRange(r, "start", "end")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	timeline, err := h.timelineService.TransactionHistory(ctx, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "detailed timeline failed",
			"start", roster.FormatDate(start), "end", roster.FormatDate(end), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newDetailedTimelineDTO(timeline))
}
