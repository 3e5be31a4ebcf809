package httpapi

import (
	"net/http"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
)

func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDetails")
	defer span.End()

	playerID, err := parsePlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.rosterService.PlayerDetails(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player details failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, details)
}

func (h *Handler) ListPlayerTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerTransactions")
	defer span.End()

	playerID, err := parsePlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	start, end, err := h.parseDateRange(r, "start", "end")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transactions, err := h.timelineService.PlayerTransactions(ctx, playerID, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "list player transactions failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transactionListDTO{
		Transactions: transactions,
		DateRange: dateRangeDTO{
			Start: roster.FormatDate(start),
			End:   roster.FormatDate(end),
		},
		Count: len(transactions),
	})
}

func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistory")
	defer span.End()

	playerID, err := parsePlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	start, end, err := h.parseDateRange(r, "start", "end")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.timelineService.PlayerHistory(ctx, playerID, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newDetailedTimelineDTO(history))
}

func (h *Handler) GetPlayerStatusBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStatusBoard")
	defer span.End()

	board, err := h.statusService.Board(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "player status board failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}
