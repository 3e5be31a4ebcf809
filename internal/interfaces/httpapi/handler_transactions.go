package httpapi

import (
	"net/http"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
)

func (h *Handler) ListTeamTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamTransactions")
	defer span.End()

	start, end, err := h.parseDateRange(r, "start", "end")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transactions, err := h.timelineService.TeamTransactions(ctx, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "list team transactions failed",
			"start", roster.FormatDate(start), "end", roster.FormatDate(end), "error", err)
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
