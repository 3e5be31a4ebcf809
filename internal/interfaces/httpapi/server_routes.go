package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/roster", handler.GetRoster)
	mux.HandleFunc("GET /v1/roster/compare", handler.CompareRosters)
	mux.HandleFunc("GET /v1/roster/timeline", handler.GetChangesTimeline)
	mux.HandleFunc("GET /v1/roster/transactions", handler.GetDetailedTimeline)
	mux.HandleFunc("GET /v1/transactions", handler.ListTeamTransactions)
	mux.HandleFunc("GET /v1/players/status", handler.GetPlayerStatusBoard)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayerDetails)
	mux.HandleFunc("GET /v1/players/{playerID}/transactions", handler.ListPlayerTransactions)
	mux.HandleFunc("GET /v1/players/{playerID}/history", handler.GetPlayerHistory)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/cache-sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCacheSweepJob)))
	mux.Handle("POST /v1/internal/jobs/cache-clear", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCacheClearJob)))
	mux.Handle("POST /v1/internal/jobs/warm-roster", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmRosterJob)))
}
