package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/stats/me", RequireAuth(verifier, http.HandlerFunc(handler.MyStats)))
	mux.Handle("POST /v1/stats/refresh", RequireAuth(verifier, http.HandlerFunc(handler.RefreshMyStats)))
	mux.Handle("GET /v1/entities/{entityID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.EntityStats)))
	mux.Handle("GET /v1/entities/{entityID}/profile", RequireAuth(verifier, http.HandlerFunc(handler.EntityProfile)))
	mux.Handle("PUT /v1/me/external-ref", RequireAuth(verifier, http.HandlerFunc(handler.LinkMyExternalRef)))
	mux.Handle("DELETE /v1/me/external-ref", RequireAuth(verifier, http.HandlerFunc(handler.UnlinkMyExternalRef)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/bulk-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBulkSyncJob)))
	mux.Handle("GET /v1/internal/jobs/bulk-sync/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.BulkSyncStatus)))
	mux.Handle("GET /v1/internal/jobs/bulk-sync/runs/{runID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetBulkSyncRun)))
	mux.Handle("POST /v1/internal/jobs/cache-warm", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCacheWarmJob)))
}
