package httpapi

import (
	"net/http"
	"strings"
)

// normalizeAPIPrefix turns the configured deployment prefix into a mux-safe
// path segment: "" for root deployments, "/api" for the hosted variant.
func normalizeAPIPrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return prefix
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, apiPrefix string) {
	prefix := normalizeAPIPrefix(apiPrefix)

	mux.HandleFunc("GET "+prefix+"/health", handler.Healthz)
	mux.HandleFunc("GET "+prefix+"/healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, apiPrefix string) {
	prefix := normalizeAPIPrefix(apiPrefix)

	mux.HandleFunc("GET "+prefix+"/players", handler.ListPlayers)
	mux.HandleFunc("POST "+prefix+"/players", handler.CreatePlayer)
	mux.HandleFunc("PUT "+prefix+"/players/{playerID}/transfer", handler.TransferPlayer)
	mux.HandleFunc("PUT "+prefix+"/players/{playerID}/value", handler.UpdatePlayerValue)
	mux.HandleFunc("DELETE "+prefix+"/players/{playerID}", handler.DeletePlayer)
}
