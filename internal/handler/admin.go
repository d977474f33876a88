package handler

import (
	"net/http"

	"t1d-manager-api/internal/cache"
	"t1d-manager-api/internal/community"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// AdminHandler handles cache administration requests.
type AdminHandler struct {
	cache *cache.Client
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(cacheClient *cache.Client) *AdminHandler {
	return &AdminHandler{cache: cacheClient}
}

// ClearSearchCache handles DELETE /api/v1/admin/cache/search. It evicts
// every cached community search result, forcing fresh provider queries.
func (h *AdminHandler) ClearSearchCache(w http.ResponseWriter, r *http.Request) {
	if !h.cache.Enabled() {
		response.Error(w, apierror.ServiceUnavailable("cache is disabled"))
		return
	}

	deleted, err := h.cache.ClearNamespace(r.Context(), community.SearchNamespace)
	if err != nil {
		response.Error(w, apierror.InternalError("cache clear failed"))
		return
	}

	response.OK(w, map[string]interface{}{
		"namespace": community.SearchNamespace,
		"deleted":   deleted,
	})
}

// CacheStats handles GET /api/v1/admin/cache
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"enabled": h.cache.Enabled(),
	})
}
