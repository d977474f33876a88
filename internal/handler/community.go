package handler

import (
	"net/http"

	"t1d-manager-api/internal/community"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// CommunityHandler handles community experience search requests.
type CommunityHandler struct {
	service *community.Service
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(service *community.Service) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// Search handles GET /api/v1/tools/community/search?query=저혈당 간식
func (h *CommunityHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		response.Error(w, apierror.BadRequest("query parameter is required"))
		return
	}

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		response.Error(w, apierror.InternalError("community search failed"))
		return
	}

	markdown, err := h.service.SearchMarkdown(r.Context(), query)
	if err != nil {
		response.Error(w, apierror.InternalError("community search failed"))
		return
	}

	response.OK(w, map[string]interface{}{
		"query":    query,
		"results":  results,
		"markdown": markdown,
	})
}
