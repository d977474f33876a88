package handler

import (
	"net/http"

	"t1d-manager-api/internal/nutrition"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// NutritionHandler handles food carbohydrate lookup requests.
type NutritionHandler struct {
	service *nutrition.Service
}

// NewNutritionHandler creates a new nutrition handler.
func NewNutritionHandler(service *nutrition.Service) *NutritionHandler {
	return &NutritionHandler{service: service}
}

// Search handles GET /api/v1/tools/nutrition?food=바나나
func (h *NutritionHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("food")
	if query == "" {
		response.Error(w, apierror.BadRequest("food query parameter is required"))
		return
	}

	food, found, err := h.service.Search(r.Context(), query)
	if err != nil {
		response.Error(w, apierror.InternalError("food lookup failed"))
		return
	}

	markdown, err := h.service.SearchMarkdown(r.Context(), query)
	if err != nil {
		response.Error(w, apierror.InternalError("food lookup failed"))
		return
	}

	response.OK(w, map[string]interface{}{
		"query":    query,
		"found":    found,
		"food":     food,
		"markdown": markdown,
	})
}

// List handles GET /api/v1/tools/nutrition/foods
func (h *NutritionHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("food list failed"))
		return
	}
	response.OK(w, foods)
}
