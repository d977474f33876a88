package handler

import (
	"encoding/json"
	"net/http"

	"t1d-manager-api/internal/treatment"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// TreatmentHandler handles insulin dosing tool requests.
type TreatmentHandler struct{}

// NewTreatmentHandler creates a new treatment handler.
func NewTreatmentHandler() *TreatmentHandler {
	return &TreatmentHandler{}
}

// CalculateInsulin handles POST /api/v1/tools/insulin/calculate
func (h *TreatmentHandler) CalculateInsulin(w http.ResponseWriter, r *http.Request) {
	var input treatment.BolusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	result, err := treatment.CalculateBolus(input)
	if err != nil {
		response.Error(w, apierror.ValidationError(err.Error()))
		return
	}

	response.OK(w, result)
}

// InsulinEducation handles GET /api/v1/tools/insulin/education
func (h *TreatmentHandler) InsulinEducation(w http.ResponseWriter, r *http.Request) {
	response.OK(w, treatment.InsulinEducation())
}
