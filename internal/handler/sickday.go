package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"t1d-manager-api/internal/treatment/sickday"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// SickDayHandler handles sick day risk analysis tool requests.
type SickDayHandler struct{}

// NewSickDayHandler creates a new sick day handler.
func NewSickDayHandler() *SickDayHandler {
	return &SickDayHandler{}
}

// AnalyzeRequest is the sick day analysis request body. Glucose and ketone
// readings are optional.
type AnalyzeRequest struct {
	Symptoms    string   `json:"symptoms"`
	GlucoseMgdl *int     `json:"glucose_mgdl,omitempty"`
	KetoneMmol  *float64 `json:"ketone_mmol,omitempty"`
}

// Analyze handles POST /api/v1/tools/sickday/analyze
func (h *SickDayHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if req.Symptoms == "" {
		response.Error(w, apierror.ValidationError("symptoms is required"))
		return
	}

	analysis := sickday.Analyze(req.Symptoms, req.GlucoseMgdl, req.KetoneMmol)
	response.OK(w, sickday.BuildReport(analysis, req.Symptoms))
}

// QuickCheck handles GET /api/v1/tools/sickday/quick-check?glucose=120
func (h *SickDayHandler) QuickCheck(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("glucose")
	if raw == "" {
		response.Error(w, apierror.BadRequest("glucose query parameter is required"))
		return
	}

	glucose, err := strconv.Atoi(raw)
	if err != nil || glucose < 0 {
		response.Error(w, apierror.BadRequest("glucose must be a non-negative integer"))
		return
	}

	band := sickday.GlucoseRisk(glucose)
	response.OK(w, map[string]interface{}{
		"glucose_mgdl": glucose,
		"band":         band,
	})
}
