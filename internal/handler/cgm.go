package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"t1d-manager-api/internal/cgm"
	"t1d-manager-api/pkg/apierror"
	"t1d-manager-api/pkg/response"
)

// CGMHandler handles continuous glucose monitor tool requests.
type CGMHandler struct {
	dexcom     *cgm.DexcomClient
	nightscout *cgm.NightscoutClient
}

// NewCGMHandler creates a new CGM handler.
func NewCGMHandler(dexcom *cgm.DexcomClient, nightscout *cgm.NightscoutClient) *CGMHandler {
	return &CGMHandler{dexcom: dexcom, nightscout: nightscout}
}

// DexcomAuthURL handles GET /api/v1/tools/dexcom/auth-url?state=abc
func (h *CGMHandler) DexcomAuthURL(w http.ResponseWriter, r *http.Request) {
	if !h.dexcom.Configured() {
		response.Error(w, apierror.ServiceUnavailable("Dexcom credentials are not configured"))
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = "state"
	}

	response.OK(w, map[string]interface{}{
		"authorization_url": h.dexcom.AuthorizationURL(state),
		"sandbox_users":     cgm.SandboxUsers,
	})
}

// DexcomTokenRequest is the token exchange request body. Exactly one of
// code and refresh_token must be set.
type DexcomTokenRequest struct {
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// DexcomToken handles POST /api/v1/tools/dexcom/egvs/token
func (h *CGMHandler) DexcomToken(w http.ResponseWriter, r *http.Request) {
	if !h.dexcom.Configured() {
		response.Error(w, apierror.ServiceUnavailable("Dexcom credentials are not configured"))
		return
	}

	var req DexcomTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	var (
		token *cgm.TokenResponse
		err   error
	)
	switch {
	case req.Code != "":
		token, err = h.dexcom.ExchangeCode(r.Context(), req.Code)
	case req.RefreshToken != "":
		token, err = h.dexcom.RefreshToken(r.Context(), req.RefreshToken)
	default:
		response.Error(w, apierror.ValidationError("either code or refresh_token is required"))
		return
	}
	if err != nil {
		response.Error(w, apierror.BadGateway(err.Error()))
		return
	}

	response.OK(w, token)
}

// DexcomEGVsRequest is the EGV fetch request body. Start and end default to
// the last 24 hours.
type DexcomEGVsRequest struct {
	AccessToken string `json:"access_token"`
	StartDate   string `json:"start_date,omitempty"` // ISO 8601, e.g. 2024-03-01T00:00:00
	EndDate     string `json:"end_date,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// DexcomEGVs handles POST /api/v1/tools/dexcom/egvs
func (h *CGMHandler) DexcomEGVs(w http.ResponseWriter, r *http.Request) {
	if !h.dexcom.Configured() {
		response.Error(w, apierror.ServiceUnavailable("Dexcom credentials are not configured"))
		return
	}

	var req DexcomEGVsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if req.AccessToken == "" {
		response.Error(w, apierror.ValidationError("access_token is required"))
		return
	}

	start, err := parseISOTime(req.StartDate)
	if err != nil {
		response.Error(w, apierror.ValidationError("start_date must be ISO 8601"))
		return
	}
	end, err := parseISOTime(req.EndDate)
	if err != nil {
		response.Error(w, apierror.ValidationError("end_date must be ISO 8601"))
		return
	}

	egvs, err := h.dexcom.EGVs(r.Context(), req.AccessToken, start, end)
	if err != nil {
		response.Error(w, apierror.BadGateway(err.Error()))
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	response.OK(w, map[string]interface{}{
		"records":  egvs.Records,
		"markdown": cgm.FormatEGVs(egvs, limit),
	})
}

// NightscoutSGV handles GET /api/v1/tools/nightscout/sgv?count=3
func (h *CGMHandler) NightscoutSGV(w http.ResponseWriter, r *http.Request) {
	if !h.nightscout.Configured() {
		response.Error(w, apierror.ServiceUnavailable("Nightscout URL is not configured"))
		return
	}

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, apierror.BadRequest("count must be a positive integer"))
			return
		}
		count = parsed
	}

	entries, err := h.nightscout.SGV(r.Context(), count)
	if err != nil {
		response.Error(w, apierror.BadGateway(err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"entries":  entries,
		"markdown": cgm.FormatSGV(entries),
	})
}

// parseISOTime parses an optional ISO 8601 timestamp; empty means zero.
func parseISOTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
