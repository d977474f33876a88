package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t1d-manager-api/internal/cache"
	"t1d-manager-api/internal/cgm"
	"t1d-manager-api/internal/community"
	"t1d-manager-api/internal/handler"
	"t1d-manager-api/internal/middleware"
	"t1d-manager-api/internal/nutrition"
)

// newTestRouter wires the full route table with offline dependencies:
// disabled cache, unconfigured CGM clients and credential-less search.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cacheClient := cache.New(cache.Config{Addr: "127.0.0.1:1"})
	require.False(t, cacheClient.Enabled())

	nutritionService := nutrition.NewService(nutrition.NewMemoryRepository())
	communityService := community.NewService(community.NewClient("", "", "", 3), cacheClient, 0)

	return New(Config{
		Handler:          handler.New("t1d-manager-api", "1.0.0", cacheClient),
		TreatmentHandler: handler.NewTreatmentHandler(),
		SickDayHandler:   handler.NewSickDayHandler(),
		NutritionHandler: handler.NewNutritionHandler(nutritionService),
		CGMHandler:       handler.NewCGMHandler(cgm.NewDexcomClient("", "", "", true), cgm.NewNightscoutClient("", "")),
		CommunityHandler: handler.NewCommunityHandler(communityService),
		AdminHandler:     handler.NewAdminHandler(cacheClient),
		AdminMiddleware:  middleware.AdminAuth("testkey"),
	})
}

func TestRouteDispatch(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/api/status", "", http.StatusOK},
		{http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/ready", "", http.StatusOK},
		{http.MethodPost, "/api/v1/tools/insulin/calculate", `{"current_bg":180,"target_bg":120,"isf":60,"carbs":0,"icr":10}`, http.StatusOK},
		{http.MethodGet, "/api/v1/tools/insulin/education", "", http.StatusOK},
		{http.MethodPost, "/api/v1/tools/sickday/analyze", `{"symptoms":"발열"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/tools/sickday/quick-check?glucose=100", "", http.StatusOK},
		{http.MethodGet, "/api/v1/tools/nutrition?food=사과", "", http.StatusOK},
		{http.MethodGet, "/api/v1/tools/nutrition/foods", "", http.StatusOK},
		{http.MethodGet, "/api/v1/tools/community/search?query=간식", "", http.StatusOK},
		{http.MethodGet, "/api/v1/tools/dexcom/auth-url", "", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/tools/nightscout/sgv", "", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache/search", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache/search", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct key passes auth; the disabled cache then reports 503.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache/search", nil)
	req.Header.Set("X-API-Key", "testkey")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestPanicRecovery(t *testing.T) {
	mux := newTestRouter(t)
	mux.Get("/boom", func(w http.ResponseWriter, req *http.Request) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
