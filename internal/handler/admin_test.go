package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t1d-manager-api/internal/community"
)

func TestClearSearchCache(t *testing.T) {
	client := enabledCache(t)
	ctx := context.Background()

	_, err := client.Set(ctx, community.SearchNamespace+":abc", "[]", time.Hour)
	require.NoError(t, err)
	_, err = client.Set(ctx, "other:key", "x", time.Hour)
	require.NoError(t, err)

	h := NewAdminHandler(client)
	rec := httptest.NewRecorder()
	h.ClearSearchCache(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Namespace string `json:"namespace"`
		Deleted   int    `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, community.SearchNamespace, data.Namespace)
	assert.Equal(t, 1, data.Deleted)

	_, found, err := client.Get(ctx, "other:key")
	require.NoError(t, err)
	assert.True(t, found, "other namespaces are untouched")
}

func TestClearSearchCacheDisabled(t *testing.T) {
	h := NewAdminHandler(disabledCache(t))

	rec := httptest.NewRecorder()
	h.ClearSearchCache(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache/search", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCacheStats(t *testing.T) {
	h := NewAdminHandler(disabledCache(t))

	rec := httptest.NewRecorder()
	h.CacheStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/cache", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Enabled bool `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.False(t, data.Enabled)
}
