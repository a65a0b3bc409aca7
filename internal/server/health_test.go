package server

import (
	"net/http"
	"testing"

	"shoplist/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestLivenessCheck(t *testing.T) {
	_, app := newTestServer(t, nil)

	resp := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestReadinessCheck(t *testing.T) {
	t.Run("without redis", func(t *testing.T) {
		_, app := newTestServer(t, nil)

		resp := doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var body healthBody
		resp.decode(t, &body)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "disabled", body.Checks["redis"])
		assert.Equal(t, "healthy", body.Checks["database"])
	})

	t.Run("with redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		_, app := newTestServer(t, rdb)

		resp := doJSON(t, app, http.MethodGet, "/api/", "", nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var body healthBody
		resp.decode(t, &body)
		assert.Equal(t, "healthy", body.Checks["redis"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = rdb.Close() })
		_, app := newTestServer(t, rdb)
		mr.Close()

		resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	})
}

func TestFeatureFlags(t *testing.T) {
	_, app := newTestServer(t, nil)
	token := registerUser(t, app, "alice", "pw123").AccessToken

	resp := doJSON(t, app, http.MethodGet, "/api/feature-flags", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	resp.decode(t, &body)
	assert.Equal(t, "on", body.Raw["photo_transcode"])
	assert.True(t, body.Evaluated["live_sync"])
}

func TestFeatureFlags_UnconfiguredFlagReportedOff(t *testing.T) {
	cfg := testConfig()
	cfg.FeatureFlags = "photo_transcode=on"
	s, err := NewServerWithDeps(cfg, testutil.NewSQLiteDB(t), nil)
	require.NoError(t, err)
	app := s.NewApp()
	token := registerUser(t, app, "alice", "pw123").AccessToken

	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/feature-flags", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	resp.decode(t, &body)

	assert.NotContains(t, body.Raw, "live_sync")
	require.Contains(t, body.Evaluated, "live_sync")
	assert.False(t, body.Evaluated["live_sync"])
	assert.True(t, body.Evaluated["photo_transcode"])
}
