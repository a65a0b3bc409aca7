package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shoplist/internal/config"
	"shoplist/internal/models"
	"shoplist/internal/repository"
	"shoplist/internal/seed"
	"shoplist/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const opaqueUnauthorized = `{"error":"Not authenticated","code":"UNAUTHORIZED"}`

func testConfig() *config.Config {
	return &config.Config{
		Env:              "test",
		Port:             "0",
		JWTSecret:        "server-test-secret-at-least-32-chars!",
		BcryptCost:       bcrypt.MinCost,
		FeatureFlags:     "photo_transcode=on,live_sync=on",
		PhotoMaxUploadMB: 1,
		AllowedOrigins:   "http://localhost:5173",
	}
}

func newTestServer(t *testing.T, rdb *redis.Client) (*Server, *fiber.App) {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	require.NoError(t, seed.Categories(context.Background(), repository.NewCategoryRepository(db, nil)))

	s, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return s, s.NewApp()
}

type testResponse struct {
	Status int
	Body   []byte
}

func (r testResponse) decode(t *testing.T, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, dest), "body: %s", r.Body)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) testResponse {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{Status: resp.StatusCode, Body: raw}
}

func registerUser(t *testing.T, app *fiber.App, username, password string) models.AuthResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	var out models.AuthResponse
	resp.decode(t, &out)
	return out
}

func newRawRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
