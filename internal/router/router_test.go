package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eatwise/internal/assistant"
	"eatwise/internal/auth"
	"eatwise/internal/config"
	"eatwise/internal/handler"
	"eatwise/internal/llm"
	"eatwise/internal/ocr"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOCR struct{}

func (stubOCR) Name() string { return "stub" }

func (stubOCR) Recognize(context.Context, ocr.Input) (ocr.Result, error) {
	return ocr.Result{}, errors.New("no ocr in router tests")
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("database is locked") }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:    config.ServerConfig{Port: 5000, MaxUploadBytes: config.DefaultMaxUploadBytes},
		Auth:      config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, InviteCode: "letmein"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100, TTL: time.Minute},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, db Pinger) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "eatwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	if db == nil {
		db = store
	}

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	require.NoError(t, err)
	svc := assistant.New(llm.Unavailable{}, stubOCR{}, store, []string{"eng"}, zap.NewNop())
	h := handler.New(store, issuer, svc, nil, cfg.Server.MaxUploadBytes)

	return New(Deps{Config: cfg, Handler: h, Issuer: issuer, DB: db, Logger: zap.NewNop()}), issuer
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(t), nil)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())

	r, _ = newTestRouter(t, testConfig(t), downDB{})
	w = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSignupNeedsInviteCode(t *testing.T) {
	r, issuer := newTestRouter(t, testConfig(t), nil)
	body := `{"email":"ana@example.com","password":"secret123"}`

	w := serve(r, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("X-Invite-Code", "letmein")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, err := issuer.Validate(resp.Token)
	assert.NoError(t, err)
}

func TestProtectedGroup(t *testing.T) {
	r, issuer := newTestRouter(t, testConfig(t), nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/tracker", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := issuer.Issue("ana@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/tracker", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/discover/facts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAskAIWithoutKeyServesDemoReply(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(t), nil)
	w := serve(r, httptest.NewRequest(http.MethodPost, "/ask-ai", strings.NewReader(`{"message":"hi"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.ReplyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, assistant.DemoReply, resp.Reply)
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, TTL: time.Minute}
	r, _ := newTestRouter(t, cfg, nil)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/ask-ai", strings.NewReader(`{"message":"hi"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, httptest.NewRequest(http.MethodPost, "/ask-ai", strings.NewReader(`{"message":"hi"}`)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`)))
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(t), nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "authorization")
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(t), nil)
	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eatwise_http_requests_total")
}

func TestSwaggerOnlyWhenEnabled(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(t), nil)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	cfg := testConfig(t)
	cfg.Docs.Enabled = true
	r, _ = newTestRouter(t, cfg, nil)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>EatWise</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := testConfig(t)
	cfg.Server.StaticDir = dir
	r, _ := newTestRouter(t, cfg, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/tracker", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("EatWise")))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
}
