package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpitfaxt/launchpad-indexer/internal/api/middleware"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/rest"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/dto"
	apierrors "github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/errors"
	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/mocks"
	"github.com/pumpitfaxt/launchpad-indexer/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

const tokenAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

type testHandlerMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTestRouter(t *testing.T, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) *testHandlerMocks {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), authCfg, limiter)

	return &testHandlerMocks{ctrl: ctrl, executor: exec, router: router}
}

func (m *testHandlerMocks) tearDown() {
	m.ctrl.Finish()
}

func (m *testHandlerMocks) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	m.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListTokens(t *testing.T) {
	tests := []struct {
		name   string
		target string
		page   int
		limit  int
		query  string
	}{
		{name: "defaults", target: "/tokens", page: 1, limit: 10},
		{name: "explicit", target: "/tokens?page=3&limit=25&q=doge", page: 3, limit: 25, query: "doge"},
		{name: "limit capped", target: "/tokens?limit=1000", page: 1, limit: 100},
		{name: "non-numeric falls back", target: "/tokens?page=abc&limit=-4", page: 1, limit: 10},
		{name: "zero falls back", target: "/tokens?page=0&limit=0", page: 1, limit: 10},
		{name: "query trimmed", target: "/tokens?q=%20moon%20", page: 1, limit: 10, query: "moon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestRouter(t, middleware.AuthConfig{}, nil)
			defer m.tearDown()

			m.executor.EXPECT().ListTokens(gomock.Any(), tt.page, tt.limit, tt.query).
				Return(&dto.TokenListResponse{Total: 1, Tokens: []dto.TokenSummary{{Address: tokenAddress}}}, nil)

			w := m.do(http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)

			body := decode(t, w)
			assert.Equal(t, float64(1), body["total"])
			tokens := body["tokens"].([]interface{})
			require.Len(t, tokens, 1)
			assert.NotContains(t, tokens[0], "replies")
		})
	}

	t.Run("executor failure", func(t *testing.T) {
		m := setupTestRouter(t, middleware.AuthConfig{}, nil)
		defer m.tearDown()

		m.executor.EXPECT().ListTokens(gomock.Any(), 1, 10, "").Return(nil, apierrors.NewInternalError("Failed to refresh tokens"))

		w := m.do(http.MethodGet, "/tokens", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decode(t, w)["code"])
	})
}

func TestGetToken(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "found", status: http.StatusOK},
		{name: "invalid address", err: apierrors.NewBadRequestError("Invalid address"), status: http.StatusBadRequest},
		{name: "not found", err: apierrors.NewNotFoundError("Token not found"), status: http.StatusNotFound},
		{name: "unexpected error type", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestRouter(t, middleware.AuthConfig{}, nil)
			defer m.tearDown()

			var resp *dto.TokenResponse
			if tt.err == nil {
				resp = &dto.TokenResponse{Token: &dto.Token{
					TokenSummary: dto.TokenSummary{Address: tokenAddress},
					Replies:      []string{`{"author":"a"}`},
				}}
			}
			m.executor.EXPECT().GetToken(gomock.Any(), tokenAddress).Return(resp, tt.err)

			w := m.do(http.MethodGet, "/tokens/"+tokenAddress, "")
			assert.Equal(t, tt.status, w.Code)
			if tt.err == nil {
				token := decode(t, w)["token"].(map[string]interface{})
				assert.Equal(t, tokenAddress, token["address"])
				assert.Equal(t, []interface{}{`{"author":"a"}`}, token["replies"])
			}
		})
	}
}

func TestGetTokenFeed(t *testing.T) {
	m := setupTestRouter(t, middleware.AuthConfig{}, nil)
	defer m.tearDown()

	m.executor.EXPECT().GetPriceFeed(gomock.Any(), tokenAddress).
		Return(&dto.FeedResponse{Data: []domain.PriceSample{{Value: 1.5, MktCap: 1500}}}, nil)

	w := m.do(http.MethodGet, "/tokens/"+tokenAddress+"/feed", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, 1.5, data[0].(map[string]interface{})["value"])

	m.executor.EXPECT().GetPriceFeed(gomock.Any(), tokenAddress).Return(nil, apierrors.NewNotFoundError("Token not found"))
	w = m.do(http.MethodGet, "/tokens/"+tokenAddress+"/feed", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddReply(t *testing.T) {
	t.Run("serialized reply", func(t *testing.T) {
		m := setupTestRouter(t, middleware.AuthConfig{}, nil)
		defer m.tearDown()

		m.executor.EXPECT().AddReply(gomock.Any(), tokenAddress, json.RawMessage(`"{\"author\":\"a\",\"content\":\"b\"}"`)).Return(nil)

		w := m.do(http.MethodPost, "/tokens/"+tokenAddress+"/reply", `{"reply":"{\"author\":\"a\",\"content\":\"b\"}"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Success", decode(t, w)["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		m := setupTestRouter(t, middleware.AuthConfig{}, nil)
		defer m.tearDown()

		w := m.do(http.MethodPost, "/tokens/"+tokenAddress+"/reply", `{"reply":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid reply", func(t *testing.T) {
		m := setupTestRouter(t, middleware.AuthConfig{}, nil)
		defer m.tearDown()

		m.executor.EXPECT().AddReply(gomock.Any(), tokenAddress, gomock.Any()).Return(apierrors.NewBadRequestError("Invalid reply"))

		w := m.do(http.MethodPost, "/tokens/"+tokenAddress+"/reply", `{"reply":{"author":"a"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("throttled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mocks.NewMockRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(&ratelimit.Result{Allowed: false}, nil)

		m := setupTestRouter(t, middleware.AuthConfig{}, limiter)
		defer m.tearDown()

		w := m.do(http.MethodPost, "/tokens/"+tokenAddress+"/reply", `{"reply":{"author":"a","content":"b"}}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})
}

func TestGetTokensByCreator(t *testing.T) {
	m := setupTestRouter(t, middleware.AuthConfig{}, nil)
	defer m.tearDown()

	m.executor.EXPECT().GetTokensByCreator(gomock.Any(), tokenAddress).Return(&dto.TokensResponse{Tokens: []dto.TokenSummary{}}, nil)

	w := m.do(http.MethodGet, "/tokens/by-user/"+tokenAddress, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["tokens"])
}

func TestRefreshTokens(t *testing.T) {
	for _, path := range []string{"/tokens/refresh", "/token/refresh"} {
		t.Run(path, func(t *testing.T) {
			m := setupTestRouter(t, middleware.AuthConfig{}, nil)
			defer m.tearDown()

			m.executor.EXPECT().RefreshTokens(gomock.Any()).Return(nil)
			w := m.do(http.MethodPost, path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Success", decode(t, w)["message"])

			m.executor.EXPECT().RefreshTokens(gomock.Any()).Return(apierrors.NewInternalError("Failed to refresh tokens"))
			w = m.do(http.MethodPost, path, "")
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}

	t.Run("requires credentials when auth is configured", func(t *testing.T) {
		m := setupTestRouter(t, middleware.AuthConfig{APIKeys: []string{"secret"}}, nil)
		defer m.tearDown()

		w := m.do(http.MethodPost, "/tokens/refresh", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		m.executor.EXPECT().RefreshTokens(gomock.Any()).Return(nil)
		w = m.do(http.MethodPost, "/tokens/refresh", "", "Authorization", "ApiKey secret")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	m := setupTestRouter(t, middleware.AuthConfig{}, nil)
	defer m.tearDown()

	m.executor.EXPECT().Health(gomock.Any()).Return(nil)
	w := m.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	m.executor.EXPECT().Health(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		return apierrors.NewServiceError("Database unavailable")
	})
	w = m.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
