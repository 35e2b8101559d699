package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpitfaxt/launchpad-indexer/internal/api/middleware"
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

func newRSAKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return key, string(pub)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/tokens/refresh", handlers...)
	return router
}

func serve(router *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tokens/refresh", nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	key, pub := newRSAKey(t)
	otherKey, _ := newRSAKey(t)
	cfg := middleware.AuthConfig{JWTPublicKey: pub, APIKeys: []string{"secret"}}

	valid := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	foreign := signToken(t, otherKey, jwt.RegisteredClaims{})
	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		authType string
		subject  string
		wantErr  bool
	}{
		{name: "valid jwt", header: "Bearer " + valid, authType: middleware.AUTH_TYPE_JWT, subject: "ops"},
		{name: "valid api key", header: "ApiKey secret", authType: middleware.AUTH_TYPE_APIKEY},
		{name: "api key scheme is case-insensitive", header: "apikey secret", authType: middleware.AUTH_TYPE_APIKEY},
		{name: "missing header", header: "", wantErr: true},
		{name: "no credentials", header: "Bearer", wantErr: true},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "wrong api key", header: "ApiKey nope", wantErr: true},
		{name: "expired jwt", header: "Bearer " + expired, wantErr: true},
		{name: "jwt signed by another key", header: "Bearer " + foreign, wantErr: true},
		{name: "hmac jwt", header: "Bearer " + hmac, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := middleware.Authenticate(tt.header, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.authType, result.AuthType)
			assert.Equal(t, tt.subject, result.AuthSubject)
		})
	}
}

func TestAuth(t *testing.T) {
	t.Run("disabled lets everything through", func(t *testing.T) {
		w := serve(newRouter(middleware.Auth(middleware.AuthConfig{})), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		w := serve(newRouter(middleware.Auth(middleware.AuthConfig{APIKeys: []string{"secret"}})), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("accepts api key", func(t *testing.T) {
		router := newRouter(middleware.Auth(middleware.AuthConfig{APIKeys: []string{"secret"}}), func(c *gin.Context) {
			assert.Equal(t, middleware.AUTH_TYPE_APIKEY, c.GetString(middleware.AUTH_TYPE_KEY))
			c.Next()
		})
		w := serve(router, http.Header{"Authorization": []string{"ApiKey secret"}})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := newRouter(middleware.RequestID(), func(c *gin.Context) {
		assert.Equal(t, c.Writer.Header().Get(middleware.REQUEST_ID_HEADER), c.GetString(middleware.REQUEST_ID_KEY))
		c.Next()
	})

	t.Run("propagates caller id", func(t *testing.T) {
		w := serve(router, http.Header{middleware.REQUEST_ID_HEADER: []string{"req-1"}})
		assert.Equal(t, "req-1", w.Header().Get(middleware.REQUEST_ID_HEADER))
	})

	t.Run("assigns an id", func(t *testing.T) {
		w := serve(router, nil)
		assert.Len(t, w.Header().Get(middleware.REQUEST_ID_HEADER), 36)
	})
}

func TestRecovery(t *testing.T) {
	router := newRouter(middleware.Recovery(), func(c *gin.Context) {
		panic("boom")
	})

	w := serve(router, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}

func TestRateLimit(t *testing.T) {
	t.Run("nil limiter is a no-op", func(t *testing.T) {
		w := serve(newRouter(middleware.RateLimit(nil, "refresh")), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name       string
		result     *ratelimit.Result
		err        error
		status     int
		retryAfter string
	}{
		{name: "allowed", result: &ratelimit.Result{Allowed: true, Remaining: 4}, status: http.StatusOK},
		{name: "throttled", result: &ratelimit.Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}, status: http.StatusTooManyRequests, retryAfter: "2"},
		{name: "throttled rounds up to one second", result: &ratelimit.Result{Allowed: false, RetryAfter: time.Millisecond}, status: http.StatusTooManyRequests, retryAfter: "1"},
		{name: "limiter error fails open", err: errors.New("redis down"), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			limiter := mocks.NewMockRateLimiter(ctrl)
			limiter.EXPECT().Allow(gomock.Any(), "refresh:192.0.2.1").Return(tt.result, tt.err)

			w := serve(newRouter(middleware.RateLimit(limiter, "refresh")), nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.retryAfter, w.Header().Get("Retry-After"))
		})
	}
}
