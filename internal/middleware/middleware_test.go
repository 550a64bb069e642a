package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paybyrd-bridge/internal/auth"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func TestAdminAuth(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := utils.GetAdminFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "ops@shop", subject)
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminAuth(testSecret)(okHandler)

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/refund", nil)
		w := httptest.NewRecorder()

		AdminAuth(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/refund", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		AdminAuth(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := auth.GenerateAdminJWT(testSecret, "ops@shop", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/refund", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := auth.GenerateAdminJWT(testSecret, "ops@shop", -time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/refund", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		AdminAuth(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Non-admin role", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.AdminClaims{
			Role: "customer",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/admin/orders/1/refund", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()

		AdminAuth(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier blocks after burst", func(t *testing.T) {
		rl := NewRateLimiter()
		handler := rl.Middleware(next)

		var codes []int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
	})

	t.Run("Tiers use separate buckets", func(t *testing.T) {
		rl := NewRateLimiter()
		handler := rl.Middleware(next)

		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cleanup drops idle visitors", func(t *testing.T) {
		rl := NewRateLimiter()
		now := time.Now()
		rl.now = func() time.Time { return now }

		rl.getVisitor("ip:1:general", limitGeneral, burstGeneral)
		assert.Len(t, rl.visitors, 1)

		now = now.Add(visitorTTL + time.Second)
		rl.Cleanup()

		assert.Empty(t, rl.visitors)
	})
}

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		path string
		tier string
	}{
		{"/webhook", "webhook"},
		{"/admin/orders/1/refund", "strict"},
		{"/payment/return", "general"},
		{"/checkout/10", "general"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		_, _, tier := resolveRateTier(req)
		assert.Equal(t, tt.tier, tier, tt.path)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := logger.ReplaceForTest(zap.New(core))
	defer restore()

	handler := logger.RequestIDMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/payment/return", nil)
	req.Header.Set(logger.RequestIDHeader, "rid-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logs := observed.FilterMessage("http request").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/payment/return", fields["path"])
	assert.Equal(t, "rid-1", fields["request_id"])
}

func TestLoggingMiddlewareLevels(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	restore := logger.ReplaceForTest(zap.New(core))
	defer restore()

	tests := []struct {
		name   string
		path   string
		status int
		level  zapcore.Level
	}{
		{"ok", "/webhook", http.StatusOK, zapcore.InfoLevel},
		{"unauthorized", "/webhook", http.StatusUnauthorized, zapcore.WarnLevel},
		{"upstream failure", "/admin/orders/1/refund", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, nil))

			logs := observed.TakeAll()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.level, logs[0].Level)
			assert.Equal(t, int64(4), logs[0].ContextMap()["bytes"])
		})
	}

	t.Run("redirect target is logged", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/cart", http.StatusFound)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/payment/return?id=abc", nil))

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "/cart", logs[0].ContextMap()["redirect"])
	})

	t.Run("health checks are not logged", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, observed.TakeAll())
	})
}
