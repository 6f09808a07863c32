package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://admin.test/"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://admin.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://admin.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://admin.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), userHeader)
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://anything.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://anything.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func rateLimitedCall(h http.Handler) func(remote, fwd string) int {
	return func(remote, fwd string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = remote
		if fwd != "" {
			req.Header.Set("X-Forwarded-For", fwd)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour, false)
	call := rateLimitedCall(rl.Middleware()(okHandler))

	require.Equal(t, http.StatusOK, call("10.0.0.1:1234", ""))
	require.Equal(t, http.StatusOK, call("10.0.0.1:5678", ""))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:9999", ""))
	require.Equal(t, http.StatusOK, call("10.0.0.2:1234", ""))
	// a forged header does not buy a fresh bucket
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1", "192.168.1.5"))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:2", "192.168.1.6, 10.0.0.1"))
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour, true)
	call := rateLimitedCall(rl.Middleware()(okHandler))

	require.Equal(t, http.StatusOK, call("10.0.0.1:1", "192.168.1.5, 10.0.0.1"))
	require.Equal(t, http.StatusOK, call("10.0.0.1:2", "192.168.1.6"))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:3", "192.168.1.5"))
	require.Equal(t, http.StatusOK, call("10.0.0.1:4", ""))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, false)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.limiter("a")
	now = now.Add(2 * time.Hour)
	rl.limiter("b")

	require.Equal(t, 1, rl.Cleanup(time.Hour))
	require.Len(t, rl.visitors, 1)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Chain(okHandler, RequestLogger(zap.New(core)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(userHeader, "jan")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/health", fields["path"])
	require.Equal(t, int64(http.StatusOK), fields["status"])
	require.Equal(t, "jan", fields["user"])
	require.Equal(t, int64(2), fields["bytes"])
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	Chain(okHandler, mw("a"), mw("b")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b"}, order)
}
