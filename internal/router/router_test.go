package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/sahakari-backend/internal/handlers"
	"github.com/GregMSThompson/sahakari-backend/internal/metrics"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
	"github.com/GregMSThompson/sahakari-backend/internal/upload"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

func testRouter(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()
	log := logger.New("", logger.NewTestHandler)
	rh := response.New(log)
	denied := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	policy := upload.Policy{MaxBytes: 1 << 20, AllowedTypes: []string{"image/png"}}
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: rh,
		Staff:           denied,
		Admin:           denied,
		Images:          upload.NewMiddleware(policy, rh.HandleError),
		Documents:       upload.NewMiddleware(policy, rh.HandleError),
	}
	m := metrics.New()
	return NewRouter(deps, m, []string{"https://sahakari.example"}), m
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rr.Header().Get("Content-Type"))
}

func TestStaffRoutesGuarded(t *testing.T) {
	r, _ := testRouter(t)
	for _, path := range []string{"/api/account-applications", "/api/notices", "/api/users", "/api/products"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/translate", nil)
	req.Header.Set("Origin", "https://sahakari.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://sahakari.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	r, _ := testRouter(t)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `sahakari_http_requests_total{method="GET",route="/health",status="200"} 1`), body)
}
