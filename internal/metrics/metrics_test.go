package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("licenses")
	require.NoError(t, err)
	require.NotNil(t, provider)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProvider_HandlerServesExposition(t *testing.T) {
	provider, err := NewProvider("licenses")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "licenses")
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordOperation(ctx, "licenses", "license_issue", "success")
	metrics.RecordDuration(ctx, "licenses", "license_issue", 12*time.Millisecond, "success")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "licenses_operations_total")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	metrics := NewNoOpBusinessMetrics()
	ctx := context.Background()

	// Must not panic or record anything.
	metrics.RecordOperation(ctx, "licenses", "license_validate", "error")
	metrics.RecordDuration(ctx, "licenses", "license_validate", time.Second, "error")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	provider, err := NewProvider("licenses")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "licenses"))
	router.GET("/check_key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ACTIVE"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check_key?key=a&email=b", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "licenses_http_requests_total")
}
