package metrics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/store/mem"
)

func TestWrapStore(t *testing.T) {
	ctx := context.Background()
	m := New()
	impl, err := mem.New(0)
	require.NoError(t, err)
	st := m.WrapStore(impl)
	_, err = st.Put(ctx, "a", bytes.NewReader([]byte("abc")), 3, nil)
	require.NoError(t, err)
	_, err = st.Head(ctx, "missing")
	assert.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeOps.WithLabelValues("mem", "put", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeOps.WithLabelValues("mem", "head", "ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.bytes.WithLabelValues("mem", "put")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	engine.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `objdav_http_requests_total{code="200",method="GET"} 1`))
}
