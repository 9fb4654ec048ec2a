package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/server/handler/webdav"
	"github.com/xxxsen/objdav/server/metrics"
	"github.com/xxxsen/objdav/store/mem"
)

func newTestServer(t *testing.T, mount string) http.Handler {
	st, err := mem.New(0)
	require.NoError(t, err)
	m := metrics.New()
	svr, err := New(":0",
		WithStore(m.WrapStore(st)),
		WithUser(map[string]string{"u": "p"}),
		WithEnableWebdav(true, mount, "dav", webdav.WithStrictDelete(true)),
		WithEnableS3(true, "/s3"),
		WithEnableCors(true),
		WithMetrics(m, "/metrics"),
	)
	require.NoError(t, err)
	return svr.Handler()
}

func call(h http.Handler, method, target, body string, authed bool, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authed {
		req.SetBasicAuth("u", "p")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerWebdav(t *testing.T) {
	h := newTestServer(t, "/webdav")
	rec := call(h, http.MethodOptions, "/webdav/", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("DAV"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusUnauthorized, call(h, webdav.MethodPropfind, "/webdav/", "", false).Code)
	assert.Equal(t, http.StatusCreated, call(h, http.MethodPut, "/webdav/a.txt", "hi", true).Code)
	rec = call(h, webdav.MethodPropfind, "/webdav/", "", true, "Depth", "1")
	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	assert.Contains(t, rec.Body.String(), "/webdav/a.txt")
	assert.Equal(t, http.StatusNotFound, call(h, http.MethodDelete, "/webdav/none", "", true).Code)

	rec = call(h, http.MethodGet, "/s3/a.txt", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())

	rec = call(h, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "objdav_store_ops_total")
}

func TestServerRootMount(t *testing.T) {
	h := newTestServer(t, "/")
	assert.Equal(t, http.StatusCreated, call(h, http.MethodPut, "/x/y.txt", "v", true).Code)
	rec := call(h, http.MethodGet, "/x/y.txt", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v", rec.Body.String())
	assert.Equal(t, http.StatusMultiStatus, call(h, webdav.MethodPropfind, "/x/", "", true).Code)
	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/metrics", "", false).Code)
}

func TestServerNoStore(t *testing.T) {
	_, err := New(":0")
	assert.Error(t, err)
}
