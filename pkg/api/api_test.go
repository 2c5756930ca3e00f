package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(bounce.New(nil), testLogger())
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "bouncy", body["service"])
	assert.Equal(t, Version, body["version"])
}

func TestBounces(t *testing.T) {
	w := do(t, newRouter(), http.MethodPost, "/api/v1/bounces", `{"height":10,"height_min":0.1,"eta":0.8}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got bouncesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 20, got.Bounces)
	assert.InDelta(t, 23.023819815842884, got.TotalTime, 1e-9)
	assert.Equal(t, bounce.Gravity, got.Gravity)
}

func TestBounces_CustomGravity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(bounce.New(&bounce.Config{Gravity: 1.62}), testLogger())

	w := do(t, r, http.MethodPost, "/api/v1/bounces", `{"height":10,"height_min":0.1,"eta":0.8}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got bouncesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 20, got.Bounces)
	assert.InDelta(t, 56.65710429193592, got.TotalTime, 1e-9)
	assert.Equal(t, 1.62, got.Gravity)
}

func TestBounces_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative height", `{"height":-5,"height_min":0.1,"eta":0.8}`, "height"},
		{"missing height", `{"height_min":0.1,"eta":0.8}`, "height"},
		{"threshold above height", `{"height":1,"height_min":2,"eta":0.8}`, "height_min"},
		{"threshold equals height", `{"height":1,"height_min":1,"eta":0.8}`, "height_min"},
		{"eta one", `{"height":1,"height_min":0.5,"eta":1}`, "eta"},
		{"eta zero", `{"height":1,"height_min":0.5,"eta":0}`, "eta"},
		{"too many passes", `{"height":1,"height_min":1e-300,"eta":0.9999999}`, "height_min"},
		{"not json", `height=10`, ""},
		{"wrong type", `{"height":"ten","height_min":0.1,"eta":0.8}`, ""},
	}
	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/bounces", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var got errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, tt.field, got.Field)
		})
	}
}

func TestTrajectory(t *testing.T) {
	w := do(t, newRouter(), http.MethodPost, "/api/v1/trajectory", `{"height":2,"height_min":0.1,"eta":0.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got trajectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Bounces)
	assert.InDelta(t, 2.950948064992445, got.TotalTime, 1e-9)
	// 5 passes: 100 × (2·5 + 1)
	require.Len(t, got.Points, 1100)
	assert.Equal(t, 2.0, got.Points[0].Height)
	assert.Equal(t, got.Points[len(got.Points)-1].Time, got.Duration)
}

func TestTrajectory_PointBudget(t *testing.T) {
	// within the pass budget but far over the sample budget
	w := do(t, newRouter(), http.MethodPost, "/api/v1/trajectory", `{"height":1,"height_min":1e-10,"eta":0.999}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, ErrTooManyPoints.Error(), got.Error)
	assert.Equal(t, "height_min", got.Field)
}

func TestMetricsRoute(t *testing.T) {
	r := newRouter()
	do(t, r, http.MethodPost, "/api/v1/bounces", `{"height":10,"height_min":0.1,"eta":0.8}`)

	w := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bouncy_simulations_total{kind="bounces"}`)
	assert.Contains(t, w.Body.String(), `bouncy_http_requests_total{code="200",method="POST",path="/api/v1/bounces"}`)
}

func TestServe_Shutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// grab a free port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, bounce.New(nil), testLogger()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
