package middleware_test

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"rapih/internal/platform/logger"
	"rapih/internal/platform/net/middleware"
	"rapih/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var logBuf bytes.Buffer

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &logBuf})
	os.Exit(m.Run())
}

func chain(h http.Handler, mws ...middleware.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestAccessLog_PassThrough(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "hi")
			_, _ = io.WriteString(w, "there")
		}),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))
	if rec.Code != http.StatusCreated || rec.Body.String() != "hithere" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAccessLog_CarriesRequestID(t *testing.T) {
	logBuf.Reset()
	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
		w.WriteHeader(204)
	}), middleware.RequestID(), middleware.AccessLog(middleware.AccessLogOptions{}))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Fatalf("request id = %q", seen)
	}
	testkit.MustContain(t, logBuf.String(), `"request_id":"abc-123"`)
	testkit.MustContain(t, logBuf.String(), `"status":204`)
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), middleware.RequestID(), middleware.RecoverJSON)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "r-1")
	rec := httptest.NewRecorder()
	testkit.MustNotPanic(t, func() { h.ServeHTTP(rec, req) })

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "r-1" {
		t.Fatalf("request id header missing")
	}
	var body struct {
		Status    string `json:"status"`
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RequestID != "r-1" || body.Error != "internal error" {
		t.Fatalf("body = %+v", body)
	}
}

func TestRecoverJSON_AbortHandler(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	testkit.MustPanic(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(flate.DefaultCompression)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat("a", 4<<10))
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("content encoding = %q", rec.Header().Get("Content-Encoding"))
	}
}

func TestCORS_Defaults(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://example.com"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }),
	)
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "POST" {
		t.Fatalf("allow methods = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	mws := middleware.Defaults(time.Second)
	if len(mws) != 6 {
		t.Fatalf("len = %d", len(mws))
	}
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }), mws...)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 200 || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("got %d %v", rec.Code, rec.Header())
	}
	if middleware.Heartbeat("/ping") == nil || middleware.Throttle(1, 1, time.Second) == nil ||
		middleware.Timeout(time.Second) == nil || middleware.StripSlashes() == nil {
		t.Fatalf("nil wrapper")
	}
}
