package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ParthJhaveri10/Lumeo/catalog"
	"github.com/ParthJhaveri10/Lumeo/config"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		ProxyPrefix:       "/api/proxy",
		UpstreamBaseURL:   upstreamURL,
		RequestTimeout:    2 * time.Second,
		MaxRetries:        1,
		RetryBaseDelay:    time.Millisecond,
		MinRequestSpacing: time.Nanosecond,
	}
}

func testRouter(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	cfg := testConfig(upstreamURL)
	client := catalog.FromAppConfig(cfg, nil)
	router, err := NewRouter(cfg, client)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return router
}

func assertCORSHeaders(t *testing.T, h http.Header) {
	t.Helper()
	want := map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Methods":     "GET,OPTIONS,PATCH,DELETE,POST,PUT",
		"Access-Control-Allow-Headers":     "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version",
		"Access-Control-Allow-Credentials": "true",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Fatalf("header %s: got %q want %q", k, got, v)
		}
	}
}

func TestProxyPreflightShortCircuits(t *testing.T) {
	var upstreamHits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodOptions, "/api/proxy/search/songs?query=test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "" {
		t.Fatalf("expected empty body, got %q", body)
	}
	assertCORSHeaders(t, rec.Header())
	if n := atomic.LoadInt32(&upstreamHits); n != 0 {
		t.Fatalf("preflight must not contact upstream, got %d hits", n)
	}
}

func TestProxyForwardsRequestAndRelaysResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/songs" {
			t.Errorf("unexpected upstream path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "husn" {
			t.Errorf("query not forwarded, got %q", got)
		}
		if r.URL.Query().Has("path") {
			t.Error("internal routing parameter must be stripped")
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"success":true,"data":"verbatim"}`))
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/search/songs?query=husn&path=internal", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status not relayed: got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"success":true,"data":"verbatim"}` {
		t.Fatalf("body not relayed verbatim: %q", body)
	}
	assertCORSHeaders(t, rec.Header())
}

func TestProxyFailureReturns500Envelope(t *testing.T) {
	// Grab a port that is closed by the time the proxy dials it.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := upstream.URL
	upstream.Close()

	router := testRouter(t, deadURL)

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/search?query=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "Internal server error" || resp["message"] == "" {
		t.Fatalf("unexpected error envelope: %v", resp)
	}
}

func TestProxyRelaysNonGETMethods(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method not forwarded, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"ids":["a"]}` {
			t.Errorf("body not forwarded, got %q", body)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/proxy/songs", strings.NewReader(`{"ids":["a"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
