package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func testClient(baseURL string, maxRetries int) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		MaxRetries:        maxRetries,
		RetryBaseDelay:    2 * time.Millisecond,
		MinRequestSpacing: time.Nanosecond,
	})
}

func TestValidationFailsBeforeNetwork(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)

	cases := []string{
		"",
		"   ",
		strings.Repeat("a", 101),
		strings.Repeat("ह", 101),
	}
	for _, query := range cases {
		if _, err := c.SearchSongs(context.Background(), query, 0, 0); !IsValidation(err) {
			t.Fatalf("query %q: expected validation error, got %v", query, err)
		}
	}
	if n := atomic.LoadInt32(&attempts); n != 0 {
		t.Fatalf("expected no network attempts, got %d", n)
	}
}

func TestTrimmedQueryAtLimitIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); utf8.RuneCountInString(got) != 100 {
			t.Errorf("expected trimmed 100-char query, got %d chars", utf8.RuneCountInString(got))
		}
		w.Write([]byte(`{"success":true,"data":{"total":0,"start":0,"results":[]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	for _, query := range []string{
		"  " + strings.Repeat("a", 100) + "  ",
		// 100 characters but 300 bytes: the limit counts characters.
		"  " + strings.Repeat("ह", 100) + "  ",
	} {
		if _, err := c.SearchSongs(context.Background(), query, 0, 0); err != nil {
			t.Fatalf("query %q: unexpected error: %v", query, err)
		}
	}
}

func TestMultiByteQueryUnderLimitIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"total":0,"start":0,"results":[]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	// 40 characters, 120 bytes.
	if _, err := c.SearchSongs(context.Background(), strings.Repeat("ह", 40), 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"no such song"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 3)
	_, err := c.GetSongs(context.Background(), SongParams{IDs: []string{"x"}})
	if !IsAPIResponse(err) {
		t.Fatalf("expected api response error, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %v", err)
	}
	if ce.Message != "no such song" {
		t.Fatalf("expected upstream message, got %q", ce.Message)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Fatalf("expected exactly 1 attempt for 4xx, got %d", n)
	}
}

func TestRateLimitIsNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 3)
	_, err := c.SearchAll(context.Background(), "test")
	if !IsRateLimit(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Fatalf("expected exactly 1 attempt for 429, got %d", n)
	}
}

func TestServerErrorRetriesUpToCap(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	maxRetries := 2
	c := testClient(srv.URL, maxRetries)
	_, err := c.SearchAll(context.Background(), "test")
	if !IsAPIResponse(err) {
		t.Fatalf("expected api response error, got %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != int32(maxRetries+1) {
		t.Fatalf("expected %d attempts, got %d", maxRetries+1, n)
	}
}

func TestConnectionFailureRetriesUpToCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := testClient(url, 2)
	start := time.Now()
	_, err := c.SearchAll(context.Background(), "test")
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	// Two retries with base delay 2ms: at least 2ms+4ms of backoff.
	if elapsed := time.Since(start); elapsed < 6*time.Millisecond {
		t.Fatalf("expected backoff between attempts, finished in %s", elapsed)
	}
}

func TestMalformedBodyIsRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.Write([]byte("<html>not json</html>"))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"total":1,"start":1,"results":[{"id":"s1","name":"Song"}]}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 3)
	page, err := c.SearchSongs(context.Background(), "test", 0, 0)
	if err != nil {
		t.Fatalf("expected recovery after malformed bodies, got %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != "s1" {
		t.Fatalf("unexpected result: %+v", page)
	}
	if n := atomic.LoadInt32(&attempts); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestEmptyBodyIsRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 1)
	_, err := c.SearchAll(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for empty bodies")
	}
	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestBackoffSchedule(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example", RetryBaseDelay: time.Second})
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
	for i, expected := range want {
		if got := c.backoffDelay(i + 1); got != expected {
			t.Fatalf("retry %d: expected %s got %s", i+1, expected, got)
		}
	}
}

func TestRequestSpacingIsEnforced(t *testing.T) {
	var (
		mu    sync.Mutex
		times []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		mu.Unlock()
		w.Write([]byte(`{"success":true,"data":{"total":0,"start":0,"results":[]}}`))
	}))
	defer srv.Close()

	spacing := 40 * time.Millisecond
	c := NewClient(Config{
		BaseURL:           srv.URL,
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		RetryBaseDelay:    time.Millisecond,
		MinRequestSpacing: spacing,
	})

	for i := 0; i < 3; i++ {
		if _, err := c.SearchSongs(context.Background(), "test", 0, 0); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	if len(times) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(times))
	}
	for i := 1; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap < spacing-10*time.Millisecond {
			t.Fatalf("requests %d and %d only %s apart, want ~%s", i-1, i, gap, spacing)
		}
	}
}

func TestThrottleCanceled(t *testing.T) {
	c := NewClient(Config{
		BaseURL:           "http://example",
		MinRequestSpacing: time.Hour,
	})
	// First call claims the slot.
	c.mu.Lock()
	c.lastRequest = time.Now()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.SearchAll(ctx, "test")
	if !IsNetwork(err) {
		t.Fatalf("expected network error on canceled throttle wait, got %v", err)
	}
}

func TestEnvelopeFailureIsRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Write([]byte(`{"success":false,"data":null}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 1)
	_, err := c.SearchAll(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for unsuccessful envelope")
	}
	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}
