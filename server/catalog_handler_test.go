package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCatalogSearchSongs(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/songs" {
			t.Errorf("unexpected upstream path %q", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"total":1,"start":1,"results":[{"id":"s1","name":"Husn"}]}}`))
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/search/songs?query=husn", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Total   int `json:"total"`
			Results []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Data.Results) != 1 || resp.Data.Results[0].Name != "Husn" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCatalogValidationReturns400(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach upstream")
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	long := strings.Repeat("a", 101)
	req := httptest.NewRequest(http.MethodGet, "/api/search/songs?query="+long, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("unexpected error envelope: %+v", resp)
	}
}

func TestCatalogNotFoundStatusPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"album not found"}`))
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/albums?id=missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Nothing was found for that request." {
		t.Fatalf("unexpected user message: %q", resp.Error)
	}
}

func TestCatalogArtistRouteUsesPathID(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"id":"459880","name":"Anuv Jain"}}`))
	}))
	defer upstream.Close()

	router := testRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/artists/459880", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPath != "/artists/459880" {
		t.Fatalf("expected upstream path /artists/459880, got %q", gotPath)
	}
}
