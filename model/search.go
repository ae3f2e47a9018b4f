package model

import "encoding/json"

// Envelope is the upstream response wrapper. Data stays raw so the
// client can decode it into the operation's result type.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// APIError is the error body the upstream returns on failures, when
// it returns one at all.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Page is one page of typed search results.
type Page[T any] struct {
	Total   int `json:"total"`
	Start   int `json:"start"`
	Results []T `json:"results"`
}

// Section is one block of the global search response.
type Section[T any] struct {
	Results  []T `json:"results"`
	Position int `json:"position"`
}

// GlobalResult is a lightweight entry in the global search response.
// The upstream flattens all entity kinds into one shape here; the
// Type field says which kind an entry is.
type GlobalResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Image       []Quality `json:"image"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Album       string    `json:"album,omitempty"`
	Artist      string    `json:"artist,omitempty"`
	Singer      string    `json:"singer,omitempty"`
	Language    string    `json:"language,omitempty"`
	Year        string    `json:"year,omitempty"`
}

// GlobalSearchResults is the response of the untyped search endpoint.
type GlobalSearchResults struct {
	TopQuery  Section[GlobalResult] `json:"topQuery"`
	Songs     Section[GlobalResult] `json:"songs"`
	Albums    Section[GlobalResult] `json:"albums"`
	Artists   Section[GlobalResult] `json:"artists"`
	Playlists Section[GlobalResult] `json:"playlists"`
}
