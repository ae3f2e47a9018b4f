package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ParthJhaveri10/Lumeo/catalog"
	"github.com/ParthJhaveri10/Lumeo/logger"
)

// CatalogHandler exposes the catalog client as thin JSON endpoints
// using the same {success, data} envelope the upstream speaks.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates a handler backed by the given client.
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(successResponse{Success: true, Data: data})
}

// writeError maps a classified catalog error onto an HTTP status and
// the user-facing envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ce *catalog.Error
	if errors.As(err, &ce) {
		switch ce.Kind {
		case catalog.KindValidation:
			status = http.StatusBadRequest
		case catalog.KindNetwork:
			status = http.StatusBadGateway
		case catalog.KindRateLimit:
			status = http.StatusTooManyRequests
		case catalog.KindAPIResponse:
			if ce.StatusCode != 0 {
				status = ce.StatusCode
			}
		}
	}
	logger.Warn("catalog endpoint failed",
		logger.Int("status", status),
		logger.ErrorField(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: catalog.UserMessage(err)})
}

func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// HandleSearch serves GET /api/search?query=
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SearchAll(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// HandleSearchSongs serves GET /api/search/songs?query=&page=&limit=
func (h *CatalogHandler) HandleSearchSongs(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SearchSongs(r.Context(), r.URL.Query().Get("query"), intParam(r, "page"), intParam(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// HandleSearchAlbums serves GET /api/search/albums?query=&page=&limit=
func (h *CatalogHandler) HandleSearchAlbums(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SearchAlbums(r.Context(), r.URL.Query().Get("query"), intParam(r, "page"), intParam(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// HandleSearchArtists serves GET /api/search/artists?query=&page=&limit=
func (h *CatalogHandler) HandleSearchArtists(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SearchArtists(r.Context(), r.URL.Query().Get("query"), intParam(r, "page"), intParam(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// HandleSearchPlaylists serves GET /api/search/playlists?query=&page=&limit=
func (h *CatalogHandler) HandleSearchPlaylists(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SearchPlaylists(r.Context(), r.URL.Query().Get("query"), intParam(r, "page"), intParam(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// HandleGetSongs serves GET /api/songs?ids=|link=
func (h *CatalogHandler) HandleGetSongs(w http.ResponseWriter, r *http.Request) {
	params := catalog.SongParams{Link: r.URL.Query().Get("link")}
	if ids := r.URL.Query().Get("ids"); ids != "" {
		params.IDs = strings.Split(ids, ",")
	}
	tracks, err := h.client.GetSongs(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tracks)
}

// HandleGetSong serves GET /api/songs/{id}
func (h *CatalogHandler) HandleGetSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tracks, err := h.client.GetSongs(r.Context(), catalog.SongParams{IDs: []string{id}})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tracks)
}

// HandleSongSuggestions serves GET /api/songs/{id}/suggestions?limit=
func (h *CatalogHandler) HandleSongSuggestions(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.client.GetSongSuggestions(r.Context(), mux.Vars(r)["id"], intParam(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tracks)
}

// HandleGetAlbum serves GET /api/albums?id=|link=
func (h *CatalogHandler) HandleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := h.client.GetAlbum(r.Context(), catalog.AlbumParams{
		ID:   r.URL.Query().Get("id"),
		Link: r.URL.Query().Get("link"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, album)
}

func artistParamsFromQuery(r *http.Request) catalog.ArtistParams {
	return catalog.ArtistParams{
		Page:       intParam(r, "page"),
		SongCount:  intParam(r, "songCount"),
		AlbumCount: intParam(r, "albumCount"),
		SortBy:     r.URL.Query().Get("sortBy"),
		SortOrder:  r.URL.Query().Get("sortOrder"),
	}
}

// HandleGetArtist serves GET /api/artists?id=|link=
func (h *CatalogHandler) HandleGetArtist(w http.ResponseWriter, r *http.Request) {
	params := artistParamsFromQuery(r)
	params.ID = r.URL.Query().Get("id")
	params.Link = r.URL.Query().Get("link")
	artist, err := h.client.GetArtist(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, artist)
}

// HandleGetArtistByID serves GET /api/artists/{id}
func (h *CatalogHandler) HandleGetArtistByID(w http.ResponseWriter, r *http.Request) {
	artist, err := h.client.GetArtistByID(r.Context(), mux.Vars(r)["id"], artistParamsFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, artist)
}

// HandleArtistSongs serves GET /api/artists/{id}/songs?page=&sortBy=&sortOrder=
func (h *CatalogHandler) HandleArtistSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.client.GetArtistSongs(r.Context(), mux.Vars(r)["id"],
		intParam(r, "page"), r.URL.Query().Get("sortBy"), r.URL.Query().Get("sortOrder"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, songs)
}

// HandleArtistAlbums serves GET /api/artists/{id}/albums?page=&sortBy=&sortOrder=
func (h *CatalogHandler) HandleArtistAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.client.GetArtistAlbums(r.Context(), mux.Vars(r)["id"],
		intParam(r, "page"), r.URL.Query().Get("sortBy"), r.URL.Query().Get("sortOrder"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, albums)
}

// HandleGetPlaylist serves GET /api/playlists?id=|link=&page=&limit=
func (h *CatalogHandler) HandleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.client.GetPlaylist(r.Context(), catalog.PlaylistParams{
		ID:    r.URL.Query().Get("id"),
		Link:  r.URL.Query().Get("link"),
		Page:  intParam(r, "page"),
		Limit: intParam(r, "limit"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, playlist)
}
