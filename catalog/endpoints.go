package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ParthJhaveri10/Lumeo/model"
)

// maxQueryLength bounds free-text search input after trimming.
const maxQueryLength = 100

// Sort options accepted by the discography endpoints.
const (
	SortByPopularity = "popularity"
	SortByLatest     = "latest"
	SortByAlphabet   = "alphabetical"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// validateQuery enforces the free-text precondition: non-empty after
// trimming and at most 100 characters. The limit counts characters,
// not bytes; much of the catalog is queried in Devanagari. Checked
// before any network attempt.
func validateQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", validationError("search query must not be empty")
	}
	if utf8.RuneCountInString(q) > maxQueryLength {
		return "", validationError(fmt.Sprintf("search query must be at most %d characters", maxQueryLength))
	}
	return q, nil
}

func validateSort(sortBy, sortOrder string) error {
	switch sortBy {
	case "", SortByPopularity, SortByLatest, SortByAlphabet:
	default:
		return validationError("sortBy must be one of popularity, latest, alphabetical")
	}
	switch sortOrder {
	case "", SortOrderAsc, SortOrderDesc:
	default:
		return validationError("sortOrder must be asc or desc")
	}
	return nil
}

func pageParams(page, limit int) url.Values {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}

// SearchAll performs the global, untyped search.
func (c *Client) SearchAll(ctx context.Context, query string) (*model.GlobalSearchResults, error) {
	q, err := validateQuery(query)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("query", q)
	var out model.GlobalSearchResults
	if err := c.get(ctx, "/search", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchSongs searches songs by free text.
func (c *Client) SearchSongs(ctx context.Context, query string, page, limit int) (*model.Page[model.Track], error) {
	return searchTyped[model.Track](ctx, c, "/search/songs", query, page, limit)
}

// SearchAlbums searches albums by free text.
func (c *Client) SearchAlbums(ctx context.Context, query string, page, limit int) (*model.Page[model.Album], error) {
	return searchTyped[model.Album](ctx, c, "/search/albums", query, page, limit)
}

// SearchArtists searches artists by free text.
func (c *Client) SearchArtists(ctx context.Context, query string, page, limit int) (*model.Page[model.Artist], error) {
	return searchTyped[model.Artist](ctx, c, "/search/artists", query, page, limit)
}

// SearchPlaylists searches playlists by free text.
func (c *Client) SearchPlaylists(ctx context.Context, query string, page, limit int) (*model.Page[model.Playlist], error) {
	return searchTyped[model.Playlist](ctx, c, "/search/playlists", query, page, limit)
}

func searchTyped[T any](ctx context.Context, c *Client, path, query string, page, limit int) (*model.Page[T], error) {
	q, err := validateQuery(query)
	if err != nil {
		return nil, err
	}
	params := pageParams(page, limit)
	params.Set("query", q)
	var out model.Page[T]
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SongParams identifies songs either by id list or by share link.
// Exactly one of the two must be set.
type SongParams struct {
	IDs  []string
	Link string
}

// GetSongs fetches one or more songs by id or link.
func (c *Client) GetSongs(ctx context.Context, p SongParams) ([]model.Track, error) {
	params := url.Values{}
	switch {
	case len(p.IDs) > 0 && p.Link != "":
		return nil, validationError("provide song ids or a link, not both")
	case len(p.IDs) > 0:
		params.Set("ids", strings.Join(p.IDs, ","))
	case p.Link != "":
		params.Set("link", p.Link)
	default:
		return nil, validationError("song ids or a link is required")
	}
	var out []model.Track
	if err := c.get(ctx, "/songs", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSongSuggestions fetches autoplay suggestions seeded by a song id.
func (c *Client) GetSongSuggestions(ctx context.Context, id string, limit int) ([]model.Track, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("song id is required")
	}
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []model.Track
	if err := c.get(ctx, "/songs/"+url.PathEscape(id)+"/suggestions", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AlbumParams identifies an album by id or by share link.
type AlbumParams struct {
	ID   string
	Link string
}

// GetAlbum fetches a full album, including its track listing.
func (c *Client) GetAlbum(ctx context.Context, p AlbumParams) (*model.Album, error) {
	params := url.Values{}
	switch {
	case p.ID != "":
		params.Set("id", p.ID)
	case p.Link != "":
		params.Set("link", p.Link)
	default:
		return nil, validationError("album id or link is required")
	}
	var out model.Album
	if err := c.get(ctx, "/albums", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArtistParams identifies an artist and shapes the detail response.
type ArtistParams struct {
	ID         string
	Link       string
	Page       int
	SongCount  int
	AlbumCount int
	SortBy     string
	SortOrder  string
}

func (p ArtistParams) values() url.Values {
	params := url.Values{}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.SongCount > 0 {
		params.Set("songCount", strconv.Itoa(p.SongCount))
	}
	if p.AlbumCount > 0 {
		params.Set("albumCount", strconv.Itoa(p.AlbumCount))
	}
	if p.SortBy != "" {
		params.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		params.Set("sortOrder", p.SortOrder)
	}
	return params
}

// GetArtist fetches an artist profile by id or link.
func (c *Client) GetArtist(ctx context.Context, p ArtistParams) (*model.Artist, error) {
	if p.ID == "" && p.Link == "" {
		return nil, validationError("artist id or link is required")
	}
	if err := validateSort(p.SortBy, p.SortOrder); err != nil {
		return nil, err
	}
	params := p.values()
	if p.ID != "" {
		params.Set("id", p.ID)
	} else {
		params.Set("link", p.Link)
	}
	var out model.Artist
	if err := c.get(ctx, "/artists", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistByID fetches an artist profile via the path-style endpoint.
func (c *Client) GetArtistByID(ctx context.Context, id string, p ArtistParams) (*model.Artist, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("artist id is required")
	}
	if err := validateSort(p.SortBy, p.SortOrder); err != nil {
		return nil, err
	}
	var out model.Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistByLink fetches an artist profile from a share link.
func (c *Client) GetArtistByLink(ctx context.Context, link string, p ArtistParams) (*model.Artist, error) {
	if strings.TrimSpace(link) == "" {
		return nil, validationError("artist link is required")
	}
	p.Link = link
	p.ID = ""
	return c.GetArtist(ctx, p)
}

// GetArtistSongs fetches one page of an artist's songs.
func (c *Client) GetArtistSongs(ctx context.Context, id string, page int, sortBy, sortOrder string) (*model.ArtistSongs, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("artist id is required")
	}
	if err := validateSort(sortBy, sortOrder); err != nil {
		return nil, err
	}
	params := pageParams(page, 0)
	if sortBy != "" {
		params.Set("sortBy", sortBy)
	}
	if sortOrder != "" {
		params.Set("sortOrder", sortOrder)
	}
	var out model.ArtistSongs
	if err := c.get(ctx, "/artists/"+url.PathEscape(id)+"/songs", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistAlbums fetches one page of an artist's albums.
func (c *Client) GetArtistAlbums(ctx context.Context, id string, page int, sortBy, sortOrder string) (*model.ArtistAlbums, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("artist id is required")
	}
	if err := validateSort(sortBy, sortOrder); err != nil {
		return nil, err
	}
	params := pageParams(page, 0)
	if sortBy != "" {
		params.Set("sortBy", sortBy)
	}
	if sortOrder != "" {
		params.Set("sortOrder", sortOrder)
	}
	var out model.ArtistAlbums
	if err := c.get(ctx, "/artists/"+url.PathEscape(id)+"/albums", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaylistParams identifies a playlist by id or link, with optional
// pagination of its songs.
type PlaylistParams struct {
	ID    string
	Link  string
	Page  int
	Limit int
}

// GetPlaylist fetches a playlist and a page of its songs.
func (c *Client) GetPlaylist(ctx context.Context, p PlaylistParams) (*model.Playlist, error) {
	params := pageParams(p.Page, p.Limit)
	switch {
	case p.ID != "":
		params.Set("id", p.ID)
	case p.Link != "":
		params.Set("link", p.Link)
	default:
		return nil, validationError("playlist id or link is required")
	}
	var out model.Playlist
	if err := c.get(ctx, "/playlists", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
