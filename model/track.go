package model

// Quality is one entry of a quality-ranked media variant list, used
// for both artwork and audio download URLs.
type Quality struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// ArtistRef is an artist as embedded in tracks, albums and playlists.
type ArtistRef struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Type  string    `json:"type"`
	Image []Quality `json:"image"`
	URL   string    `json:"url"`
}

// ArtistMap groups a track's artists by billing.
type ArtistMap struct {
	Primary  []ArtistRef `json:"primary"`
	Featured []ArtistRef `json:"featured"`
	All      []ArtistRef `json:"all"`
}

// AlbumRef is the album a track belongs to.
type AlbumRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

// Track is a single playable item from the catalog. Immutable once
// fetched; the ID is stable across fetches of the same track.
type Track struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Year            *string   `json:"year"`
	ReleaseDate     *string   `json:"releaseDate"`
	Duration        *int      `json:"duration"` // seconds
	Label           *string   `json:"label"`
	ExplicitContent bool      `json:"explicitContent"`
	PlayCount       *int      `json:"playCount"`
	Language        string    `json:"language"`
	HasLyrics       bool      `json:"hasLyrics"`
	LyricsID        *string   `json:"lyricsId"`
	URL             string    `json:"url"`
	Copyright       *string   `json:"copyright"`
	Album           AlbumRef  `json:"album"`
	Artists         ArtistMap `json:"artists"`
	Image           []Quality `json:"image"`
	DownloadURL     []Quality `json:"downloadUrl"`
}

// PrimaryArtistNames returns the names of the track's primary
// artists, in billing order.
func (t *Track) PrimaryArtistNames() []string {
	names := make([]string, len(t.Artists.Primary))
	for i, a := range t.Artists.Primary {
		names[i] = a.Name
	}
	return names
}

// BestDownloadURL returns the last (highest quality) download
// variant, or "" when the track carries none.
func (t *Track) BestDownloadURL() string {
	if len(t.DownloadURL) == 0 {
		return ""
	}
	return t.DownloadURL[len(t.DownloadURL)-1].URL
}
