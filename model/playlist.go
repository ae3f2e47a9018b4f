package model

// Playlist is a curated track collection from the catalog.
type Playlist struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     *string     `json:"description"`
	Type            string      `json:"type"`
	Year            *int        `json:"year"`
	PlayCount       *int        `json:"playCount"`
	Language        string      `json:"language"`
	ExplicitContent bool        `json:"explicitContent"`
	SongCount       *int        `json:"songCount"`
	URL             string      `json:"url"`
	Image           []Quality   `json:"image"`
	Songs           []Track     `json:"songs"`
	Artists         []ArtistRef `json:"artists"`
}
