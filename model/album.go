package model

// Album is a full album record including its track listing.
type Album struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Year            *int      `json:"year"`
	Type            string    `json:"type"`
	PlayCount       *int      `json:"playCount"`
	Language        string    `json:"language"`
	ExplicitContent bool      `json:"explicitContent"`
	SongCount       *int      `json:"songCount"`
	URL             string    `json:"url"`
	Artists         ArtistMap `json:"artists"`
	Image           []Quality `json:"image"`
	Songs           []Track   `json:"songs"`
}
