package model

// Artist is a full artist profile. Top songs/albums/singles are only
// populated on the detail endpoints that request them.
type Artist struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	URL              string    `json:"url"`
	Type             string    `json:"type"`
	FollowerCount    *int      `json:"followerCount"`
	FanCount         *string   `json:"fanCount"`
	IsVerified       *bool     `json:"isVerified"`
	DominantLanguage *string   `json:"dominantLanguage"`
	DominantType     *string   `json:"dominantType"`
	Bio              []Bio     `json:"bio"`
	DOB              *string   `json:"dob"`
	FB               *string   `json:"fb"`
	Twitter          *string   `json:"twitter"`
	Wiki             *string   `json:"wiki"`
	Image            []Quality `json:"image"`
	TopSongs         []Track   `json:"topSongs"`
	TopAlbums        []Album   `json:"topAlbums"`
	Singles          []Track   `json:"singles"`
}

// Bio is one titled section of an artist biography.
type Bio struct {
	Text     *string `json:"text"`
	Title    *string `json:"title"`
	Sequence *int    `json:"sequence"`
}

// ArtistSongs is one page of an artist's song discography.
type ArtistSongs struct {
	Total int     `json:"total"`
	Songs []Track `json:"songs"`
}

// ArtistAlbums is one page of an artist's album discography.
type ArtistAlbums struct {
	Total  int     `json:"total"`
	Albums []Album `json:"albums"`
}
