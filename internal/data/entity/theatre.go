package entity

// MoviePoster is a movie currently listed at a theatre.
type MoviePoster struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type Theatre struct {
	ID       string        `json:"id"`
	Image    string        `json:"image"`
	Address  string        `json:"address"`
	Location string        `json:"location"`
	MapURL   string        `json:"map_url"`
	Movies   []MoviePoster `json:"movies"`
}
