package api

// movieDTO is a movie as served by the PlayBox backend
type movieDTO struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name"`
	Image      string      `json:"image,omitempty"`
	Year       int         `json:"year"`
	Genre      string      `json:"genre"`
	Detail     string      `json:"detail,omitempty"`
	Cast       []string    `json:"cast,omitempty"`
	Reviews    []reviewDTO `json:"reviews,omitempty"`
	NumReviews int         `json:"numReviews,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
}

// reviewDTO is a user review embedded in a movie
type reviewDTO struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// genreDTO is a genre as served by the PlayBox backend
type genreDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
