package tmdb

// MovieDetails is the /movie/{id} response subset we consume.
type MovieDetails struct {
	ID                  int64         `json:"id"`
	IMDBID              *string       `json:"imdb_id"`
	Title               string        `json:"title"`
	Overview            string        `json:"overview"`
	ReleaseDate         string        `json:"release_date"`
	PosterPath          string        `json:"poster_path"`
	BackdropPath        string        `json:"backdrop_path"`
	VoteAverage         float64       `json:"vote_average"`
	Genres              []NamedEntity `json:"genres"`
	SpokenLanguages     []NamedEntity `json:"spoken_languages"`
	ProductionCountries []NamedEntity `json:"production_countries"`
}

// NamedEntity is any upstream object we only project a name out of.
type NamedEntity struct {
	Name string `json:"name"`
}

// Credits is the /movie/{id}/credits response subset.
type Credits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

type CastCredit struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type CrewCredit struct {
	Name        string `json:"name"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

// VideoList is the /movie/{id}/videos response subset.
type VideoList struct {
	Results []Video `json:"results"`
}

type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Bundle holds the three upstream responses for one movie. A Bundle only ever
// exists complete; a partial fetch never produces one.
type Bundle struct {
	Details MovieDetails
	Credits Credits
	Videos  VideoList
}
