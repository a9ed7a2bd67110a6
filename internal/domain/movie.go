package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Movie is one catalog record, keyed by its TMDB identifier.
type Movie struct {
	ID                  int64          `db:"id" json:"-"`
	TMDBID              int64          `db:"tmdb_id" json:"tmdb_id"`
	IMDBID              *string        `db:"imdb_id" json:"imdb_id"`
	Title               string         `db:"title" json:"title"`
	Overview            string         `db:"overview" json:"overview"`
	ReleaseDate         Date           `db:"release_date" json:"release_date"`
	PosterURL           string         `db:"poster_url" json:"poster_url"`
	BackdropURL         string         `db:"backdrop_url" json:"backdrop_url"`
	TrailerURL          string         `db:"trailer_url" json:"trailer_url"`
	IMDBRating          float64        `db:"imdb_rating" json:"imdb_rating"`
	TMDBRating          float64        `db:"tmdb_rating" json:"tmdb_rating"`
	Genres              StringList     `db:"genres" json:"genres"`
	Languages           StringList     `db:"languages" json:"languages"`
	ProductionCountries StringList     `db:"production_countries" json:"production_countries"`
	Casts               CastList       `db:"casts" json:"casts"`
	Director            Person         `db:"director" json:"director"`
	DownloadURLs        types.JSONText `db:"download_urls" json:"download_urls"`
	StreamingURLs       types.JSONText `db:"streaming_urls" json:"streaming_urls"`
	StandardUser        bool           `db:"standard_user" json:"standard_user"`
	PremiumUser         bool           `db:"premium_user" json:"premium_user"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// MovieFields is the derived field set: everything sourced from the metadata
// provider. Opaque fields (download/streaming URLs, tier flags) are deliberately
// absent so a refresh can never touch them.
type MovieFields struct {
	IMDBID              *string
	Title               string
	Overview            string
	ReleaseDate         Date
	PosterURL           string
	BackdropURL         string
	TrailerURL          string
	IMDBRating          float64
	TMDBRating          float64
	Genres              StringList
	Languages           StringList
	ProductionCountries StringList
	Casts               CastList
	Director            Person
}

// ApplyDerived replaces every derived field with the given normalized values.
// This is the single definition of the derived set used by both the create and
// refresh paths.
func (m *Movie) ApplyDerived(f MovieFields) {
	m.IMDBID = f.IMDBID
	m.Title = f.Title
	m.Overview = f.Overview
	m.ReleaseDate = f.ReleaseDate
	m.PosterURL = f.PosterURL
	m.BackdropURL = f.BackdropURL
	m.TrailerURL = f.TrailerURL
	m.IMDBRating = f.IMDBRating
	m.TMDBRating = f.TMDBRating
	m.Genres = f.Genres
	m.Languages = f.Languages
	m.ProductionCountries = f.ProductionCountries
	m.Casts = f.Casts
	m.Director = f.Director
}

// CastMember is one top-billed cast entry.
type CastMember struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profile_path"`
}

// Person is a single credited person, e.g. the director. The zero value means
// "no such person" and serializes as an empty object.
type Person struct {
	Name       string `json:"name,omitempty"`
	ProfileURL string `json:"profile_path,omitempty"`
}

// IsZero reports whether no person is set.
func (p Person) IsZero() bool {
	return p.Name == "" && p.ProfileURL == ""
}

// StringList is an ordered list of names stored as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// CastList is stored as a JSONB column.
type CastList []CastMember

func (l CastList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *CastList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (p Person) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Person) Scan(src interface{}) error {
	return scanJSON(src, p)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. The zero value means the
// date is unknown and serializes as an empty string.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. An empty input yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}
