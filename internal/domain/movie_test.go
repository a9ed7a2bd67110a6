package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestApplyDerived_ReplacesEveryDerivedField(t *testing.T) {
	movie := &Movie{
		TMDBID:              603,
		IMDBID:              strPtr("tt0000000"),
		Title:               "Old Title",
		Overview:            "Old overview",
		ReleaseDate:         NewDate(1990, time.January, 1),
		PosterURL:           "old-poster",
		BackdropURL:         "old-backdrop",
		TrailerURL:          "old-trailer",
		IMDBRating:          1.0,
		TMDBRating:          1.0,
		Genres:              StringList{"Old"},
		Languages:           StringList{"Old"},
		ProductionCountries: StringList{"Old"},
		Casts:               CastList{{Name: "Old"}},
		Director:            Person{Name: "Old"},
	}

	fields := MovieFields{
		IMDBID:              strPtr("tt0133093"),
		Title:               "The Matrix",
		Overview:            "New overview",
		ReleaseDate:         NewDate(1999, time.March, 30),
		PosterURL:           "new-poster",
		BackdropURL:         "new-backdrop",
		TrailerURL:          "new-trailer",
		IMDBRating:          8.2,
		TMDBRating:          8.2,
		Genres:              StringList{"Action"},
		Languages:           StringList{"English"},
		ProductionCountries: StringList{"United States of America"},
		Casts:               CastList{{Name: "Keanu Reeves", Character: "Neo"}},
		Director:            Person{Name: "Lana Wachowski"},
	}

	movie.ApplyDerived(fields)

	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "New overview", movie.Overview)
	assert.Equal(t, "tt0133093", *movie.IMDBID)
	assert.Equal(t, "1999-03-30", movie.ReleaseDate.String())
	assert.Equal(t, "new-poster", movie.PosterURL)
	assert.Equal(t, "new-backdrop", movie.BackdropURL)
	assert.Equal(t, "new-trailer", movie.TrailerURL)
	assert.Equal(t, 8.2, movie.IMDBRating)
	assert.Equal(t, 8.2, movie.TMDBRating)
	assert.Equal(t, StringList{"Action"}, movie.Genres)
	assert.Equal(t, StringList{"English"}, movie.Languages)
	assert.Equal(t, StringList{"United States of America"}, movie.ProductionCountries)
	assert.Equal(t, CastList{{Name: "Keanu Reeves", Character: "Neo"}}, movie.Casts)
	assert.Equal(t, Person{Name: "Lana Wachowski"}, movie.Director)
}

func TestApplyDerived_LeavesOpaqueFieldsUntouched(t *testing.T) {
	movie := &Movie{
		TMDBID:        603,
		DownloadURLs:  types.JSONText(`{"720p": "https://dl.example.com/720"}`),
		StreamingURLs: types.JSONText(`["https://stream.example.com"]`),
		StandardUser:  true,
		PremiumUser:   true,
	}

	movie.ApplyDerived(MovieFields{Title: "The Matrix"})

	assert.Equal(t, int64(603), movie.TMDBID)
	assert.JSONEq(t, `{"720p": "https://dl.example.com/720"}`, string(movie.DownloadURLs))
	assert.JSONEq(t, `["https://stream.example.com"]`, string(movie.StreamingURLs))
	assert.True(t, movie.StandardUser)
	assert.True(t, movie.PremiumUser)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.May, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDate_ZeroMarshalsAsEmptyString(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

func TestDate_ScanFromTime(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.May, 1, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-01", d.String())
}

func TestStringList_ValueAndScan(t *testing.T) {
	l := StringList{"Action", "Drama"}

	v, err := l.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, l, scanned)
}

func TestPerson_ZeroSerializesAsEmptyObject(t *testing.T) {
	data, err := json.Marshal(Person{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
	assert.True(t, Person{}.IsZero())
}
