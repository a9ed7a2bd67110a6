package tmdb

import (
	"fmt"

	"cinecraze/internal/domain"
)

// Image size tokens. Poster, backdrop and profile imagery use fixed sizes; the
// mapping is not configurable per call.
const (
	posterSize   = "w500"
	backdropSize = "original"
	profileSize  = "w200"
)

// maxCastMembers caps the cast list at the first entries in upstream order.
const maxCastMembers = 5

// directorJob is the crew job that marks the movie's director.
const directorJob = "Director"

// Normalize maps a complete upstream bundle onto the derived catalog fields.
// It is a pure transformation: missing optional values become empty values,
// never errors.
func Normalize(b *Bundle, imageBase string) domain.MovieFields {
	d := b.Details

	// Release dates TMDB cannot provide arrive empty; anything unparseable
	// is treated the same way.
	releaseDate, _ := domain.ParseDate(d.ReleaseDate)

	fields := domain.MovieFields{
		IMDBID:              d.IMDBID,
		Title:               d.Title,
		Overview:            d.Overview,
		ReleaseDate:         releaseDate,
		PosterURL:           imageURL(imageBase, posterSize, d.PosterPath),
		BackdropURL:         imageURL(imageBase, backdropSize, d.BackdropPath),
		TrailerURL:          trailerURL(b.Videos),
		IMDBRating:          d.VoteAverage,
		TMDBRating:          d.VoteAverage,
		Genres:              projectNames(d.Genres),
		Languages:           projectNames(d.SpokenLanguages),
		ProductionCountries: projectNames(d.ProductionCountries),
		Casts:               topCast(b.Credits.Cast, imageBase),
		Director:            director(b.Credits.Crew, imageBase),
	}

	return fields
}

// imageURL builds base + size + path, or "" when the path fragment is absent.
func imageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	return base + size + path
}

// trailerURL picks the first YouTube video of type Trailer.
func trailerURL(videos VideoList) string {
	for _, v := range videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.Key)
		}
	}
	return ""
}

// projectNames extracts the name of each upstream object, preserving order.
func projectNames(entities []NamedEntity) domain.StringList {
	names := make(domain.StringList, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return names
}

// topCast keeps the first five cast entries in upstream billing order.
func topCast(cast []CastCredit, imageBase string) domain.CastList {
	if len(cast) > maxCastMembers {
		cast = cast[:maxCastMembers]
	}

	members := make(domain.CastList, 0, len(cast))
	for _, c := range cast {
		members = append(members, domain.CastMember{
			Name:       c.Name,
			Character:  c.Character,
			ProfileURL: imageURL(imageBase, profileSize, c.ProfilePath),
		})
	}
	return members
}

// director returns the first crew entry whose job is "Director", or the empty
// record when there is none.
func director(crew []CrewCredit, imageBase string) domain.Person {
	for _, c := range crew {
		if c.Job == directorJob {
			return domain.Person{
				Name:       c.Name,
				ProfileURL: imageURL(imageBase, profileSize, c.ProfilePath),
			}
		}
	}
	return domain.Person{}
}
