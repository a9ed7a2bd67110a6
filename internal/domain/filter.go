package domain

// NewReleaseWindowDays is how far back a release date may lie for the movie to
// still count as a new release.
const NewReleaseWindowDays = 60

// MovieFilter holds the query-time predicates for listing movies. All supplied
// predicates compose conjunctively. Language and Genre match by
// case-insensitive containment against the serialized list, so "Sci" matches a
// stored "Sci-Fi".
type MovieFilter struct {
	Language   string
	Genre      string
	Search     string
	NewRelease bool
	Upcoming   bool
}

// IsZero reports whether no predicate is set.
func (f MovieFilter) IsZero() bool {
	return f == MovieFilter{}
}

// ReleaseWindow returns the closed interval [today-60d, today] a release date
// must fall in to count as a new release.
func ReleaseWindow(today Date) (from, to Date) {
	return DateOf(today.AddDate(0, 0, -NewReleaseWindowDays)), today
}
