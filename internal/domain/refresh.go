package domain

import "time"

// RefreshStats holds statistics about one catalog refresh run.
type RefreshStats struct {
	Total     int
	Refreshed int
	Errors    int
	Duration  time.Duration
}
