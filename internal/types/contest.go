package types

import "time"

// Contest is one upcoming competitive-programming contest from any source.
type Contest struct {
	Name      string    `json:"name"`
	Site      string    `json:"site"`
	URL       string    `json:"url"`
	StartTime time.Time `json:"start_time"`
	Duration  string    `json:"duration,omitempty"`
}

// ContestListing is the aggregated, cache-aware response for GET /contests.
type ContestListing struct {
	Contests  []Contest `json:"contests"`
	Sources   []string  `json:"sources"`
	FromCache bool      `json:"from_cache"`
	FetchedAt time.Time `json:"fetched_at"`
}
