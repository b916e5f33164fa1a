package contests

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hari10031/CodeSync-sub001/internal/fetch"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

const codeforcesAPIURL = "https://codeforces.com/api/contest.list?gym=false"

// CodeforcesSource reads the public Codeforces contest API.
type CodeforcesSource struct {
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	Options *fetch.Options
}

type codeforcesResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		ID               int    `json:"id"`
		Name             string `json:"name"`
		Phase            string `json:"phase"`
		DurationSeconds  int64  `json:"durationSeconds"`
		StartTimeSeconds int64  `json:"startTimeSeconds"`
	} `json:"result"`
}

func (s *CodeforcesSource) Name() string { return "codeforces" }

func (s *CodeforcesSource) Upcoming(ctx context.Context) ([]types.Contest, error) {
	url := s.BaseURL
	if url == "" {
		url = codeforcesAPIURL
	}

	result, err := fetch.URL(ctx, url, s.Options)
	if err != nil {
		return nil, fmt.Errorf("codeforces fetch failed: %w", err)
	}

	var resp codeforcesResponse
	if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
		return nil, fmt.Errorf("codeforces returned malformed JSON: %w", err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("codeforces API status %q: %s", resp.Status, resp.Comment)
	}

	var contests []types.Contest
	for _, c := range resp.Result {
		if c.Phase != "BEFORE" {
			continue
		}
		contests = append(contests, types.Contest{
			Name:      c.Name,
			Site:      s.Name(),
			URL:       fmt.Sprintf("https://codeforces.com/contests/%d", c.ID),
			StartTime: time.Unix(c.StartTimeSeconds, 0).UTC(),
			Duration:  formatDuration(time.Duration(c.DurationSeconds) * time.Second),
		})
	}
	return contests, nil
}

// formatDuration renders a contest length as "2h30m" style text.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
