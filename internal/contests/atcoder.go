package contests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hari10031/CodeSync-sub001/internal/fetch"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

const (
	atcoderContestsURL = "https://atcoder.jp/contests/"
	atcoderTimeLayout  = "2006-01-02 15:04:05-0700"
)

// AtCoderSource scrapes the upcoming-contests table on atcoder.jp.
type AtCoderSource struct {
	// BaseURL overrides the page URL, for tests.
	BaseURL string
	Options *fetch.Options
	// UseBrowser enables headless rendering when the plain fetch comes
	// back without the contest table.
	UseBrowser bool
}

func (s *AtCoderSource) Name() string { return "atcoder" }

func (s *AtCoderSource) Upcoming(ctx context.Context) ([]types.Contest, error) {
	url := s.BaseURL
	if url == "" {
		url = atcoderContestsURL
	}

	result, err := fetch.URL(ctx, url, s.Options)
	if err != nil {
		return nil, fmt.Errorf("atcoder fetch failed: %w", err)
	}

	contests, err := s.parse(result.Body)
	if err == nil && len(contests) == 0 && s.UseBrowser && looksClientRendered(result.Body) {
		html, berr := fetch.WithBrowser(ctx, url, fetch.DefaultTimeout)
		if berr != nil {
			return nil, fmt.Errorf("atcoder browser fallback failed: %w", berr)
		}
		contests, err = s.parse(html)
	}
	return contests, err
}

// looksClientRendered guesses whether an empty parse means the table is
// populated by JavaScript, as opposed to there genuinely being no upcoming
// contests on a fully rendered page.
func looksClientRendered(html string) bool {
	text, err := fetch.ExtractMainText(html, fetch.ContestListSelectors())
	if err != nil {
		return false
	}
	return fetch.ShouldUseBrowser(text)
}

func (s *AtCoderSource) parse(html string) ([]types.Contest, error) {
	doc, err := fetch.Document(html)
	if err != nil {
		return nil, err
	}

	var contests []types.Contest
	var parseErr error
	doc.Find("#contest-table-upcoming tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		startText := strings.TrimSpace(cells.Eq(0).Text())
		start, err := time.Parse(atcoderTimeLayout, startText)
		if err != nil {
			parseErr = fmt.Errorf("atcoder start time %q: %w", startText, err)
			return false
		}

		link := cells.Eq(1).Find("a").First()
		name := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if name == "" {
			return true
		}

		contests = append(contests, types.Contest{
			Name:      name,
			Site:      s.Name(),
			URL:       "https://atcoder.jp" + href,
			StartTime: start.UTC(),
			Duration:  normalizeClockDuration(strings.TrimSpace(cells.Eq(2).Text())),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return contests, nil
}

// normalizeClockDuration turns AtCoder's "HH:MM" column into "2h30m" style
// text to match the other sources.
func normalizeClockDuration(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return clock
	}
	return formatDuration(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}
