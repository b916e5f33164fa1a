package contests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atcoderFixture = `
<html><body>
<div id="contest-table-upcoming">
<table><tbody>
<tr>
	<td><a href="#">2026-09-05 21:00:00+0900</a></td>
	<td><a href="/contests/abc420">AtCoder Beginner Contest 420</a></td>
	<td>01:40</td>
	<td> - 1999</td>
</tr>
<tr>
	<td><a href="#">2026-09-12 21:00:00+0900</a></td>
	<td><a href="/contests/arc190">AtCoder Regular Contest 190</a></td>
	<td>02:00</td>
	<td> - 2799</td>
</tr>
</tbody></table>
</div>
</body></html>`

func TestAtCoderSource_Upcoming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(atcoderFixture))
	}))
	defer server.Close()

	src := &AtCoderSource{BaseURL: server.URL}
	contests, err := src.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 2)

	first := contests[0]
	assert.Equal(t, "AtCoder Beginner Contest 420", first.Name)
	assert.Equal(t, "atcoder", first.Site)
	assert.Equal(t, "https://atcoder.jp/contests/abc420", first.URL)
	assert.Equal(t, "1h40m", first.Duration)

	// 21:00 JST is 12:00 UTC
	want := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	assert.True(t, first.StartTime.Equal(want), "got %v", first.StartTime)

	assert.Equal(t, "2h", contests[1].Duration)
}

func TestAtCoderSource_EmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="contest-table-upcoming"><table><tbody></tbody></table></div></body></html>`))
	}))
	defer server.Close()

	src := &AtCoderSource{BaseURL: server.URL}
	contests, err := src.Upcoming(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contests)
}

func TestAtCoderSource_BadStartTime(t *testing.T) {
	page := `
	<html><body><div id="contest-table-upcoming"><table><tbody>
	<tr><td>soon</td><td><a href="/contests/x">X</a></td><td>01:00</td></tr>
	</tbody></table></div></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	src := &AtCoderSource{BaseURL: server.URL}
	_, err := src.Upcoming(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start time")
}

func TestNormalizeClockDuration(t *testing.T) {
	assert.Equal(t, "1h40m", normalizeClockDuration("01:40"))
	assert.Equal(t, "2h", normalizeClockDuration("02:00"))
	assert.Equal(t, "45m", normalizeClockDuration("00:45"))
	assert.Equal(t, "whenever", normalizeClockDuration("whenever"))
}

func TestLooksClientRendered(t *testing.T) {
	assert.True(t, looksClientRendered(`<html><body><div id="root"></div></body></html>`))

	filler := strings.Repeat("upcoming contest schedule row ", 30)
	assert.False(t, looksClientRendered(`<html><body><main>`+filler+`</main></body></html>`))
}
