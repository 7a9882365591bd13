package styles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/adshield/internal/cli/styles"
	"github.com/bnema/adshield/internal/domain/entity"
)

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5*time.Minute - time.Second), "5m ago"},
		{"hours", now.Add(-3*time.Hour - time.Second), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.RelativeTime(tt.in))
		})
	}
}

func TestVerdictBadge_NamesVerdict(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, theme.VerdictBadge(entity.VerdictBlockedTracker), "BLOCKED_TRACKER")
	assert.Contains(t, theme.VerdictBadge(entity.VerdictBlockedBanner), "BLOCKED_BANNER")
	assert.Contains(t, theme.VerdictBadge(entity.VerdictAllowed), "ALLOWED")
}

func TestCountBadge_Pluralizes(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, theme.CountBadge(1, "request"), "1 request")
	assert.NotContains(t, theme.CountBadge(1, "request"), "requests")
	assert.Contains(t, theme.CountBadge(3, "request"), "3 requests")
}

func TestStatsRenderer(t *testing.T) {
	r := styles.NewStatsRenderer(styles.NewTheme())

	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, r.Render(nil, nil, time.Time{}), "No blocked requests")
		assert.Contains(t, r.Render(&entity.BlockStats{}, nil, time.Time{}), "No blocked requests")
	})

	t.Run("hosts and events", func(t *testing.T) {
		stats := &entity.BlockStats{
			Total:    3,
			Trackers: 2,
			Banners:  1,
			TopHosts: []entity.HostCount{{Host: "doubleclick.net", Count: 2}},
		}
		recent := []*entity.BlockEvent{{
			URL:       "https://doubleclick.net/pixel",
			Host:      "doubleclick.net",
			PageHost:  "news.example",
			Verdict:   entity.VerdictBlockedTracker,
			CreatedAt: time.Now(),
		}}

		out := r.Render(stats, recent, time.Time{})
		assert.Contains(t, out, "all time")
		assert.Contains(t, out, "2 trackers")
		assert.Contains(t, out, "doubleclick.net")
	})
}
