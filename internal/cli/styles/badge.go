package styles

import (
	"fmt"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
)

// VerdictBadge renders a verdict with its severity color.
func (t *Theme) VerdictBadge(v entity.Verdict) string {
	switch v {
	case entity.VerdictBlockedTracker:
		return t.Tracker.Render(v.String())
	case entity.VerdictBlockedBanner:
		return t.Banner.Render(v.String())
	default:
		return t.Allowed.Render(v.String())
	}
}

// CountBadge renders a count with a unit, pluralized.
func (t *Theme) CountBadge(count int64, unit string) string {
	text := fmt.Sprintf("%d %ss", count, unit)
	if count == 1 {
		text = "1 " + unit
	}
	return t.BadgeMuted.Render(text)
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// HostBadge renders a host badge.
func (t *Theme) HostBadge(host string) string {
	return t.Badge.Render(host)
}

// RelativeTime formats a time as relative to now.
func RelativeTime(tm time.Time) string {
	if tm.IsZero() {
		return "never"
	}
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	default:
		return tm.Format("Jan 2, 2006")
	}
}
