package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/adshield/internal/domain/entity"
)

const maxURLWidth = 60

// StatsRenderer renders block event statistics.
type StatsRenderer struct {
	theme *Theme
}

// NewStatsRenderer creates a new StatsRenderer.
func NewStatsRenderer(theme *Theme) *StatsRenderer {
	return &StatsRenderer{theme: theme}
}

// Render renders totals, the top hosts and the latest events.
func (r *StatsRenderer) Render(stats *entity.BlockStats, recent []*entity.BlockEvent, since time.Time) string {
	if stats == nil || stats.Total == 0 {
		return r.theme.RenderInfo("No blocked requests recorded")
	}

	window := "all time"
	if !since.IsZero() {
		window = "since " + since.Format("2006-01-02 15:04")
	}

	parts := []string{
		r.theme.Title.Render(IconShield+" Blocked requests") + " " + r.theme.Subtle.Render(window),
		"",
		fmt.Sprintf("%s  %s  %s",
			r.theme.CountBadge(stats.Total, "request"),
			r.theme.Tracker.Render(fmt.Sprintf("%d trackers", stats.Trackers)),
			r.theme.Banner.Render(fmt.Sprintf("%d banners", stats.Banners)),
		),
	}

	if len(stats.TopHosts) > 0 {
		rows := make([][]string, 0, len(stats.TopHosts))
		for _, hc := range stats.TopHosts {
			rows = append(rows, []string{hc.Host, fmt.Sprintf("%d", hc.Count)})
		}
		parts = append(parts, "", r.theme.Subtitle.Render("Top hosts"), r.table([]string{"Host", "Blocked"}, rows))
	}

	if len(recent) > 0 {
		rows := make([][]string, 0, len(recent))
		for _, e := range recent {
			rows = append(rows, []string{
				RelativeTime(e.CreatedAt),
				e.Verdict.String(),
				string(e.Source),
				truncate(e.URL, maxURLWidth),
			})
		}
		parts = append(parts, "", r.theme.Subtitle.Render("Recent"), r.table([]string{"When", "Verdict", "Source", "URL"}, rows))
	}

	return strings.Join(parts, "\n")
}

func (r *StatsRenderer) table(headers []string, rows [][]string) string {
	return newTable(r.theme, headers, rows)
}

func newTable(theme *Theme, headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
