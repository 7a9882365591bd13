package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/adshield/internal/domain/entity"
)

// ClassifyRenderer renders classifier decisions.
type ClassifyRenderer struct {
	theme *Theme
}

// NewClassifyRenderer creates a new ClassifyRenderer.
func NewClassifyRenderer(theme *Theme) *ClassifyRenderer {
	return &ClassifyRenderer{theme: theme}
}

// Render renders one URL with its verdict and the deciding rule.
func (r *ClassifyRenderer) Render(rawURL string, site entity.SiteContext, m entity.Match) string {
	keyStyle := r.theme.Subtle.Width(9)
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s", r.theme.VerdictBadge(m.Verdict), r.theme.Normal.Render(rawURL)))

	page := site.Hostname
	if page == "" {
		page = "-"
	}
	if site.IsSpecialSite {
		page += " " + r.theme.BadgeMuted.Render("special")
	}
	lines = append(lines, keyStyle.Render("page")+page)

	rule := r.theme.Subtle.Render("no rule matched")
	if m.Table != entity.TableNone {
		rule = r.theme.Highlight.Render(string(m.Table))
		if m.Pattern != "" {
			rule += r.theme.Subtle.Render(" "+IconArrow+" ") + r.theme.Normal.Render(m.Pattern)
		}
	}
	lines = append(lines, keyStyle.Render("rule")+rule)

	return lipgloss.NewStyle().MarginLeft(1).Render(strings.Join(lines, "\n"))
}
