package styles

import (
	"strings"

	"github.com/bnema/adshield/internal/domain/entity"
)

// BypassRenderer renders the per-site bypass list.
type BypassRenderer struct {
	theme *Theme
}

// NewBypassRenderer creates a new BypassRenderer.
func NewBypassRenderer(theme *Theme) *BypassRenderer {
	return &BypassRenderer{theme: theme}
}

// RenderList renders every bypassed site.
func (r *BypassRenderer) RenderList(list []*entity.SiteBypass) string {
	if len(list) == 0 {
		return r.theme.RenderInfo("The shield is enabled on every site")
	}
	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{b.Host, b.Reason, RelativeTime(b.CreatedAt)})
	}
	return strings.Join([]string{
		r.theme.Title.Render(IconFilter + " Shield disabled on"),
		newTable(r.theme, []string{"Host", "Reason", "Added"}, rows),
	}, "\n")
}

// RenderAdded confirms a new bypass.
func (r *BypassRenderer) RenderAdded(b *entity.SiteBypass) string {
	return r.theme.RenderSuccess("Shield disabled on ") + r.theme.HostBadge(b.Host)
}

// RenderRemoved confirms a removed bypass.
func (r *BypassRenderer) RenderRemoved(host string) string {
	return r.theme.RenderSuccess("Shield enabled on ") + r.theme.HostBadge(host)
}
