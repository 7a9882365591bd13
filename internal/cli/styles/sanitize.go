package styles

import "fmt"

// SanitizeSummary renders what a sanitize pass changed.
func (t *Theme) SanitizeSummary(kind string, changed, skipped bool, neutralized, buried int) string {
	switch {
	case skipped:
		return t.RenderInfo("Shield disabled for this page, document left untouched")
	case !changed:
		return t.RenderInfo(fmt.Sprintf("Nothing to remove from the %s document", kind))
	case kind == "json":
		return t.RenderSuccess("Stripped ad data from the player payload")
	default:
		return t.RenderSuccess(fmt.Sprintf("Neutralized %d resources, hid %d elements", neutralized, buried))
	}
}

// ProxyBanner renders the proxy startup line.
func (t *Theme) ProxyBanner(addr string, mitm, sanitizeHTML bool) string {
	line := t.Highlight.Render(IconPlay+" adshield proxy") + " " + t.Normal.Render("listening on "+addr)
	if mitm {
		line += " " + t.BadgeMuted.Render("mitm")
	}
	if sanitizeHTML {
		line += " " + t.BadgeMuted.Render("html")
	}
	return line
}
