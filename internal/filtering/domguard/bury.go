package domguard

import (
	"strings"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
)

const important = "important"

// buryDeclarations collapse an element without detaching it.
var buryDeclarations = [][2]string{
	{"display", "none"},
	{"visibility", "hidden"},
	{"width", "0"},
	{"height", "0"},
	{"min-height", "0"},
	{"max-height", "0"},
	{"overflow", "hidden"},
}

var neverBury = map[string]bool{"HTML": true, "HEAD": true, "BODY": true}

// containerTags are the generic wrappers collapsed along with a buried child.
var containerTags = map[string]bool{"DIV": true, "INS": true}

// Buried reports whether el carries the bury declarations.
func Buried(el port.Element) bool {
	st := el.Style()
	return st.Property("display") == "none" && st.Priority("display") == important &&
		st.Property("visibility") == "hidden"
}

// Bury hides el and, when its parent is a small generic container or
// banner-sized, the parent too. It reports whether el was changed.
func (g *Guard) Bury(el port.Element) bool {
	if !g.buryable(el) {
		return false
	}
	changed := false
	if !Buried(el) {
		st := el.Style()
		for _, d := range buryDeclarations {
			st.SetProperty(d[0], d[1], important)
		}
		changed = true
	}
	if parent := el.Parent(); parent != nil && g.collapsibleParent(parent) {
		hideContainer(parent)
	}
	return changed
}

func (g *Guard) buryable(el port.Element) bool {
	if el == nil || neverBury[el.TagName()] {
		return false
	}
	return !g.isBait(el)
}

func (g *Guard) collapsibleParent(parent port.Element) bool {
	if !containerTags[parent.TagName()] || !g.buryable(parent) {
		return false
	}
	if len(parent.Children()) <= 1 {
		return true
	}
	r := parent.Rect()
	_, banner := entity.MatchBannerSize(g.cfg.BannerSizes, r.Width, r.Height, g.cfg.BannerTolerance)
	return banner
}

func hideContainer(el port.Element) {
	st := el.Style()
	if st.Property("display") == "none" && st.Priority("display") == important {
		return
	}
	st.SetProperty("display", "none", important)
	st.SetProperty("width", "0", important)
	st.SetProperty("height", "0", important)
}

// urlAttr is the attribute carrying the resource an element loads.
func urlAttr(tag string) string {
	switch tag {
	case "IMG", "SCRIPT", "IFRAME", "EMBED":
		return "src"
	case "OBJECT":
		return "data"
	case "LINK":
		return "href"
	default:
		return ""
	}
}

// resourceURL reads the URL of a plugin element, which may use either
// data or src.
func resourceURL(el port.Element) string {
	if attr := urlAttr(el.TagName()); attr != "" {
		if v := el.Property(attr); v != "" {
			return v
		}
	}
	if v, ok := el.Attr("data"); ok && v != "" {
		return v
	}
	v, _ := el.Attr("src")
	return v
}

func isFlash(el port.Element) bool {
	t, _ := el.Attr("type")
	return strings.Contains(strings.ToLower(t), "shockwave-flash")
}
