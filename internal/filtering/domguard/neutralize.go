package domguard

import (
	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
)

// urlBearing matches the descendants neutralize inspects.
const urlBearing = "script[src], img[src], iframe[src], object, embed, link[href]"

// Report counts what a pass changed.
type Report struct {
	Neutralized int `json:"neutralized"`
	Buried      int `json:"buried"`
}

func (r *Report) neutralized() {
	if r != nil {
		r.Neutralized++
	}
}

func (r *Report) buried(changed bool) {
	if r != nil && changed {
		r.Buried++
	}
}

// neutralizeTree neutralizes root and its URL-bearing descendants.
func (g *Guard) neutralizeTree(root port.Element, rep *Report) {
	g.neutralize(root, rep)
	g.each(root, urlBearing, "neutralize descendant", func(el port.Element) {
		g.neutralize(el, rep)
	})
}

// neutralize disables one element whose resource is blocked. Scripts,
// iframes and stylesheets need a tracker verdict; images and plugins
// any ad verdict, and flash plugins are always disabled.
func (g *Guard) neutralize(el port.Element, rep *Report) {
	tag := el.TagName()
	switch tag {
	case "SCRIPT":
		src := el.Property("src")
		if v := g.classify(src); isTracker(v) {
			g.report(src, tag, v)
			g.setAttr(el, "type", BlockedScriptType)
			g.removeAttr(el, "src")
			el.SetTextContent("")
			g.fail(el)
			rep.neutralized()
		}
	case "IMG":
		src := el.Property("src")
		if v := g.classify(src); v.Blocked() {
			g.report(src, tag, v)
			rep.buried(g.Bury(el))
			g.removeAttr(el, "src")
			rep.neutralized()
		}
	case "IFRAME":
		src := el.Property("src")
		if v := g.classify(src); isTracker(v) {
			g.report(src, tag, v)
			rep.buried(g.Bury(el))
			g.removeAttr(el, "src")
			rep.neutralized()
		}
	case "OBJECT", "EMBED":
		src := resourceURL(el)
		v := g.classify(src)
		if !v.Blocked() && !isFlash(el) {
			return
		}
		if v.Blocked() {
			g.report(src, tag, v)
		}
		rep.buried(g.Bury(el))
		g.removeAttr(el, urlAttr(tag))
		rep.neutralized()
	case "LINK":
		href := el.Property("href")
		if v := g.classify(href); isTracker(v) {
			g.report(href, tag, v)
			g.removeAttr(el, "href")
			rep.neutralized()
		}
	}
}

func (g *Guard) classify(rawURL string) entity.Verdict {
	if rawURL == "" {
		return entity.VerdictAllowed
	}
	return g.classifier.Classify(rawURL, g.site)
}

// buryMatches buries el and its descendants that match a cosmetic selector.
func (g *Guard) buryMatches(el port.Element, rep *Report) {
	if g.selector == "" {
		return
	}
	if ok, err := el.Matches(g.selector); err != nil {
		g.logger.Debug().Err(err).Msg("cosmetic selector rejected")
		return
	} else if ok {
		rep.buried(g.Bury(el))
	}
	g.each(el, g.selector, "bury match", func(m port.Element) {
		rep.buried(g.Bury(m))
	})
}

func (g *Guard) setAttr(el port.Element, name, value string) {
	if err := el.SetAttr(name, value); err != nil {
		g.logger.Debug().Err(err).Str("attr", name).Msg("failed to set attribute")
	}
}

func (g *Guard) removeAttr(el port.Element, name string) {
	if name == "" {
		return
	}
	if err := el.RemoveAttr(name); err != nil {
		g.logger.Debug().Err(err).Str("attr", name).Msg("failed to remove attribute")
	}
}
