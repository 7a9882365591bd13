package domguard

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/rules"
)

const (
	bannerCandidates = "div, iframe, ins, object, embed"
	bannerPayload    = "iframe, object, embed, ins.adsbygoogle"
	labelCandidates  = "div, span"
	// minContentText is the text length above which a banner-sized
	// container is only hidden when its class or id looks like an ad.
	minContentText = 10
	// maxPluginWrapperChildren bounds the DIV ancestors collapsed above
	// a plugin.
	maxPluginWrapperChildren = 2
)

var (
	pluginWrapperStop = map[string]bool{"BODY": true, "HTML": true}
	adTokens          = []string{"ad", "banner", "sponsor"}
	embeddedTags      = map[string]bool{"IFRAME": true, "INS": true, "OBJECT": true, "EMBED": true}
)

// querier is a document or an element.
type querier interface {
	QuerySelectorAll(selector string) ([]port.Element, error)
}

// Sweep runs the periodic pass over the installed document.
func (g *Guard) Sweep() {
	if g.env == nil {
		return
	}
	var rep Report
	g.sweep(g.env.Document(), &rep)
	if rep.Buried > 0 || rep.Neutralized > 0 {
		g.logger.Debug().Int("buried", rep.Buried).Int("neutralized", rep.Neutralized).Msg("sweep")
	}
}

// Sanitize neutralizes and hides the ads under root in one pass,
// without hooks or timers.
func (g *Guard) Sanitize(root port.Element) Report {
	var rep Report
	if root == nil {
		return rep
	}
	g.safely("sanitize", func() {
		g.neutralize(root, &rep)
		g.buryMatches(root, &rep)
		g.sweep(root, &rep)
	})
	return rep
}

func (g *Guard) sweep(scope querier, rep *Report) {
	g.each(scope, urlBearing, "sweep resource", func(el port.Element) {
		g.neutralize(el, rep)
	})

	if g.selector != "" {
		g.each(scope, g.selector, "sweep cosmetic", func(el port.Element) {
			if el.Visible() {
				rep.buried(g.Bury(el))
			}
		})
	}

	g.each(scope, "img[src]", "sweep image", func(el port.Element) {
		if el.Visible() && g.classify(el.Property("src")).Blocked() {
			rep.buried(g.Bury(el))
		}
	})

	g.each(scope, "object, embed", "sweep plugin", func(el port.Element) {
		if !g.classify(resourceURL(el)).Blocked() && !isFlash(el) {
			return
		}
		rep.buried(g.Bury(el))
		for p := el.Parent(); p != nil && !pluginWrapperStop[p.TagName()]; p = p.Parent() {
			if p.TagName() == "DIV" && len(p.Children()) <= maxPluginWrapperChildren {
				rep.buried(g.Bury(p))
			}
		}
	})

	if !g.site.IsSpecialSite {
		g.each(scope, bannerCandidates, "sweep banner size", func(el port.Element) {
			g.sweepBannerSize(el, rep)
		})
	}

	g.each(scope, labelCandidates, "sweep label", func(el port.Element) {
		if !el.Visible() || !g.isAdLabel(el.TextContent()) {
			return
		}
		rep.buried(g.Bury(el))
		if p := el.Parent(); p != nil {
			rep.buried(g.Bury(p))
		}
	})

	if g.site.IsSpecialSite {
		g.sweepSpecial(scope, rep)
	}
}

func (g *Guard) sweepBannerSize(el port.Element, rep *Report) {
	if !el.Visible() {
		return
	}
	r := el.Rect()
	if _, ok := entity.MatchBannerSize(g.cfg.BannerSizes, r.Width, r.Height, g.cfg.BannerTolerance); !ok {
		return
	}
	if g.looksEmbedded(el) {
		rep.buried(g.Bury(el))
		if p := el.Parent(); p != nil {
			rep.buried(g.Bury(p))
		}
		return
	}
	names := strings.ToLower(el.ClassName() + " " + el.ID())
	for _, tok := range adTokens {
		if strings.Contains(names, tok) {
			rep.buried(g.Bury(el))
			return
		}
	}
}

// looksEmbedded reports a banner-sized element that is itself an embed
// or holds little besides one.
func (g *Guard) looksEmbedded(el port.Element) bool {
	if embeddedTags[el.TagName()] || len(el.Children()) == 0 {
		return true
	}
	if inner, err := el.QuerySelector(bannerPayload); err == nil && inner != nil {
		return true
	}
	return utf8.RuneCountInString(el.TextContent()) < minContentText
}

func (g *Guard) isAdLabel(text string) bool {
	if utf8.RuneCountInString(text) >= g.cfg.MaxLabelLength {
		return false
	}
	text = strings.ToLower(strings.TrimSpace(text))
	return text != "" && slices.Contains(g.cfg.AdLabels, text)
}

func (g *Guard) sweepSpecial(scope querier, rep *Report) {
	g.each(scope, strings.Join(rules.SpecialFeedSelectors, ", "), "sweep feed", func(el port.Element) {
		text := strings.ToUpper(el.TextContent())
		for _, marker := range rules.SponsoredMarkers {
			if strings.Contains(text, marker) {
				rep.buried(g.Bury(el))
				return
			}
		}
	})

	found := false
	enforcement := strings.Join(append(append([]string(nil), rules.EnforcementSelectors...), rules.EnforcementBackdrops...), ", ")
	g.each(scope, enforcement, "sweep enforcement", func(el port.Element) {
		if g.Bury(el) {
			rep.buried(true)
			found = true
		}
	})
	g.each(scope, strings.Join(rules.EnforcementDialogs, ", "), "sweep dialog", func(el port.Element) {
		text := strings.ToLower(el.TextContent())
		for _, kw := range rules.EnforcementKeywords {
			if strings.Contains(text, kw) {
				if g.Bury(el) {
					rep.buried(true)
					found = true
				}
				return
			}
		}
	})
	if found {
		g.resume(scope)
	}
}

// resume restarts the video an enforcement dialog paused and unlocks
// page scrolling.
func (g *Guard) resume(scope querier) {
	g.each(scope, "video", "resume video", func(el port.Element) {
		m, ok := el.Media()
		if !ok || !m.Paused() {
			return
		}
		if err := m.Play(); err != nil {
			g.logger.Debug().Err(err).Msg("failed to resume video")
		}
	})
	if g.env == nil {
		return
	}
	doc := g.env.Document()
	for _, el := range []port.Element{doc.DocumentElement(), doc.Body()} {
		if el != nil {
			el.Style().SetProperty("overflow", "", "")
		}
	}
}

// each runs fn on every match of selector under scope, skipping
// elements whose handling fails.
func (g *Guard) each(scope querier, selector, what string, fn func(el port.Element)) {
	els, err := scope.QuerySelectorAll(selector)
	if err != nil {
		g.logger.Debug().Err(err).Str("op", what).Msg("selector rejected")
		return
	}
	for _, el := range els {
		g.safely(what, func() { fn(el) })
	}
}
