// Package service contains pure domain services.
package service

import (
	"errors"
	"strings"

	"github.com/bnema/adshield/internal/domain/entity"
)

var errBuildPanicked = errors.New("matcher build panicked")

var pseudoSchemes = []string{"data:", "blob:", "javascript:"}

// Classifier decides whether a URL is a tracker, a banner or allowed.
// It is safe for concurrent use and never mutates its RuleSet.
type Classifier struct {
	rules   *entity.RuleSet
	allow   *substringMatcher
	special *substringMatcher
	domains *substringMatcher
	paths   *substringMatcher
	banners *substringMatcher
}

// NewClassifier compiles the matchers for rules.
func NewClassifier(rules *entity.RuleSet) *Classifier {
	if rules == nil {
		rules = entity.NewRuleSet(entity.RuleTables{})
	}
	return &Classifier{
		rules:   rules,
		allow:   newSubstringMatcher(rules.Allow()),
		special: newSubstringMatcher(rules.SpecialFirstParty()),
		domains: newSubstringMatcher(rules.Domains()),
		paths:   newSubstringMatcher(rules.Paths()),
		banners: newSubstringMatcher(rules.BannerKeywords()),
	}
}

// Rules returns the RuleSet the classifier was built from.
func (c *Classifier) Rules() *entity.RuleSet {
	return c.rules
}

// Classify returns the verdict for rawURL on site.
func (c *Classifier) Classify(rawURL string, site entity.SiteContext) entity.Verdict {
	return c.Explain(rawURL, site).Verdict
}

// Explain classifies rawURL and reports which table decided.
//
// Order: pseudo-URL schemes, allow-list, special-site first party,
// domains, paths, banner keywords. Allow entries always win.
func (c *Classifier) Explain(rawURL string, site entity.SiteContext) entity.Match {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return entity.Match{Verdict: entity.VerdictAllowed, Table: entity.TableScheme}
	}

	u := strings.ToLower(trimmed)
	for _, scheme := range pseudoSchemes {
		if strings.HasPrefix(u, scheme) {
			return entity.Match{Verdict: entity.VerdictAllowed, Table: entity.TableScheme, Pattern: scheme}
		}
	}

	if p, ok := c.allow.find(u); ok {
		return entity.Match{Verdict: entity.VerdictAllowed, Table: entity.TableAllow, Pattern: p}
	}
	if site.IsSpecialSite {
		if p, ok := c.special.find(u); ok {
			return entity.Match{Verdict: entity.VerdictAllowed, Table: entity.TableFirstParty, Pattern: p}
		}
	}
	if p, ok := c.domains.find(u); ok {
		return entity.Match{Verdict: entity.VerdictBlockedTracker, Table: entity.TableDomain, Pattern: p}
	}
	if p, ok := c.paths.find(u); ok {
		return entity.Match{Verdict: entity.VerdictBlockedTracker, Table: entity.TablePath, Pattern: p}
	}
	if p, ok := c.banners.find(u); ok {
		return entity.Match{Verdict: entity.VerdictBlockedBanner, Table: entity.TableBanner, Pattern: p}
	}
	return entity.Match{Verdict: entity.VerdictAllowed}
}

// IsBlocked reports a tracker verdict, the only one that justifies
// cancelling a network request.
func (c *Classifier) IsBlocked(rawURL string, site entity.SiteContext) bool {
	return c.Classify(rawURL, site) == entity.VerdictBlockedTracker
}

// IsAdResource reports a tracker or banner verdict, used for elements.
func (c *Classifier) IsAdResource(rawURL string, site entity.SiteContext) bool {
	return c.Classify(rawURL, site).Blocked()
}
