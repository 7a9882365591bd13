// Package cosmetic builds the element hiding stylesheet injected into pages.
package cosmetic

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/rules"
)

// StyleElementID identifies the injected style element.
const StyleElementID = "adshield-cosmetic"

const hideDeclaration = "{ display: none !important; }"

// Stylesheet holds generic and per-host hiding selectors. Selectors
// that fail to parse are dropped; every rule exempts elements carrying
// rules.BaitAttribute so planted decoys stay visible.
type Stylesheet struct {
	mu      sync.RWMutex
	generic []string
	hosts   map[string][]string
	logger  zerolog.Logger
}

// New creates an empty stylesheet.
func New(logger zerolog.Logger) *Stylesheet {
	return &Stylesheet{
		hosts:  make(map[string][]string),
		logger: logger.With().Str("component", "cosmetic").Logger(),
	}
}

// Default returns the stylesheet of the built-in selector tables.
func Default(logger zerolog.Logger) *Stylesheet {
	s := New(logger)
	s.AddGeneric(rules.AdSelectors...)
	for _, host := range rules.DefaultSpecialHosts {
		s.AddHost(host, rules.SpecialSiteSelectors...)
	}
	return s
}

// Usable reports whether selector parses.
func (s *Stylesheet) Usable(selector string) bool {
	if _, err := cascadia.ParseGroup(selector); err != nil {
		s.logger.Debug().Err(err).Str("selector", selector).Msg("dropping invalid selector")
		return false
	}
	return true
}

func (s *Stylesheet) filter(selectors []string) []string {
	out := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if sel != "" && s.Usable(sel) {
			out = append(out, sel)
		}
	}
	return out
}

// ExemptBait appends the bait exemption to every compound selector of a
// selector group.
func ExemptBait(selector string) string {
	parts := splitGroup(selector)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part) + baitExemption
	}
	return strings.Join(parts, ", ")
}

var baitExemption = ":not([" + rules.BaitAttribute + "])"

// splitGroup splits a selector group on commas outside brackets,
// parentheses and quotes.
func splitGroup(selector string) []string {
	var (
		parts []string
		depth int
		quote rune
		last  int
	)
	for i, r := range selector {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, selector[last:i])
			last = i + 1
		}
	}
	return append(parts, selector[last:])
}

// AddGeneric adds selectors applied on every host.
func (s *Stylesheet) AddGeneric(selectors ...string) {
	kept := s.filter(selectors)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generic = append(s.generic, kept...)
}

// AddHost adds selectors for host and its subdomains.
func (s *Stylesheet) AddHost(host string, selectors ...string) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		s.AddGeneric(selectors...)
		return
	}
	kept := s.filter(selectors)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[host] = append(s.hosts[host], kept...)
}

// Selectors returns the selectors applying to site.
func (s *Stylesheet) Selectors(site entity.SiteContext) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]string(nil), s.generic...)
	seen := make(map[string]bool)
	hosts := make([]string, 0, len(s.hosts))
	for h := range s.hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	for _, h := range hosts {
		if !entity.HostMatches(site.Hostname, h) {
			continue
		}
		for _, sel := range s.hosts[h] {
			if !seen[sel] {
				seen[sel] = true
				out = append(out, sel)
			}
		}
	}
	return out
}

// Generic returns the selectors applied on every host.
func (s *Stylesheet) Generic() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.generic...)
}

// HostSelectors returns a copy of the per-host selectors.
func (s *Stylesheet) HostSelectors() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.hosts))
	for h, sels := range s.hosts {
		out[h] = append([]string(nil), sels...)
	}
	return out
}

// CSS renders the stylesheet text for site.
func (s *Stylesheet) CSS(site entity.SiteContext) string {
	selectors := s.Selectors(site)
	if len(selectors) == 0 {
		return ""
	}
	var b strings.Builder
	// One rule per selector so an unsupported selector only drops itself.
	for _, sel := range selectors {
		fmt.Fprintf(&b, "%s %s\n", ExemptBait(sel), hideDeclaration)
	}
	return b.String()
}

// Inject adds the stylesheet as a style element once per document. It
// reports whether an element was inserted.
func (s *Stylesheet) Inject(doc port.Document, site entity.SiteContext) (bool, error) {
	existing, err := doc.QuerySelector("#" + StyleElementID)
	if err != nil {
		return false, fmt.Errorf("failed to look up stylesheet: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	parent := doc.Head()
	if parent == nil {
		parent = doc.DocumentElement()
	}
	if parent == nil {
		return false, fmt.Errorf("document has no root element")
	}

	style := doc.CreateElement("style")
	if err := style.SetAttr("id", StyleElementID); err != nil {
		return false, fmt.Errorf("failed to tag stylesheet: %w", err)
	}
	style.SetTextContent(s.CSS(site))

	if _, err := parent.AppendChild(style); err != nil {
		return false, fmt.Errorf("failed to insert stylesheet: %w", err)
	}
	return true, nil
}
