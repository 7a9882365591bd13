package converter

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
)

// Format is an export format name.
type Format string

const (
	FormatWebKit Format = "webkit"
	FormatCSS    Format = "css"
	FormatText   Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{FormatWebKit, FormatCSS, FormatText}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Exporter renders a RuleSet and a cosmetic stylesheet.
type Exporter struct {
	rules        *entity.RuleSet
	sheet        *cosmetic.Stylesheet
	specialHosts []string
}

// NewExporter creates an exporter. sheet may be nil.
func NewExporter(rules *entity.RuleSet, sheet *cosmetic.Stylesheet, specialHosts []string) *Exporter {
	return &Exporter{rules: rules, sheet: sheet, specialHosts: specialHosts}
}

// WebKitRules builds the content blocker list. WebKit applies rules in
// order, so network blocks come first, then the first-party and allow
// exceptions, then the cosmetic rules so exceptions never cancel them.
func (e *Exporter) WebKitRules() []WebKitRule {
	var out []WebKitRule

	for _, entry := range append(e.rules.Domains(), e.rules.Paths()...) {
		out = append(out, WebKitRule{
			Trigger: Trigger{URLFilter: urlFilter(entry)},
			Action:  Action{Type: ActionTypeBlock},
		})
	}

	if len(e.specialHosts) > 0 {
		domains := ifDomains(e.specialHosts)
		for _, entry := range e.rules.SpecialFirstParty() {
			out = append(out, WebKitRule{
				Trigger: Trigger{URLFilter: urlFilter(entry), IfDomain: domains},
				Action:  Action{Type: ActionTypeIgnorePreviousRules},
			})
		}
	}

	for _, entry := range e.rules.Allow() {
		out = append(out, WebKitRule{
			Trigger: Trigger{URLFilter: urlFilter(entry)},
			Action:  Action{Type: ActionTypeIgnorePreviousRules},
		})
	}

	for _, sel := range e.genericSelectors() {
		out = append(out, hideRule(sel, nil))
	}
	hosts := e.hostSelectors()
	for _, host := range sortedKeys(hosts) {
		for _, sel := range hosts[host] {
			out = append(out, hideRule(sel, ifDomains([]string{host})))
		}
	}
	return out
}

// WebKitJSON renders WebKitRules as an indented JSON array.
func (e *Exporter) WebKitJSON() ([]byte, error) {
	rules := e.WebKitRules()
	if rules == nil {
		rules = []WebKitRule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode content blocker: %w", err)
	}
	return data, nil
}

// FilterList renders the tables as an Adblock Plus style list. Entries
// are plain substrings, which that syntax matches the same way.
func (e *Exporter) FilterList() string {
	var b strings.Builder
	b.WriteString("[Adblock Plus 2.0]\n! Title: adshield\n")

	section := func(title string) { fmt.Fprintf(&b, "! %s\n", title) }

	section("trackers")
	for _, entry := range append(e.rules.Domains(), e.rules.Paths()...) {
		b.WriteString(entry + "\n")
	}

	if len(e.specialHosts) > 0 && len(e.rules.SpecialFirstParty()) > 0 {
		section("special site first party")
		domains := strings.Join(e.specialHosts, "|")
		for _, entry := range e.rules.SpecialFirstParty() {
			fmt.Fprintf(&b, "@@%s$domain=%s\n", entry, domains)
		}
	}

	section("allow")
	for _, entry := range e.rules.Allow() {
		b.WriteString("@@" + entry + "\n")
	}

	section("cosmetic")
	for _, sel := range e.genericSelectors() {
		b.WriteString("##" + sel + "\n")
	}
	hosts := e.hostSelectors()
	for _, host := range sortedKeys(hosts) {
		for _, sel := range hosts[host] {
			fmt.Fprintf(&b, "%s##%s\n", host, sel)
		}
	}
	return b.String()
}

// Export writes the rules in format. The css format renders the
// stylesheet of site.
func (e *Exporter) Export(w io.Writer, format Format, site entity.SiteContext) error {
	var data []byte
	switch format {
	case FormatWebKit:
		raw, err := e.WebKitJSON()
		if err != nil {
			return err
		}
		data = append(raw, '\n')
	case FormatCSS:
		if e.sheet != nil {
			data = []byte(e.sheet.CSS(site))
		}
	case FormatText:
		data = []byte(e.FilterList())
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

// genericSelectors adds image hiding for banner keywords to the
// stylesheet's generic selectors. Banner verdicts are never blocked
// at the network level.
func (e *Exporter) genericSelectors() []string {
	var sels []string
	if e.sheet != nil {
		sels = e.sheet.Generic()
	}
	for _, kw := range e.rules.BannerKeywords() {
		sels = append(sels, fmt.Sprintf("img[src*=%q]", kw))
	}
	return dedupe(sels)
}

func (e *Exporter) hostSelectors() map[string][]string {
	if e.sheet == nil {
		return nil
	}
	hosts := e.sheet.HostSelectors()
	for h, sels := range hosts {
		hosts[h] = dedupe(sels)
	}
	return hosts
}

func urlFilter(entry string) string {
	return regexp.QuoteMeta(entry)
}

func ifDomains(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, "*"+strings.ToLower(strings.TrimSpace(h)))
	}
	return out
}

func hideRule(selector string, domains []string) WebKitRule {
	return WebKitRule{
		Trigger: Trigger{URLFilter: matchAll, IfDomain: domains},
		Action:  Action{Type: ActionTypeCSSDisplayNone, Selector: selector},
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
