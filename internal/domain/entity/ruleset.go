package entity

import "strings"

// RuleTables is the mutable, serializable form of a RuleSet.
type RuleTables struct {
	Domains           []string `json:"domains" mapstructure:"domains"`
	Paths             []string `json:"paths" mapstructure:"paths"`
	BannerKeywords    []string `json:"banner_keywords" mapstructure:"banner_keywords"`
	Allow             []string `json:"allow" mapstructure:"allow"`
	SpecialFirstParty []string `json:"special_first_party" mapstructure:"special_first_party"`
}

// RuleSet holds the lower-cased substring tables used by the classifier.
// A RuleSet is immutable once built; accessors return copies.
type RuleSet struct {
	domains []string
	paths   []string
	banners []string
	allow   []string
	special []string
}

// NewRuleSet normalizes the tables: entries are trimmed, lower-cased and
// de-duplicated, and empty entries are dropped.
func NewRuleSet(t RuleTables) *RuleSet {
	return &RuleSet{
		domains: normalizeTable(t.Domains),
		paths:   normalizeTable(t.Paths),
		banners: normalizeTable(t.BannerKeywords),
		allow:   normalizeTable(t.Allow),
		special: normalizeTable(t.SpecialFirstParty),
	}
}

func normalizeTable(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, entry := range in {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}

func cloneTable(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (r *RuleSet) Domains() []string           { return cloneTable(r.domains) }
func (r *RuleSet) Paths() []string             { return cloneTable(r.paths) }
func (r *RuleSet) BannerKeywords() []string    { return cloneTable(r.banners) }
func (r *RuleSet) Allow() []string             { return cloneTable(r.allow) }
func (r *RuleSet) SpecialFirstParty() []string { return cloneTable(r.special) }

// Tables returns a copy of every table.
func (r *RuleSet) Tables() RuleTables {
	return RuleTables{
		Domains:           r.Domains(),
		Paths:             r.Paths(),
		BannerKeywords:    r.BannerKeywords(),
		Allow:             r.Allow(),
		SpecialFirstParty: r.SpecialFirstParty(),
	}
}

// Merge returns a new RuleSet containing r's entries followed by extra's.
func (r *RuleSet) Merge(extra RuleTables) *RuleSet {
	return NewRuleSet(RuleTables{
		Domains:           append(r.Domains(), extra.Domains...),
		Paths:             append(r.Paths(), extra.Paths...),
		BannerKeywords:    append(r.BannerKeywords(), extra.BannerKeywords...),
		Allow:             append(r.Allow(), extra.Allow...),
		SpecialFirstParty: append(r.SpecialFirstParty(), extra.SpecialFirstParty...),
	})
}

// Len is the total number of entries across all tables.
func (r *RuleSet) Len() int {
	return len(r.domains) + len(r.paths) + len(r.banners) + len(r.allow) + len(r.special)
}
