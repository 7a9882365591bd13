// Package entity defines the shield domain entities.
package entity

import "fmt"

// Verdict is the outcome of classifying a single URL.
// It is derived per call and never cached.
type Verdict int

const (
	// VerdictAllowed lets the request or element through untouched.
	VerdictAllowed Verdict = iota
	// VerdictBlockedTracker means the URL hit the domain or path table.
	VerdictBlockedTracker
	// VerdictBlockedBanner means the URL only looks like an ad image.
	VerdictBlockedBanner
)

// String returns the canonical upper-case name.
func (v Verdict) String() string {
	switch v {
	case VerdictAllowed:
		return "ALLOWED"
	case VerdictBlockedTracker:
		return "BLOCKED_TRACKER"
	case VerdictBlockedBanner:
		return "BLOCKED_BANNER"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Blocked reports whether the verdict is any kind of block.
func (v Verdict) Blocked() bool {
	return v == VerdictBlockedTracker || v == VerdictBlockedBanner
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict parses the canonical name produced by String.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "ALLOWED":
		return VerdictAllowed, nil
	case "BLOCKED_TRACKER":
		return VerdictBlockedTracker, nil
	case "BLOCKED_BANNER":
		return VerdictBlockedBanner, nil
	default:
		return VerdictAllowed, fmt.Errorf("unknown verdict %q", s)
	}
}

// RuleTable names the table that produced a verdict.
type RuleTable string

const (
	TableNone       RuleTable = ""
	TableScheme     RuleTable = "scheme"
	TableAllow      RuleTable = "allow"
	TableFirstParty RuleTable = "first_party"
	TableDomain     RuleTable = "domain"
	TablePath       RuleTable = "path"
	TableBanner     RuleTable = "banner"
)

// Match explains a classification: the verdict plus the table and
// pattern that decided it. Pattern is empty when no table matched.
type Match struct {
	Verdict Verdict   `json:"verdict"`
	Table   RuleTable `json:"table,omitempty"`
	Pattern string    `json:"pattern,omitempty"`
}
