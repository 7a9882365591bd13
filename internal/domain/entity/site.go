package entity

import (
	"net/url"
	"strings"
)

// ReadyState mirrors document.readyState.
type ReadyState string

const (
	ReadyStateLoading     ReadyState = "loading"
	ReadyStateInteractive ReadyState = "interactive"
	ReadyStateComplete    ReadyState = "complete"
)

// ParseReadyState normalizes a textual ready state, defaulting to loading.
func ParseReadyState(s string) ReadyState {
	switch ReadyState(strings.ToLower(strings.TrimSpace(s))) {
	case ReadyStateInteractive:
		return ReadyStateInteractive
	case ReadyStateComplete:
		return ReadyStateComplete
	default:
		return ReadyStateLoading
	}
}

// SiteContext describes the page a shield instance runs in.
type SiteContext struct {
	Hostname      string     `json:"hostname"`
	IsSpecialSite bool       `json:"is_special_site"`
	ReadyState    ReadyState `json:"ready_state"`
}

// NewSiteContext builds a context, flagging the special site when the
// hostname equals or is a subdomain of one of specialHosts.
func NewSiteContext(hostname string, state ReadyState, specialHosts []string) SiteContext {
	host := normalizeHost(hostname)
	special := false
	for _, h := range specialHosts {
		if HostMatches(host, h) {
			special = true
			break
		}
	}
	return SiteContext{Hostname: host, IsSpecialSite: special, ReadyState: state}
}

// SiteFromURL derives the SiteContext for a page URL.
func SiteFromURL(rawURL string, state ReadyState, specialHosts []string) SiteContext {
	return NewSiteContext(HostOf(rawURL), state, specialHosts)
}

// IsLoading reports whether the document is still being parsed.
func (s SiteContext) IsLoading() bool {
	return s.ReadyState == "" || s.ReadyState == ReadyStateLoading
}

// HostMatches reports whether host equals domain or is one of its subdomains.
func HostMatches(host, domain string) bool {
	host = normalizeHost(host)
	domain = normalizeHost(domain)
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// HostOf extracts the lower-cased hostname of rawURL, or "" when unparsable.
func HostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return normalizeHost(u.Hostname())
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSuffix(h, ".")
	return strings.TrimPrefix(h, "www.")
}
