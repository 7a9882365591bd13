// Package converter exports the rule tables and cosmetic selectors in
// formats browsers can enforce natively.
package converter

// WebKitRule is one entry of a WebKit content blocker list.
type WebKitRule struct {
	Trigger Trigger `json:"trigger"`
	Action  Action  `json:"action"`
}

// Trigger selects the loads a rule applies to.
type Trigger struct {
	URLFilter    string   `json:"url-filter"`
	IfDomain     []string `json:"if-domain,omitempty"`
	UnlessDomain []string `json:"unless-domain,omitempty"`
	ResourceType []string `json:"resource-type,omitempty"`
	LoadType     []string `json:"load-type,omitempty"`
}

// Action is what the browser does on a match.
type Action struct {
	Type     string `json:"type"`
	Selector string `json:"selector,omitempty"`
}

const (
	ActionTypeBlock               = "block"
	ActionTypeIgnorePreviousRules = "ignore-previous-rules"
	ActionTypeCSSDisplayNone      = "css-display-none"
)

// matchAll is the url-filter of rules that apply to every page.
const matchAll = ".*"
