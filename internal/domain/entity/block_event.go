package entity

import (
	"errors"
	"time"
)

// BlockSource identifies which layer blocked a request.
type BlockSource string

const (
	SourceNetworkHook BlockSource = "network_hook"
	SourceProxy       BlockSource = "proxy"
	SourcePage        BlockSource = "page"
)

// BlockEvent records a single blocked request.
type BlockEvent struct {
	ID           int64        `json:"id"`
	URL          string       `json:"url"`
	Host         string       `json:"host"`
	PageHost     string       `json:"page_host"`
	Verdict      Verdict      `json:"verdict"`
	ResourceType ResourceType `json:"resource_type"`
	Source       BlockSource  `json:"source"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Validate checks the fields required for persistence.
func (e *BlockEvent) Validate() error {
	if e.URL == "" {
		return errors.New("block event url is required")
	}
	if !e.Verdict.Blocked() {
		return errors.New("block event verdict must be a block")
	}
	return nil
}

// HostCount aggregates blocked requests per host.
type HostCount struct {
	Host  string `json:"host"`
	Count int64  `json:"count"`
}

// BlockStats summarizes recorded block events.
type BlockStats struct {
	Total    int64       `json:"total"`
	Trackers int64       `json:"trackers"`
	Banners  int64       `json:"banners"`
	TopHosts []HostCount `json:"top_hosts"`
}

// SiteBypass disables the shield for a page host.
type SiteBypass struct {
	Host      string    `json:"host"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
