package entity

import "strings"

// ResourceType is the kind of resource a request loads.
type ResourceType string

const (
	ResourceDocument    ResourceType = "document"
	ResourceSubdocument ResourceType = "subdocument"
	ResourceScript      ResourceType = "script"
	ResourceImage       ResourceType = "image"
	ResourceStylesheet  ResourceType = "stylesheet"
	ResourceXHR         ResourceType = "xhr"
	ResourceFetch       ResourceType = "fetch"
	ResourceBeacon      ResourceType = "beacon"
	ResourceMedia       ResourceType = "media"
	ResourceObject      ResourceType = "object"
	ResourceOther       ResourceType = "other"
)

// ResourceTypeFromTag maps an element tag name to the resource it loads.
func ResourceTypeFromTag(tag string) ResourceType {
	switch strings.ToUpper(tag) {
	case "IMG":
		return ResourceImage
	case "SCRIPT":
		return ResourceScript
	case "IFRAME", "FRAME":
		return ResourceSubdocument
	case "LINK":
		return ResourceStylesheet
	case "VIDEO", "AUDIO", "SOURCE":
		return ResourceMedia
	case "OBJECT", "EMBED":
		return ResourceObject
	default:
		return ResourceOther
	}
}

// ResourceTypeFromFetchDest maps a Sec-Fetch-Dest header value.
func ResourceTypeFromFetchDest(dest string) ResourceType {
	switch strings.ToLower(strings.TrimSpace(dest)) {
	case "document":
		return ResourceDocument
	case "iframe", "frame":
		return ResourceSubdocument
	case "embed", "object":
		return ResourceObject
	case "script", "worker", "sharedworker", "serviceworker":
		return ResourceScript
	case "image":
		return ResourceImage
	case "style":
		return ResourceStylesheet
	case "audio", "video", "track":
		return ResourceMedia
	case "empty":
		return ResourceXHR
	default:
		return ResourceOther
	}
}

// InterceptedRequest is an outgoing request seen by a network hook.
type InterceptedRequest struct {
	RawURL       string       `json:"url"`
	Method       string       `json:"method"`
	ResourceType ResourceType `json:"resource_type"`
	Referrer     string       `json:"referrer,omitempty"`
}

// IsMainFrame reports whether the request is a top-level navigation.
func (r InterceptedRequest) IsMainFrame() bool {
	return r.ResourceType == ResourceDocument
}
