// Package payload strips ad data from special-site player API responses.
package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/filtering/rules"
)

// DefaultMaxDepth bounds the walk through nested responses.
const DefaultMaxDepth = 10

// adKeys carry ad data at any walked level.
var adKeys = []string{
	"adPlacements",
	"adSlots",
	"playerAds",
	"adBreakParams",
	"adBreakHeartbeatParams",
	"adBreakRenderer",
}

var enforcementRenderers = []string{"bkaEnforcementMessageViewModel", "enforcementMessageViewModel"}

var trackingURLs = []string{"ptrackingUrl", "qoeUrl", "atrUrl"}

// nestedResponses hold a full response one level down.
var nestedResponses = []string{"playerResponse", "response"}

const actionsKey = "onResponseReceivedActions"

// Sanitizer removes known ad-carrying fields from player payloads.
// It never fails: unparseable input is returned unchanged.
type Sanitizer struct {
	maxDepth  int
	endpoints []string
	logger    zerolog.Logger
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithMaxDepth sets the nesting bound; non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(s *Sanitizer) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithEndpoints replaces the player endpoint path list.
func WithEndpoints(endpoints []string) Option {
	return func(s *Sanitizer) {
		if len(endpoints) > 0 {
			s.endpoints = append([]string(nil), endpoints...)
		}
	}
}

// New creates a sanitizer.
func New(logger zerolog.Logger, opts ...Option) *Sanitizer {
	s := &Sanitizer{
		maxDepth:  DefaultMaxDepth,
		endpoints: append([]string(nil), rules.PlayerEndpoints...),
		logger:    logger.With().Str("component", "payload-sanitizer").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsPlayerEndpoint reports whether rawURL targets a sanitized API endpoint.
func (s *Sanitizer) IsPlayerEndpoint(rawURL string) bool {
	for _, ep := range s.endpoints {
		if strings.Contains(rawURL, ep) {
			return true
		}
	}
	return false
}

// Sanitize strips ad fields from obj in place and returns it.
func (s *Sanitizer) Sanitize(obj map[string]any) map[string]any {
	if obj != nil {
		s.walk(mapNode(obj), 0)
	}
	return obj
}

// Strip removes ad fields from obj in place. It implements
// port.PayloadStripper.
func (s *Sanitizer) Strip(obj port.ObjectNode) bool {
	if obj == nil {
		return false
	}
	return s.walk(obj, 0)
}

func (s *Sanitizer) walk(obj port.ObjectNode, depth int) bool {
	if depth > s.maxDepth {
		return false
	}

	changed := false
	for _, key := range adKeys {
		if !obj.Has(key) {
			continue
		}
		if n, isArr := obj.Array(key); isArr {
			if n > 0 {
				obj.ClearArray(key)
				changed = true
			}
			continue
		}
		obj.Delete(key)
		changed = true
	}

	if aux, ok := obj.Object("auxiliaryUi"); ok {
		if renderers, ok := aux.Object("messageRenderers"); ok {
			changed = deleteKeys(renderers, enforcementRenderers) || changed
		}
	}
	if tracking, ok := obj.Object("playbackTracking"); ok {
		changed = deleteKeys(tracking, trackingURLs) || changed
	}

	for _, key := range nestedResponses {
		if nested, ok := obj.Object(key); ok {
			changed = s.walk(nested, depth+1) || changed
		}
	}
	for _, action := range obj.Objects(actionsKey) {
		changed = s.walk(action, depth+1) || changed
	}
	return changed
}

func deleteKeys(obj port.ObjectNode, keys []string) bool {
	changed := false
	for _, key := range keys {
		if obj.Has(key) {
			obj.Delete(key)
			changed = true
		}
	}
	return changed
}

// SanitizeBody parses raw as a JSON object and strips ad fields. It
// returns raw itself and false when parsing fails or nothing was removed.
func (s *Sanitizer) SanitizeBody(raw []byte) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return raw, false
	}
	if dec.More() {
		return raw, false
	}
	if !s.walk(mapNode(obj), 0) {
		return raw, false
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		s.logger.Debug().Err(err).Msg("failed to re-encode payload")
		return raw, false
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), true
}

// SanitizeString is SanitizeBody for string payloads.
func (s *Sanitizer) SanitizeString(body string) string {
	out, changed := s.SanitizeBody([]byte(body))
	if !changed {
		return body
	}
	return string(out)
}
