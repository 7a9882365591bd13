package payload

import (
	"fmt"
	"net/http"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/filtering/rules"
)

var _ port.PayloadStripper = (*Sanitizer)(nil)

// FetchHook wraps next so player endpoint responses are sanitized before
// the caller sees them. Non-OK responses and other URLs pass through.
func (s *Sanitizer) FetchHook(next port.Fetcher) port.Fetcher {
	return port.FetcherFunc(func(req *port.Request, done port.FetchCallback) error {
		if req == nil || !s.IsPlayerEndpoint(req.URL) {
			return next.Fetch(req, done)
		}
		return next.Fetch(req, func(resp *port.Response, err error) {
			if err != nil || !resp.OK() {
				done(resp, err)
				return
			}
			body, changed := s.SanitizeBody(resp.Body)
			if !changed {
				done(resp, nil)
				return
			}
			s.logger.Debug().Str("url", req.URL).Msg("stripped ad data from player response")
			done(&port.Response{
				URL:        resp.URL,
				Status:     resp.Status,
				StatusText: resp.StatusText,
				Header:     withoutLength(resp.Header),
				Body:       body,
			}, nil)
		})
	})
}

// XHRHook wraps next so XHRs opened on a player endpoint expose a
// sanitized response text.
func (s *Sanitizer) XHRHook(next port.XHRFactory) port.XHRFactory {
	return func() port.XHR {
		return &sanitizingXHR{XHR: next(), sanitizer: s}
	}
}

type sanitizingXHR struct {
	port.XHR
	sanitizer *Sanitizer
	url       string
	player    bool
	clean     bool
}

func (x *sanitizingXHR) Open(method, rawURL string) error {
	x.url = rawURL
	x.player = x.sanitizer.IsPlayerEndpoint(rawURL)
	x.clean = false
	return x.XHR.Open(method, rawURL)
}

// ResponseText strips the loaded body on first read. Partial or non-JSON
// bodies are left for a later read.
func (x *sanitizingXHR) ResponseText() string {
	text := x.XHR.ResponseText()
	if !x.player || x.clean || text == "" {
		return text
	}
	out, changed := x.sanitizer.SanitizeBody([]byte(text))
	if !changed {
		return text
	}
	x.clean = true
	x.sanitizer.logger.Debug().Str("url", x.url).Msg("stripped ad data from player xhr")
	x.XHR.SetResponseText(string(out))
	return string(out)
}

func withoutLength(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	out.Del("Content-Length")
	return out
}

// TrapGlobals installs assignment traps on the inline bootstrap payloads
// so they are sanitized before page scripts read them.
func (s *Sanitizer) TrapGlobals(realm port.Realm) error {
	for _, name := range rules.TrappedGlobals {
		if err := realm.TrapPayload(name, s); err != nil {
			return fmt.Errorf("failed to trap %s: %w", name, err)
		}
	}
	return nil
}
