package netguard

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering/payload"
)

// DefaultMaxBodyBytes bounds the player responses read for sanitizing.
const DefaultMaxBodyBytes = 8 << 20

// BlockedError is returned by Transport for suppressed requests.
type BlockedError struct {
	URL     string
	Verdict entity.Verdict
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked (%s): %s", e.Verdict, e.URL)
}

// Unwrap makes BlockedError match ErrNetwork.
func (e *BlockedError) Unwrap() error { return ErrNetwork }

// Transport applies classification to Go HTTP clients. The page is taken
// from the request's Referer, falling back to the request host.
type Transport struct {
	Base         http.RoundTripper
	Classifier   *service.Classifier
	Sanitizer    *payload.Sanitizer
	SpecialHosts []string
	MaxBodyBytes int64
	OnBlock      BlockHandler
}

var _ http.RoundTripper = (*Transport)(nil)

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rawURL := req.URL.String()
	site := SiteForRequest(req, t.SpecialHosts)

	if verdict := t.Classifier.Classify(rawURL, site); verdict == entity.VerdictBlockedTracker {
		if t.OnBlock != nil {
			t.OnBlock(rawURL, entity.ResourceOther, verdict)
		}
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, &BlockedError{URL: rawURL, Verdict: verdict}
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if t.Sanitizer == nil || !site.IsSpecialSite || !t.Sanitizer.IsPlayerEndpoint(rawURL) {
		return resp, nil
	}
	return t.sanitize(resp)
}

func (t *Transport) sanitize(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}
	if enc := resp.Header.Get("Content-Encoding"); enc != "" && enc != "identity" {
		return resp, nil
	}

	limit := t.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	orig := resp.Body
	body, err := io.ReadAll(io.LimitReader(orig, limit+1))
	if err != nil {
		_ = orig.Close()
		return nil, fmt.Errorf("failed to read player response: %w", err)
	}
	if int64(len(body)) > limit {
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(body), orig), orig}
		return resp, nil
	}
	_ = orig.Close()

	out, _ := t.Sanitizer.SanitizeBody(body)
	resp.Body = io.NopCloser(bytes.NewReader(out))
	resp.ContentLength = int64(len(out))
	resp.Header.Set("Content-Length", strconv.Itoa(len(out)))
	return resp, nil
}

// SiteForRequest derives the page context a request was made from.
func SiteForRequest(req *http.Request, specialHosts []string) entity.SiteContext {
	if ref := req.Header.Get("Referer"); ref != "" {
		if host := entity.HostOf(ref); host != "" {
			return entity.NewSiteContext(host, entity.ReadyStateComplete, specialHosts)
		}
	}
	if origin := req.Header.Get("Origin"); origin != "" {
		if host := entity.HostOf(origin); host != "" {
			return entity.NewSiteContext(host, entity.ReadyStateComplete, specialHosts)
		}
	}
	return entity.NewSiteContext(req.URL.Hostname(), entity.ReadyStateComplete, specialHosts)
}
