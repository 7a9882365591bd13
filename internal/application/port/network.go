package port

import (
	"net/http"
)

// Request is a page-initiated fetch.
type Request struct {
	URL    string
	Method string
	Header http.Header
	Body   []byte
}

// Response is what a fetch resolves with.
type Response struct {
	URL        string
	Status     int
	StatusText string
	Header     http.Header
	Body       []byte
}

// OK mirrors Response.ok: status in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// FetchCallback settles a fetch: exactly one of resp and err is non-nil.
// It is always invoked on a later task, never synchronously.
type FetchCallback func(resp *Response, err error)

// Fetcher is the page's fetch primitive. A returned error is a
// synchronous throw (malformed input) and is never wrapped.
type Fetcher interface {
	Fetch(req *Request, done FetchCallback) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(req *Request, done FetchCallback) error

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(req *Request, done FetchCallback) error {
	return f(req, done)
}

// XHR is one XMLHttpRequest-like instance.
type XHR interface {
	Open(method, url string) error
	Send(body []byte) error
	AddEventListener(event string, fn func())
	DispatchEvent(event string)
	// ResponseText is the loaded body, empty before the response.
	ResponseText() string
	// SetResponseText replaces the body seen by later readers.
	SetResponseText(text string)
}

// XHRFactory creates XHR instances, like `new XMLHttpRequest()`.
type XHRFactory func() XHR

// Beacon is navigator.sendBeacon; it reports whether the data was queued.
type Beacon func(url string, data []byte) (bool, error)

// Window is an opened browsing context.
type Window interface {
	Location() string
}

// Opener is window.open. A nil Window means the popup was not opened.
type Opener func(url, target string) (Window, error)

// NetworkEnv exposes the page's swappable network primitives.
type NetworkEnv interface {
	Fetcher() Fetcher
	SetFetcher(Fetcher)
	XHRFactory() XHRFactory
	SetXHRFactory(XHRFactory)
	Beacon() Beacon
	SetBeacon(Beacon)
	Opener() Opener
	SetOpener(Opener)
}
