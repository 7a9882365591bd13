package htmldom

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bnema/adshield/internal/application/port"
)

// ErrInvalidXHRState is returned by Send before Open or after a send.
var ErrInvalidXHRState = errors.New("xhr: invalid state")

// XHR is an XMLHttpRequest that sends through a page fetcher and
// settles on the fetcher's later task.
type XHR struct {
	fetcher   port.Fetcher
	method    string
	url       string
	opened    bool
	sent      bool
	status    int
	text      string
	listeners map[string][]func()
}

var _ port.XHR = (*XHR)(nil)

// NewXHRFactory returns a factory of XHRs sending through fetcher.
func NewXHRFactory(fetcher port.Fetcher) port.XHRFactory {
	return func() port.XHR {
		return &XHR{fetcher: fetcher, listeners: make(map[string][]func())}
	}
}

// Open implements port.XHR.
func (x *XHR) Open(method, url string) error {
	if url == "" {
		return errors.New("xhr: empty url")
	}
	if method == "" {
		method = http.MethodGet
	}
	x.method = strings.ToUpper(method)
	x.url = url
	x.opened, x.sent = true, false
	x.status, x.text = 0, ""
	return nil
}

// Send implements port.XHR.
func (x *XHR) Send(body []byte) error {
	if !x.opened || x.sent {
		return ErrInvalidXHRState
	}
	x.sent = true
	return x.fetcher.Fetch(&port.Request{URL: x.url, Method: x.method, Body: body}, func(resp *port.Response, err error) {
		if err != nil {
			x.DispatchEvent("error")
			x.DispatchEvent("loadend")
			return
		}
		x.status = resp.Status
		x.text = string(resp.Body)
		x.DispatchEvent("readystatechange")
		x.DispatchEvent("load")
		x.DispatchEvent("loadend")
	})
}

// AddEventListener implements port.XHR.
func (x *XHR) AddEventListener(event string, fn func()) {
	if fn != nil {
		x.listeners[event] = append(x.listeners[event], fn)
	}
}

// DispatchEvent implements port.XHR.
func (x *XHR) DispatchEvent(event string) {
	for _, fn := range append([]func(){}, x.listeners[event]...) {
		fn()
	}
}

// ResponseText implements port.XHR.
func (x *XHR) ResponseText() string { return x.text }

// SetResponseText implements port.XHR.
func (x *XHR) SetResponseText(text string) { x.text = text }

// Status is the response status, zero until loaded.
func (x *XHR) Status() int { return x.status }
