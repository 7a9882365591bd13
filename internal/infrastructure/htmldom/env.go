// Package htmldom is a page environment over an x/net/html tree. It
// implements the DOM interception points the shield hooks into, with
// property setters, node insertion, mutation observers and resource
// loads scheduled on a port.Scheduler.
package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering"
)

// Loader performs a resource load started by an element. A returned
// error fires "error" on the element, success fires "load".
type Loader func(el port.Element, rawURL string) error

type setterEntry struct {
	id   int
	hook port.SetterHook
}

type insertEntry struct {
	id   int
	hook port.InsertionHook
}

// Env is one page. It is not safe for concurrent use; drive it from the
// scheduler's goroutine.
type Env struct {
	root    *html.Node
	sched   port.Scheduler
	logger  zerolog.Logger
	loader  Loader
	maxRate float64
	frozen  map[string]bool

	readyState entity.ReadyState
	onReady    []func()

	nodes     map[*html.Node]*Element
	selectors map[string]cascadia.Selector
	doc       *Document

	hookSeq   int
	setters   map[string][]setterEntry
	inserters []insertEntry
	observers []*observer
}

var _ port.DOMEnv = (*Env)(nil)

// Option configures an Env.
type Option func(*Env)

// WithLoader sets the resource loader.
func WithLoader(l Loader) Option {
	return func(e *Env) { e.loader = l }
}

// WithReadyState sets the initial document ready state.
func WithReadyState(rs entity.ReadyState) Option {
	return func(e *Env) { e.readyState = rs }
}

// WithMaxPlaybackRate makes media reject rates above max.
func WithMaxPlaybackRate(max float64) Option {
	return func(e *Env) { e.maxRate = max }
}

// WithFrozenProperty makes InterceptProperty fail for tag.prop.
func WithFrozenProperty(tag, prop string) Option {
	return func(e *Env) { e.frozen[setterKey(tag, prop)] = true }
}

// WithLogger sets the logger used for swallowed page errors.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Env) { e.logger = l.With().Str("component", "htmldom").Logger() }
}

// Parse builds an environment from an HTML document.
func Parse(r io.Reader, sched port.Scheduler, opts ...Option) (*Env, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	e := &Env{
		root:       root,
		sched:      sched,
		logger:     zerolog.Nop(),
		frozen:     make(map[string]bool),
		readyState: entity.ReadyStateComplete,
		nodes:      make(map[*html.Node]*Element),
		selectors:  make(map[string]cascadia.Selector),
		setters:    make(map[string][]setterEntry),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.doc = &Document{env: e}
	return e, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(src string, sched port.Scheduler, opts ...Option) (*Env, error) {
	return Parse(strings.NewReader(src), sched, opts...)
}

// Document implements port.DOMEnv.
func (e *Env) Document() port.Document {
	return e.doc
}

// Doc returns the concrete document.
func (e *Env) Doc() *Document {
	return e.doc
}

// Render writes the serialized document.
func (e *Env) Render(w io.Writer) error {
	return html.Render(w, e.root)
}

// HTML returns the serialized document.
func (e *Env) HTML() (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

// SetReadyState moves the document to rs, running OnReady callbacks when
// it leaves the loading state.
func (e *Env) SetReadyState(rs entity.ReadyState) {
	wasLoading := e.readyState == entity.ReadyStateLoading
	e.readyState = rs
	if !wasLoading || rs == entity.ReadyStateLoading {
		return
	}
	callbacks := e.onReady
	e.onReady = nil
	for _, fn := range callbacks {
		e.safely("ready callback", fn)
	}
}

// Element returns the wrapper for n, creating it on first use.
func (e *Env) Element(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := e.nodes[n]; ok {
		return el
	}
	el := &Element{env: e, node: n}
	e.nodes[n] = el
	return el
}

// element is Element typed as the port interface, nil-safe.
func (e *Env) element(n *html.Node) port.Element {
	if el := e.Element(n); el != nil {
		return el
	}
	return nil
}

func (e *Env) elements(nodes []*html.Node) []port.Element {
	out := make([]port.Element, 0, len(nodes))
	for _, n := range nodes {
		if el := e.Element(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (e *Env) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := e.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	e.selectors[selector] = sel
	return sel, nil
}

func (e *Env) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug().Interface("panic", r).Str("callback", what).Msg("page callback panicked")
		}
	}()
	fn()
}

func setterKey(tag, prop string) string {
	return strings.ToUpper(tag) + "." + strings.ToLower(prop)
}

func (e *Env) nextHookID() int {
	e.hookSeq++
	return e.hookSeq
}

// InterceptProperty implements port.DOMEnv.
func (e *Env) InterceptProperty(tag, prop string, hook port.SetterHook) (func(), error) {
	key := setterKey(tag, prop)
	if e.frozen[key] {
		return nil, fmt.Errorf("%s: %w", key, filtering.ErrNotConfigurable)
	}
	id := e.nextHookID()
	e.setters[key] = append(e.setters[key], setterEntry{id: id, hook: hook})

	return func() {
		entries := e.setters[key]
		for i, entry := range entries {
			if entry.id == id {
				e.setters[key] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}, nil
}

// InterceptInsertion implements port.DOMEnv.
func (e *Env) InterceptInsertion(hook port.InsertionHook) (func(), error) {
	id := e.nextHookID()
	e.inserters = append(e.inserters, insertEntry{id: id, hook: hook})

	return func() {
		for i, entry := range e.inserters {
			if entry.id == id {
				e.inserters = append(e.inserters[:i:i], e.inserters[i+1:]...)
				return
			}
		}
	}, nil
}

// setProperty runs the setter chain, the most recent hook outermost.
func (e *Env) setProperty(el *Element, prop, value string) error {
	commit := func(v string) error { return el.SetAttr(prop, v) }
	for _, entry := range e.setters[setterKey(el.TagName(), prop)] {
		hook, inner := entry.hook, commit
		commit = func(v string) error { return hook(el, v, inner) }
	}
	return commit(value)
}

func (e *Env) insert(parent, child *Element, raw func() (port.Element, error)) (port.Element, error) {
	insert := raw
	for _, entry := range e.inserters {
		hook, inner := entry.hook, insert
		insert = func() (port.Element, error) { return hook(parent, child, inner) }
	}
	return insert()
}

// resourceAttr is the attribute whose value an element loads.
func resourceAttr(tag string) string {
	switch tag {
	case "IMG", "SCRIPT", "IFRAME", "FRAME", "EMBED", "VIDEO", "AUDIO", "SOURCE":
		return "src"
	case "OBJECT":
		return "data"
	case "LINK":
		return "href"
	default:
		return ""
	}
}

var scriptTypes = map[string]bool{
	"":                       true,
	"text/javascript":        true,
	"application/javascript": true,
	"module":                 true,
	"text/ecmascript":        true,
	"application/ecmascript": true,
}

// queueLoad schedules a load of el's current resource, re-read when the
// task runs.
func (e *Env) queueLoad(el *Element) {
	if resourceAttr(el.TagName()) == "" {
		return
	}
	e.sched.SetTimeout(func() { e.load(el) }, 0)
}

func (e *Env) load(el *Element) {
	tag := el.TagName()
	rawURL, _ := el.Attr(resourceAttr(tag))
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || rawURL == el.loaded {
		return
	}
	if tag != "IMG" && !el.Connected() {
		return
	}
	if tag == "SCRIPT" {
		typ, _ := el.Attr("type")
		if !scriptTypes[strings.ToLower(strings.TrimSpace(typ))] {
			return
		}
	}
	if tag == "LINK" {
		rel, _ := el.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "stylesheet") {
			return
		}
	}
	el.loaded = rawURL

	var err error
	if e.loader != nil {
		err = e.loader(el, rawURL)
	}
	if err != nil {
		el.DispatchEvent("error")
		return
	}
	el.DispatchEvent("load")
}

func (e *Env) queueSubtreeLoads(n *html.Node) {
	if el := e.Element(n); el != nil {
		e.queueLoad(el)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.queueSubtreeLoads(c)
	}
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
