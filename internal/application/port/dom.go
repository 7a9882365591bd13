package port

import (
	"errors"

	"github.com/bnema/adshield/internal/domain/entity"
)

// ErrNoMethod is returned by Element.Call when the method does not exist.
var ErrNoMethod = errors.New("method not available")

// Style is an element's inline style declaration.
type Style interface {
	// SetProperty sets a declaration; priority is "" or "important".
	SetProperty(name, value, priority string)
	Property(name string) string
	Priority(name string) string
}

// Element is a node of the page document. Implementations must return
// the same Element value for the same underlying node.
type Element interface {
	TagName() string // upper-case
	ID() string
	ClassName() string
	HasClass(name string) bool

	Attr(name string) (string, bool)
	SetAttr(name, value string) error
	RemoveAttr(name string) error

	// Property reads the reflected URL/type property (src, href, data,
	// type), falling back to the attribute.
	Property(name string) string
	// SetProperty assigns through the element's property setter, which
	// may be intercepted.
	SetProperty(name, value string) error

	Style() Style
	Parent() Element
	Children() []Element
	Connected() bool

	Matches(selector string) (bool, error)
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)

	TextContent() string
	SetTextContent(text string)

	// AppendChild and InsertBefore run the insertion hooks and return the
	// inserted child. A nil ref appends.
	AppendChild(child Element) (Element, error)
	InsertBefore(child, ref Element) (Element, error)

	Rect() entity.Rect
	Visible() bool

	AddEventListener(event string, fn func())
	DispatchEvent(event string)
	Click() error

	// Call invokes a script-visible method, returning ErrNoMethod when absent.
	Call(method string, args ...any) (any, error)

	// Media returns the media view for VIDEO and AUDIO elements.
	Media() (Media, bool)
}

// Media is an HTMLMediaElement.
type Media interface {
	CurrentTime() float64
	SetCurrentTime(t float64) error
	Duration() float64
	Muted() bool
	SetMuted(muted bool) error
	Volume() float64
	SetVolume(v float64) error
	PlaybackRate() float64
	SetPlaybackRate(rate float64) error
	Paused() bool
	Play() error
}

// Document is the page document.
type Document interface {
	DocumentElement() Element
	Head() Element
	Body() Element
	CreateElement(tag string) Element
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
	ReadyState() entity.ReadyState
	// OnReady runs fn once the document stops loading (DOMContentLoaded),
	// immediately if it already has.
	OnReady(fn func())
}

// SetterHook replaces a property setter. Calling commit forwards the
// value to the real setter; not calling it drops the assignment.
type SetterHook func(el Element, value string, commit func(value string) error) error

// InsertionHook wraps appendChild and insertBefore. It must call insert
// and return its result.
type InsertionHook func(parent, child Element, insert func() (Element, error)) (Element, error)

// ObserveOptions mirrors MutationObserverInit.
type ObserveOptions struct {
	ChildList       bool
	Subtree         bool
	Attributes      bool
	AttributeFilter []string
}

// MutationType is "childList" or "attributes".
type MutationType string

const (
	MutationChildList  MutationType = "childList"
	MutationAttributes MutationType = "attributes"
)

// MutationRecord describes one observed change.
type MutationRecord struct {
	Type          MutationType
	Target        Element
	Added         []Element
	AttributeName string
}

// MutationCallback receives batched records on a later task.
type MutationCallback func(records []MutationRecord)

// DOMEnv exposes the DOM interception points of a page.
type DOMEnv interface {
	Document() Document
	// InterceptProperty hooks the setter of prop on elements with tag.
	InterceptProperty(tag, prop string, hook SetterHook) (restore func(), err error)
	// InterceptInsertion hooks node insertion.
	InterceptInsertion(hook InsertionHook) (restore func(), err error)
	// Observe starts a mutation observer on target.
	Observe(target Element, opts ObserveOptions, cb MutationCallback) (disconnect func(), err error)
}
