package entity

import (
	"errors"
	"fmt"
	"strings"
)

// StubKind selects how a stub is materialized in the page realm.
type StubKind string

const (
	// StubNoop is a function returning undefined.
	StubNoop StubKind = "noop"
	// StubValue is a plain literal (bool, number, string, nil, slice or map).
	StubValue StubKind = "value"
	// StubObject is a plain object built from Members.
	StubObject StubKind = "object"
	// StubFunctionObject is a no-op function carrying Members as properties.
	StubFunctionObject StubKind = "function_object"
	// StubReturns is a function returning the literal Value.
	StubReturns StubKind = "returns"
	// StubSelf is a function returning its receiver, for chained calls.
	StubSelf StubKind = "self"
	// StubFactory is a function returning a fresh object built from Members.
	StubFactory StubKind = "factory"
	// StubShared is a function returning one object built from Members at install.
	StubShared StubKind = "shared"
	// StubInvokeArg calls argument Arg as a function and returns the receiver.
	StubInvokeArg StubKind = "invoke_arg"
	// StubInvokeOnEvent calls argument 1 when argument 0 is one of Value ([]string).
	StubInvokeOnEvent StubKind = "invoke_on_event"
	// StubCommandQueue is an array whose push runs pushed functions immediately.
	// Functions already queued under the same global are replayed on install.
	StubCommandQueue StubKind = "command_queue"
	// StubSinkArray is an array whose push discards its arguments.
	StubSinkArray StubKind = "sink_array"
	// StubPromise is a function returning a promise resolved with Value.
	StubPromise StubKind = "promise"
	// StubAlias points at another global named by Value.
	StubAlias StubKind = "alias"
	// StubReturnsGlobal is a function returning the global named by Value.
	StubReturnsGlobal StubKind = "returns_global"
)

// StubScope limits where a stub is installed.
type StubScope string

const (
	// ScopeAll installs on every site.
	ScopeAll StubScope = "all"
	// ScopeGeneric installs everywhere except the special site.
	ScopeGeneric StubScope = "generic"
)

// StubMode controls what happens when the global already exists.
type StubMode string

const (
	// ModeReplace overwrites any existing value.
	ModeReplace StubMode = ""
	// ModeKeep leaves an existing value untouched.
	ModeKeep StubMode = "keep"
	// ModeMerge copies Members onto an existing object, replacing otherwise.
	ModeMerge StubMode = "merge"
)

// Stub declaratively describes a mock for one global or member.
// Name is a property name; top-level stubs may use a dotted path
// such as "google.ima".
type Stub struct {
	Name    string    `json:"name"`
	Kind    StubKind  `json:"kind"`
	Value   any       `json:"value,omitempty"`
	Arg     int       `json:"arg,omitempty"`
	Members []Stub    `json:"members,omitempty"`
	Scope   StubScope `json:"scope,omitempty"`
	Mode    StubMode  `json:"mode,omitempty"`
}

// AppliesTo reports whether the stub should be installed on site.
func (s Stub) AppliesTo(site SiteContext) bool {
	return s.Scope != ScopeGeneric || !site.IsSpecialSite
}

var stubKinds = map[StubKind]bool{
	StubNoop: true, StubValue: true, StubObject: true, StubFunctionObject: true,
	StubReturns: true, StubSelf: true, StubFactory: true, StubShared: true,
	StubInvokeArg: true, StubInvokeOnEvent: true, StubCommandQueue: true,
	StubSinkArray: true, StubPromise: true, StubAlias: true, StubReturnsGlobal: true,
}

// Validate checks the stub and its members recursively.
func (s Stub) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("stub name is required")
	}
	if !stubKinds[s.Kind] {
		return fmt.Errorf("stub %s: unknown kind %q", s.Name, s.Kind)
	}
	switch s.Kind {
	case StubAlias, StubReturnsGlobal:
		if target, ok := s.Value.(string); !ok || target == "" {
			return fmt.Errorf("stub %s: %s needs a global name", s.Name, s.Kind)
		}
	case StubInvokeArg:
		if s.Arg < 0 {
			return fmt.Errorf("stub %s: negative argument index", s.Name)
		}
	}
	for _, m := range s.Members {
		if strings.Contains(m.Name, ".") {
			return fmt.Errorf("stub %s: member %q must not be a path", s.Name, m.Name)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("stub %s: %w", s.Name, err)
		}
	}
	return nil
}
