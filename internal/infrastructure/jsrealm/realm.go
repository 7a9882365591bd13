// Package jsrealm hosts a page's global script scope on the sobek
// JavaScript engine and materializes declarative stubs into it.
package jsrealm

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
)

// DefaultTimeout bounds a single Eval.
const DefaultTimeout = 2 * time.Second

var (
	// ErrNotObject is returned when a path crosses a non-object value.
	ErrNotObject = errors.New("not an object")
	// ErrUndefinedGlobal is returned when an alias target does not exist.
	ErrUndefinedGlobal = errors.New("global not defined")
)

// wrapSource turns a native maker into a plain script function so that
// stubs stay callable with and without new.
const wrapSource = `(function (make) { return function () { return make.apply(this, arguments); }; })`

const resolveSource = `(function (v) { return Promise.resolve(v); })`

// Realm is a sobek runtime implementing port.Realm. It is not safe to
// call into the runtime from stub callbacks of another goroutine.
type Realm struct {
	mu      sync.Mutex
	rt      *sobek.Runtime
	logger  zerolog.Logger
	timeout time.Duration

	wrap    sobek.Callable
	resolve sobek.Callable
}

var _ port.Realm = (*Realm)(nil)

// Option configures a Realm.
type Option func(*Realm)

// WithTimeout bounds every Eval; zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Realm) { r.timeout = d }
}

// New creates an empty realm whose global object doubles as window.
func New(logger zerolog.Logger, opts ...Option) (*Realm, error) {
	r := &Realm{
		rt:      sobek.New(),
		logger:  logger.With().Str("component", "jsrealm").Logger(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	global := r.rt.GlobalObject()
	if err := global.Set("window", global); err != nil {
		return nil, fmt.Errorf("failed to alias window: %w", err)
	}
	if err := global.Set("self", global); err != nil {
		return nil, fmt.Errorf("failed to alias self: %w", err)
	}

	var err error
	if r.wrap, err = r.compileFunc(wrapSource); err != nil {
		return nil, err
	}
	if r.resolve, err = r.compileFunc(resolveSource); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Realm) compileFunc(src string) (sobek.Callable, error) {
	v, err := r.rt.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile helper: %w", err)
	}
	fn, ok := sobek.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("helper is not a function")
	}
	return fn, nil
}

// Runtime exposes the underlying engine.
func (r *Realm) Runtime() *sobek.Runtime {
	return r.rt
}

// Has implements port.Realm.
func (r *Realm) Has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.lookup(path)
	return !isMissing(v)
}

// Eval implements port.Realm.
func (r *Realm) Eval(src string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timeout > 0 {
		r.rt.ClearInterrupt()
		timer := time.AfterFunc(r.timeout, func() {
			r.rt.Interrupt(fmt.Sprintf("execution timeout exceeded (%v)", r.timeout))
		})
		defer timer.Stop()
	}

	v, err := r.rt.RunString(src)
	if err != nil {
		var interrupted *sobek.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("script interrupted: %w", err)
		}
		var exc *sobek.Exception
		if errors.As(err, &exc) {
			return nil, fmt.Errorf("script exception: %s", exc.String())
		}
		return nil, fmt.Errorf("script error: %w", err)
	}
	if v == nil {
		return nil, nil
	}
	return v.Export(), nil
}

// lookup walks a dotted path from the global object. It returns nil when
// any segment is missing.
func (r *Realm) lookup(path string) sobek.Value {
	var cur sobek.Value = r.rt.GlobalObject()
	for _, seg := range strings.Split(path, ".") {
		if isMissing(cur) {
			return nil
		}
		obj, ok := cur.(*sobek.Object)
		if !ok {
			return nil
		}
		cur = obj.Get(seg)
	}
	return cur
}

// container returns the object holding the last path segment, creating
// plain objects for missing intermediate segments.
func (r *Realm) container(path string) (*sobek.Object, string, error) {
	segs := strings.Split(path, ".")
	obj := r.rt.GlobalObject()
	for _, seg := range segs[:len(segs)-1] {
		next := obj.Get(seg)
		if isMissing(next) {
			created := r.rt.NewObject()
			if err := obj.Set(seg, created); err != nil {
				return nil, "", fmt.Errorf("failed to create %s: %w", seg, err)
			}
			obj = created
			continue
		}
		o, ok := next.(*sobek.Object)
		if !ok {
			return nil, "", fmt.Errorf("%s: %w", seg, ErrNotObject)
		}
		obj = o
	}
	return obj, segs[len(segs)-1], nil
}

func isMissing(v sobek.Value) bool {
	return v == nil || sobek.IsUndefined(v) || sobek.IsNull(v)
}
