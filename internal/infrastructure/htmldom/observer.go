package htmldom

import (
	"golang.org/x/net/html"

	"github.com/bnema/adshield/internal/application/port"
)

type observer struct {
	env       *Env
	target    *html.Node
	opts      port.ObserveOptions
	cb        port.MutationCallback
	pending   []port.MutationRecord
	scheduled bool
	active    bool
}

// Observe implements port.DOMEnv. Records are delivered in one batch on
// a later task.
func (e *Env) Observe(target port.Element, opts port.ObserveOptions, cb port.MutationCallback) (func(), error) {
	el, ok := target.(*Element)
	if !ok || el == nil {
		return nil, errForeignElement
	}
	obs := &observer{env: e, target: el.node, opts: opts, cb: cb, active: true}
	e.observers = append(e.observers, obs)

	return func() {
		obs.active = false
		obs.pending = nil
		for i, o := range e.observers {
			if o == obs {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}, nil
}

func (o *observer) wants(rec port.MutationRecord, node *html.Node) bool {
	if node != o.target && !(o.opts.Subtree && isAncestor(o.target, node)) {
		return false
	}
	switch rec.Type {
	case port.MutationChildList:
		return o.opts.ChildList
	case port.MutationAttributes:
		if !o.opts.Attributes && len(o.opts.AttributeFilter) == 0 {
			return false
		}
		if len(o.opts.AttributeFilter) == 0 {
			return true
		}
		for _, name := range o.opts.AttributeFilter {
			if name == rec.AttributeName {
				return true
			}
		}
	}
	return false
}

func (o *observer) enqueue(rec port.MutationRecord) {
	o.pending = append(o.pending, rec)
	if o.scheduled {
		return
	}
	o.scheduled = true
	o.env.sched.SetTimeout(o.flush, 0)
}

func (o *observer) flush() {
	o.scheduled = false
	if !o.active || len(o.pending) == 0 {
		return
	}
	records := o.pending
	o.pending = nil
	o.env.safely("mutation observer", func() { o.cb(records) })
}

func (e *Env) record(rec port.MutationRecord, node *html.Node) {
	for _, o := range e.observers {
		if o.active && o.wants(rec, node) {
			o.enqueue(rec)
		}
	}
}
