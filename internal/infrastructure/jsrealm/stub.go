package jsrealm

import (
	"fmt"
	"strconv"

	"github.com/grafana/sobek"

	"github.com/bnema/adshield/internal/domain/entity"
)

// Define implements port.Realm.
func (r *Realm) Define(stub entity.Stub) error {
	if err := stub.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	parent, name, err := r.container(stub.Name)
	if err != nil {
		return fmt.Errorf("stub %s: %w", stub.Name, err)
	}
	existing := parent.Get(name)

	switch stub.Mode {
	case entity.ModeKeep:
		if !isMissing(existing) {
			return nil
		}
	case entity.ModeMerge:
		if obj, ok := existing.(*sobek.Object); ok {
			return r.applyMembers(obj, stub.Members)
		}
	}

	v, err := r.build(stub, existing)
	if err != nil {
		return fmt.Errorf("stub %s: %w", stub.Name, err)
	}
	if err := parent.Set(name, v); err != nil {
		return fmt.Errorf("stub %s: %w", stub.Name, err)
	}
	return nil
}

func (r *Realm) applyMembers(obj *sobek.Object, members []entity.Stub) error {
	for _, m := range members {
		v, err := r.build(m, obj.Get(m.Name))
		if err != nil {
			return fmt.Errorf("member %s: %w", m.Name, err)
		}
		if err := obj.Set(m.Name, v); err != nil {
			return fmt.Errorf("member %s: %w", m.Name, err)
		}
	}
	return nil
}

func (r *Realm) newObject(members []entity.Stub) (*sobek.Object, error) {
	obj := r.rt.NewObject()
	if err := r.applyMembers(obj, members); err != nil {
		return nil, err
	}
	return obj, nil
}

// function wraps a native body into a script function object.
func (r *Realm) function(body func(call sobek.FunctionCall) sobek.Value) (*sobek.Object, error) {
	fn, err := r.wrap(sobek.Undefined(), r.rt.ToValue(body))
	if err != nil {
		return nil, err
	}
	return fn.ToObject(r.rt), nil
}

func (r *Realm) literal(v any) sobek.Value {
	if v == nil {
		return sobek.Null()
	}
	return r.rt.ToValue(v)
}

// build materializes stub. existing is the value currently stored under
// the stub's name, used to replay command queues.
func (r *Realm) build(stub entity.Stub, existing sobek.Value) (sobek.Value, error) {
	switch stub.Kind {
	case entity.StubNoop:
		return r.function(func(sobek.FunctionCall) sobek.Value { return sobek.Undefined() })

	case entity.StubValue:
		return r.literal(stub.Value), nil

	case entity.StubObject:
		return r.newObject(stub.Members)

	case entity.StubFunctionObject:
		fn, err := r.function(func(sobek.FunctionCall) sobek.Value { return sobek.Undefined() })
		if err != nil {
			return nil, err
		}
		return fn, r.applyMembers(fn, stub.Members)

	case entity.StubReturns:
		v := r.literal(stub.Value)
		return r.function(func(sobek.FunctionCall) sobek.Value { return v })

	case entity.StubSelf:
		return r.function(func(call sobek.FunctionCall) sobek.Value { return call.This })

	case entity.StubFactory:
		members := stub.Members
		return r.function(func(sobek.FunctionCall) sobek.Value {
			obj, err := r.newObject(members)
			if err != nil {
				r.logger.Debug().Err(err).Str("stub", stub.Name).Msg("factory failed")
				return r.rt.NewObject()
			}
			return obj
		})

	case entity.StubShared:
		obj, err := r.newObject(stub.Members)
		if err != nil {
			return nil, err
		}
		return r.function(func(sobek.FunctionCall) sobek.Value { return obj })

	case entity.StubInvokeArg:
		idx := stub.Arg
		return r.function(func(call sobek.FunctionCall) sobek.Value {
			r.invoke(call.Argument(idx))
			return call.This
		})

	case entity.StubInvokeOnEvent:
		events := eventNames(stub.Value)
		return r.function(func(call sobek.FunctionCall) sobek.Value {
			if events[call.Argument(0).String()] {
				r.invoke(call.Argument(1))
			}
			return call.This
		})

	case entity.StubCommandQueue:
		return r.commandQueue(existing)

	case entity.StubSinkArray:
		arr := r.rt.NewArray()
		push, err := r.function(func(sobek.FunctionCall) sobek.Value { return r.rt.ToValue(0) })
		if err != nil {
			return nil, err
		}
		return arr, arr.Set("push", push)

	case entity.StubPromise:
		v := r.literal(stub.Value)
		return r.function(func(sobek.FunctionCall) sobek.Value {
			p, err := r.resolve(sobek.Undefined(), v)
			if err != nil {
				return sobek.Undefined()
			}
			return p
		})

	case entity.StubAlias:
		target := stub.Value.(string)
		v := r.lookup(target)
		if isMissing(v) {
			return nil, fmt.Errorf("%s: %w", target, ErrUndefinedGlobal)
		}
		return v, nil

	case entity.StubReturnsGlobal:
		target := stub.Value.(string)
		return r.function(func(sobek.FunctionCall) sobek.Value {
			if v := r.lookup(target); v != nil {
				return v
			}
			return sobek.Undefined()
		})
	}
	return nil, fmt.Errorf("unsupported stub kind %q", stub.Kind)
}

// commandQueue builds an array whose push runs functions immediately,
// after replaying functions already queued in existing.
func (r *Realm) commandQueue(existing sobek.Value) (sobek.Value, error) {
	arr := r.rt.NewArray()
	push, err := r.function(func(call sobek.FunctionCall) sobek.Value {
		for _, arg := range call.Arguments {
			r.invoke(arg)
		}
		return r.rt.ToValue(len(call.Arguments))
	})
	if err != nil {
		return nil, err
	}
	if err := arr.Set("push", push); err != nil {
		return nil, err
	}

	if queued, ok := existing.(*sobek.Object); ok {
		n := queued.Get("length")
		if n != nil && !isMissing(n) {
			for i := int64(0); i < n.ToInteger(); i++ {
				r.invoke(queued.Get(strconv.FormatInt(i, 10)))
			}
		}
	}
	return arr, nil
}

// invoke calls v when it is a function. Exceptions thrown by page
// callbacks are logged and swallowed.
func (r *Realm) invoke(v sobek.Value) {
	fn, ok := sobek.AssertFunction(v)
	if !ok {
		return
	}
	if _, err := fn(sobek.Undefined()); err != nil {
		r.logger.Debug().Err(err).Msg("queued callback threw")
	}
}

func eventNames(v any) map[string]bool {
	out := make(map[string]bool)
	switch events := v.(type) {
	case []string:
		for _, e := range events {
			out[e] = true
		}
	case []any:
		for _, e := range events {
			if s, ok := e.(string); ok {
				out[s] = true
			}
		}
	case string:
		out[events] = true
	}
	return out
}
