package jsrealm

import (
	"fmt"
	"strconv"

	"github.com/grafana/sobek"

	"github.com/bnema/adshield/internal/application/port"
)

// TrapPayload implements port.Realm. The global becomes an accessor
// whose setter strips assigned objects in place and rewrites assigned
// JSON strings. A value already present is sanitized immediately.
func (r *Realm) TrapPayload(name string, stripper port.PayloadStripper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	global := r.rt.GlobalObject()
	stored := r.sanitize(global.Get(name), stripper)

	getter := r.rt.ToValue(func(sobek.FunctionCall) sobek.Value {
		if stored == nil {
			return sobek.Undefined()
		}
		return stored
	})
	setter := r.rt.ToValue(func(call sobek.FunctionCall) sobek.Value {
		stored = r.sanitize(call.Argument(0), stripper)
		return sobek.Undefined()
	})
	if err := global.DefineAccessorProperty(name, getter, setter, sobek.FLAG_TRUE, sobek.FLAG_TRUE); err != nil {
		return fmt.Errorf("failed to trap %s: %w", name, err)
	}
	return nil
}

// sanitize returns the value to store for v. Objects keep their identity.
func (r *Realm) sanitize(v sobek.Value, stripper port.PayloadStripper) (out sobek.Value) {
	if isMissing(v) {
		return v
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug().Interface("panic", rec).Msg("trapped value not sanitized")
			out = v
		}
	}()

	if obj, ok := v.(*sobek.Object); ok {
		if obj.ClassName() == classObject {
			stripper.Strip(&objectNode{rt: r.rt, obj: obj})
		}
		return v
	}

	if s, ok := v.Export().(string); ok {
		raw, changed := stripper.SanitizeBody([]byte(s))
		if !changed {
			return v
		}
		return r.rt.ToValue(string(raw))
	}
	return v
}

const (
	classObject = "Object"
	classArray  = "Array"
)

// objectNode is a live script object viewed as a port.ObjectNode.
type objectNode struct {
	rt  *sobek.Runtime
	obj *sobek.Object
}

var _ port.ObjectNode = (*objectNode)(nil)

func (n *objectNode) get(key string) (*sobek.Object, bool) {
	v := n.obj.Get(key)
	if isMissing(v) {
		return nil, false
	}
	obj, ok := v.(*sobek.Object)
	return obj, ok
}

func (n *objectNode) Has(key string) bool {
	return n.obj.Get(key) != nil
}

func (n *objectNode) Object(key string) (port.ObjectNode, bool) {
	obj, ok := n.get(key)
	if !ok || obj.ClassName() != classObject {
		return nil, false
	}
	return &objectNode{rt: n.rt, obj: obj}, true
}

func (n *objectNode) Array(key string) (int, bool) {
	arr, ok := n.get(key)
	if !ok || arr.ClassName() != classArray {
		return 0, false
	}
	return int(arr.Get("length").ToInteger()), true
}

func (n *objectNode) Objects(key string) []port.ObjectNode {
	length, ok := n.Array(key)
	if !ok {
		return nil
	}
	arr, _ := n.get(key)
	var out []port.ObjectNode
	for i := 0; i < length; i++ {
		v := arr.Get(strconv.Itoa(i))
		if obj, ok := v.(*sobek.Object); ok && obj.ClassName() == classObject {
			out = append(out, &objectNode{rt: n.rt, obj: obj})
		}
	}
	return out
}

func (n *objectNode) Delete(key string) {
	_ = n.obj.Delete(key)
}

func (n *objectNode) ClearArray(key string) {
	_ = n.obj.Set(key, n.rt.NewArray())
}
