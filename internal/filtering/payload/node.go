package payload

import "github.com/bnema/adshield/internal/application/port"

// mapNode is a decoded JSON object.
type mapNode map[string]any

var _ port.ObjectNode = mapNode(nil)

func (m mapNode) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m mapNode) Object(key string) (port.ObjectNode, bool) {
	obj, ok := m[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return mapNode(obj), true
}

func (m mapNode) Array(key string) (int, bool) {
	arr, ok := m[key].([]any)
	return len(arr), ok
}

func (m mapNode) Objects(key string) []port.ObjectNode {
	arr, _ := m[key].([]any)
	var out []port.ObjectNode
	for _, v := range arr {
		if obj, ok := v.(map[string]any); ok {
			out = append(out, mapNode(obj))
		}
	}
	return out
}

func (m mapNode) Delete(key string) { delete(m, key) }

func (m mapNode) ClearArray(key string) { m[key] = []any{} }
