package port

import "github.com/bnema/adshield/internal/domain/entity"

// ObjectNode is a mutable view of one object of a structured value,
// either a decoded JSON document or a live script object.
type ObjectNode interface {
	// Has reports whether key is present.
	Has(key string) bool
	// Object returns the plain object stored at key.
	Object(key string) (ObjectNode, bool)
	// Array returns the length of the array stored at key.
	Array(key string) (int, bool)
	// Objects returns the plain objects held by the array at key.
	Objects(key string) []ObjectNode
	// Delete removes key.
	Delete(key string)
	// ClearArray replaces the value at key with an empty array.
	ClearArray(key string)
}

// PayloadStripper removes ad data from trapped payload globals. Objects
// are edited in place; strings are rewritten as JSON.
type PayloadStripper interface {
	Strip(obj ObjectNode) bool
	SanitizeBody(raw []byte) ([]byte, bool)
}

// Realm is the page's script global scope.
type Realm interface {
	// Has reports whether a global (dotted path allowed) is defined.
	Has(path string) bool
	// Define materializes a stub at its global path.
	Define(stub entity.Stub) error
	// TrapPayload intercepts assignments to a global so every stored
	// value passes through stripper first.
	TrapPayload(name string, stripper PayloadStripper) error
	// Eval runs a script and exports its completion value.
	Eval(src string) (any, error)
}
