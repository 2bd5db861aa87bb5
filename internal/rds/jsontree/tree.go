// Package jsontree provides a decoupled tree-of-values model that group
// decoders write into, independent of how it is eventually serialized.
//
// Grounded directly on original_source/src/util/tree.hh's ObjectTree: an
// ordered object (preserving insertion order, unlike a plain map), an
// array, and scalar leaves, reached through the same indexing-by-key /
// indexing-by-index idiom.
package jsontree

import "encoding/json"

// Tree is a node in the output document: exactly one of an object (ordered
// key/value pairs), an array, or a scalar (string/int/float64/bool/nil).
type Tree struct {
	object []keyValue
	array  []*Tree
	scalar any
	isNull bool
}

type keyValue struct {
	key   string
	value *Tree
}

// New wraps a scalar value (string, int, int64, float64, bool, or nil) as a
// leaf Tree.
func New(v any) *Tree {
	if v == nil {
		return &Tree{isNull: true}
	}

	return &Tree{scalar: v}
}

// Null returns an explicit JSON null leaf.
func Null() *Tree {
	return &Tree{isNull: true}
}

// Get returns the child at key, creating an empty object child if the key
// is absent (and coercing this node to an object if it wasn't already
// one), mirroring ObjectTree::operator[](string_view).
func (t *Tree) Get(key string) *Tree {
	if t.array != nil {
		t.array = nil
	}

	t.isNull = false
	t.scalar = nil

	for _, kv := range t.object {
		if kv.key == key {
			return kv.value
		}
	}

	child := &Tree{}
	t.object = append(t.object, keyValue{key: key, value: child})

	return child
}

// Set is a convenience for Get(key) followed by assigning a scalar value.
func (t *Tree) Set(key string, v any) {
	*t.Get(key) = *New(v)
}

// At returns the child at array index, growing the array as needed,
// mirroring ObjectTree::operator[](size_t).
func (t *Tree) At(index int) *Tree {
	if t.object != nil {
		t.object = nil
	}

	t.isNull = false
	t.scalar = nil

	for len(t.array) <= index {
		t.array = append(t.array, &Tree{})
	}

	return t.array[index]
}

// Push appends a value to this node's array, coercing it to an array if
// necessary.
func (t *Tree) Push(v *Tree) {
	if t.object != nil {
		t.object = nil
	}

	t.isNull = false
	t.scalar = nil
	t.array = append(t.array, v)
}

// Contains reports whether this node is an object with the given key.
func (t *Tree) Contains(key string) bool {
	for _, kv := range t.object {
		if kv.key == key {
			return true
		}
	}

	return false
}

// IsEmpty reports whether this node is still the zero value (no object
// keys, no array elements, no scalar set).
func (t *Tree) IsEmpty() bool {
	return t.object == nil && t.array == nil && t.scalar == nil && !t.isNull
}

// MarshalJSON implements json.Marshaler, rendering object keys in
// insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	switch {
	case t.object != nil:
		buf := []byte{'{'}

		for i, kv := range t.object {
			if i > 0 {
				buf = append(buf, ',')
			}

			keyJSON, err := json.Marshal(kv.key)
			if err != nil {
				return nil, err
			}

			valJSON, err := kv.value.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf = append(buf, keyJSON...)
			buf = append(buf, ':')
			buf = append(buf, valJSON...)
		}

		return append(buf, '}'), nil

	case t.array != nil:
		buf := []byte{'['}

		for i, el := range t.array {
			if i > 0 {
				buf = append(buf, ',')
			}

			elJSON, err := el.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf = append(buf, elJSON...)
		}

		return append(buf, ']'), nil

	case t.isNull || t.scalar == nil:
		return []byte("null"), nil

	default:
		return json.Marshal(t.scalar)
	}
}
