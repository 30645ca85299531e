// Package value models the shapes an inspected document can take.
//
// A Value is exactly one of Leaf, Mapping, Sequence or Object. Explicit
// constructors (NewMap, NewList, NewRecord and the leaf helpers) build values
// directly; Of adapts an arbitrary Go value at the boundary.
package value

import (
	"fmt"
	"reflect"
)

// Kind names the shape of a Value.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindMapping
	KindSequence
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a node of an inspected document. The set of implementations is
// closed to this package.
type Value interface {
	Kind() Kind
	sealed()
}

// Mapping is a keyed container.
type Mapping interface {
	Value
	// Keys returns the mapping's keys in iteration order.
	Keys() []Key
	// Lookup returns the value stored under k. k must come from Keys on the
	// same mapping.
	Lookup(k Key) (Value, bool)
}

// Sequence is an ordered container.
type Sequence interface {
	Value
	Len() int
	Index(i int) Value
}

// Object is a generic attribute-bearing value.
type Object interface {
	Value
	Attrs() []Attr
}

// Attr is a named member of an Object.
type Attr struct {
	Name     string
	Value    Value
	Callable bool
}

// Key addresses one entry of a container. Label is the original key value.
type Key struct {
	Label any
	pos   int
	rv    reflect.Value
}

// String returns the key's stringified label.
func (k Key) String() string {
	return Stringify(k.Label)
}

// TypeName returns the Go type of the label.
func (k Key) TypeName() string {
	return typeName(k.Label)
}

// Hashable reports whether the label could be used as a set member.
func (k Key) Hashable() bool {
	if k.Label == nil {
		return true
	}
	return reflect.ValueOf(k.Label).Comparable()
}

// Leaf is a primitive: integer, float, boolean, string or null.
type Leaf struct {
	v   any
	typ string
}

func (Leaf) Kind() Kind { return KindLeaf }
func (Leaf) sealed()    {}

// Interface returns the primitive payload.
func (l Leaf) Interface() any { return l.v }

// String returns the stringified payload.
func (l Leaf) String() string { return Stringify(l.v) }

// TypeName returns the Go type the leaf was built from.
func (l Leaf) TypeName() string {
	if l.typ == "" {
		return typeName(l.v)
	}
	return l.typ
}

func Int(n int) Leaf       { return Leaf{v: n} }
func Float(f float64) Leaf { return Leaf{v: f} }
func Bool(b bool) Leaf     { return Leaf{v: b} }
func String(s string) Leaf { return Leaf{v: s} }
func Null() Leaf           { return Leaf{} }

func isLeafPayload(x any) bool {
	switch x.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return true
	}
	return false
}

// NewLeaf wraps x if it is a primitive.
func NewLeaf(x any) (Leaf, bool) {
	if !isLeafPayload(x) {
		return Leaf{}, false
	}
	return Leaf{v: x}, true
}

// Map is an insertion-ordered Mapping. Labels may be any Go value,
// including ones that are not comparable.
type Map struct {
	entries []mapEntry
}

type mapEntry struct {
	label any
	value Value
}

func NewMap() *Map { return &Map{} }

func (*Map) Kind() Kind { return KindMapping }
func (*Map) sealed()    {}

// Set stores v under label. A comparable label that is already present is
// overwritten in place; anything else is appended.
func (m *Map) Set(label any, v Value) *Map {
	if label == nil || reflect.ValueOf(label).Comparable() {
		for i := range m.entries {
			e := &m.entries[i]
			if sameLabel(e.label, label) {
				e.value = v
				return m
			}
		}
	}
	m.entries = append(m.entries, mapEntry{label: label, value: v})
	return m
}

func sameLabel(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

func (m *Map) Keys() []Key {
	keys := make([]Key, len(m.entries))
	for i, e := range m.entries {
		keys[i] = Key{Label: e.label, pos: i}
	}
	return keys
}

func (m *Map) Lookup(k Key) (Value, bool) {
	if k.pos < 0 || k.pos >= len(m.entries) {
		return nil, false
	}
	return m.entries[k.pos].value, true
}

func (m *Map) Len() int { return len(m.entries) }

// List is a Sequence of explicit values.
type List struct {
	items []Value
}

func NewList(items ...Value) *List { return &List{items: items} }

func (*List) Kind() Kind { return KindSequence }
func (*List) sealed()    {}

func (l *List) Len() int          { return len(l.items) }
func (l *List) Index(i int) Value { return l.items[i] }

// Append adds v to the end of the list.
func (l *List) Append(v Value) *List {
	l.items = append(l.items, v)
	return l
}

// Record is an Object with explicitly declared attributes.
type Record struct {
	attrs []Attr
}

func NewRecord() *Record { return &Record{} }

func (*Record) Kind() Kind { return KindObject }
func (*Record) sealed()    {}

func (r *Record) Attrs() []Attr { return r.attrs }

// Set declares or replaces a data attribute.
func (r *Record) Set(name string, v Value) *Record {
	return r.put(Attr{Name: name, Value: v})
}

// SetMethod declares a callable attribute.
func (r *Record) SetMethod(name string) *Record {
	return r.put(Attr{Name: name, Value: NewRecord(), Callable: true})
}

func (r *Record) put(a Attr) *Record {
	for i := range r.attrs {
		if r.attrs[i].Name == a.Name {
			r.attrs[i] = a
			return r
		}
	}
	r.attrs = append(r.attrs, a)
	return r
}
