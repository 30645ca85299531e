package value

import "strings"

// reservedPrefix marks attribute names that are never descended into.
const reservedPrefix = "__"

// IsLeaf reports whether v is a primitive that is never descended into.
func IsLeaf(v Value) bool {
	if v == nil {
		return true
	}
	return v.Kind() == KindLeaf
}

// KeysOf lists the keys to descend into below v.
//
// A Mapping yields its own keys. Every other shape yields the names of its
// public, non-callable attributes. A Sequence exposes no attributes, so it
// yields no keys at all: list elements are not enumerated by index.
func KeysOf(v Value) []Key {
	switch c := v.(type) {
	case Mapping:
		return c.Keys()
	case Object:
		attrs := c.Attrs()
		keys := make([]Key, 0, len(attrs))
		for i, a := range attrs {
			if strings.HasPrefix(a.Name, reservedPrefix) || a.Callable {
				continue
			}
			keys = append(keys, Key{Label: a.Name, pos: i})
		}
		return keys
	}
	return nil
}

// Get returns the content addressed by k on container c.
//
// For a Mapping this is the stored value and for an Object the named
// attribute. For a Sequence it is the stringified key itself, not the element
// at that position. Keys that do not belong to c resolve to Null.
func Get(c Value, k Key) Value {
	switch v := c.(type) {
	case Mapping:
		if got, ok := v.Lookup(k); ok && got != nil {
			return got
		}
	case Sequence:
		return String(k.String())
	case Object:
		attrs := v.Attrs()
		if k.pos >= 0 && k.pos < len(attrs) && attrs[k.pos].Name == k.String() {
			return orNull(attrs[k.pos].Value)
		}
		name := k.String()
		for _, a := range attrs {
			if a.Name == name {
				return orNull(a.Value)
			}
		}
	}
	return Null()
}

func orNull(v Value) Value {
	if v == nil {
		return Null()
	}
	return v
}

// Identity returns a comparable token for containers that can take part in a
// reference cycle. Leaves and plain struct values have none.
func Identity(v Value) (any, bool) {
	if id, ok := v.(interface{ identity() (any, bool) }); ok {
		return id.identity()
	}
	return nil, false
}

func (m *Map) identity() (any, bool)    { return m, true }
func (l *List) identity() (any, bool)   { return l, true }
func (r *Record) identity() (any, bool) { return r, true }
