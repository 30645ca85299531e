package value

import (
	"encoding"
	"reflect"
	"sort"
)

// Of adapts an arbitrary Go value.
//
// Maps become Mappings (keys ordered by their stringified form), slices and
// arrays become Sequences, structs become Objects exposing their exported
// fields, and basic kinds become Leaves. Types that marshal themselves to
// text (time.Time, for one) become string Leaves. Pointers and interfaces are
// followed; nil pointers, maps and slices become Null, and so does a Value
// holding a nil pointer. Anything else (channels, functions, complex numbers)
// is an Object with no attributes.
//
// Adapted containers are lazy: children are wrapped only when visited, so
// self-referencing pointer graphs can be adapted safely.
func Of(x any) Value {
	if v, ok := x.(Value); ok {
		if isNilPointer(v) {
			return Null()
		}
		return v
	}
	return ofReflect(reflect.ValueOf(x))
}

func isNilPointer(v Value) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// textLeaf renders rv through its MarshalText method.
func textLeaf(rv reflect.Value) (Leaf, bool) {
	switch rv.Kind() {
	case reflect.Interface:
		return Leaf{}, false
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return Leaf{}, false
		}
	}
	if !rv.CanInterface() || !rv.Type().Implements(textMarshalerType) {
		return Leaf{}, false
	}
	text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return Leaf{}, false
	}
	return Leaf{v: string(text), typ: rv.Type().String()}, true
}

type pointerID struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

func ofReflect(rv reflect.Value) Value {
	for {
		if !rv.IsValid() {
			return Null()
		}
		if rv.CanInterface() {
			if v, ok := rv.Interface().(Value); ok {
				if isNilPointer(v) {
					return Null()
				}
				return v
			}
		}
		if l, ok := textLeaf(rv); ok {
			return l
		}
		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return Null()
			}
			rv = rv.Elem()
			continue
		case reflect.Pointer:
			if rv.IsNil() {
				return Null()
			}
			if rv.Elem().Kind() == reflect.Struct {
				return &reflectObject{
					rv:  rv.Elem(),
					id:  pointerID{typ: rv.Type(), ptr: rv.Pointer()},
					has: true,
				}
			}
			rv = rv.Elem()
			continue
		}
		break
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Leaf{v: rv.Bool(), typ: rv.Type().String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Leaf{v: rv.Int(), typ: rv.Type().String()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Leaf{v: rv.Uint(), typ: rv.Type().String()}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if rv.Kind() == reflect.Float32 {
			return Leaf{v: float32(f), typ: rv.Type().String()}
		}
		return Leaf{v: f, typ: rv.Type().String()}
	case reflect.String:
		return Leaf{v: rv.String(), typ: rv.Type().String()}
	case reflect.Map:
		if rv.IsNil() {
			return Null()
		}
		return &reflectMap{rv: rv}
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		return &reflectSeq{rv: rv}
	case reflect.Array:
		return &reflectSeq{rv: rv}
	case reflect.Struct:
		return &reflectObject{rv: rv}
	}
	return NewRecord()
}

type reflectMap struct {
	rv   reflect.Value
	keys []Key
}

func (*reflectMap) Kind() Kind { return KindMapping }
func (*reflectMap) sealed()    {}

func (m *reflectMap) Keys() []Key {
	if m.keys != nil {
		return m.keys
	}
	rks := m.rv.MapKeys()
	keys := make([]Key, len(rks))
	for i, rk := range rks {
		var label any
		if rk.CanInterface() {
			label = rk.Interface()
		}
		keys[i] = Key{Label: label, rv: rk}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	for i := range keys {
		keys[i].pos = i
	}
	m.keys = keys
	return keys
}

func (m *reflectMap) Lookup(k Key) (Value, bool) {
	if !k.rv.IsValid() {
		return nil, false
	}
	got := m.rv.MapIndex(k.rv)
	if !got.IsValid() {
		return nil, false
	}
	return ofReflect(got), true
}

func (m *reflectMap) identity() (any, bool) {
	return pointerID{typ: m.rv.Type(), ptr: m.rv.Pointer()}, true
}

type reflectSeq struct {
	rv reflect.Value
}

func (*reflectSeq) Kind() Kind { return KindSequence }
func (*reflectSeq) sealed()    {}

func (s *reflectSeq) Len() int          { return s.rv.Len() }
func (s *reflectSeq) Index(i int) Value { return ofReflect(s.rv.Index(i)) }

func (s *reflectSeq) identity() (any, bool) {
	if s.rv.Kind() != reflect.Slice {
		return nil, false
	}
	return pointerID{typ: s.rv.Type(), ptr: s.rv.Pointer(), n: s.rv.Len()}, true
}

type reflectObject struct {
	rv  reflect.Value
	id  pointerID
	has bool
}

func (*reflectObject) Kind() Kind { return KindObject }
func (*reflectObject) sealed()    {}

func (o *reflectObject) Attrs() []Attr {
	t := o.rv.Type()
	attrs := make([]Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		attrs = append(attrs, Attr{
			Name:     f.Name,
			Value:    ofReflect(o.rv.Field(i)),
			Callable: f.Type.Kind() == reflect.Func,
		})
	}
	return attrs
}

func (o *reflectObject) identity() (any, bool) {
	return o.id, o.has
}
