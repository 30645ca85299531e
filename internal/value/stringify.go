package value

import (
	"fmt"
	"reflect"
	"strconv"
)

// Stringify renders x the way node names are rendered: strings verbatim,
// numbers in their shortest decimal form, booleans as true/false and nil as
// null. Anything else falls back to fmt.
func Stringify(x any) string {
	if x == nil {
		return "null"
	}
	if l, ok := x.(Leaf); ok {
		return l.String()
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	}
	return fmt.Sprint(x)
}

func typeName(x any) string {
	if x == nil {
		return "nil"
	}
	return reflect.TypeOf(x).String()
}
