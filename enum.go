package rowmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Enum is an integer type whose members have names, typically a const block
// with a String method generated by stringer.
type Enum interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
	fmt.Stringer
}

// enumTable is the name -> member lookup for one enum type, built once.
type enumTable struct {
	typ    reflect.Type
	byName map[string]reflect.Value
}

var enums sync.Map // reflect.Type -> *enumTable

// RegisterEnum records the members of E so that fields of type E are filled
// by member name. Register enums before the first mapping of any record type
// that uses them; record plans are built once per type.
func RegisterEnum[E Enum](members ...E) {
	typ := reflect.TypeFor[E]()
	tbl := &enumTable{typ: typ, byName: make(map[string]reflect.Value, len(members))}
	for _, m := range members {
		tbl.byName[m.String()] = reflect.ValueOf(m)
	}
	enums.Store(typ, tbl)
}

func lookupEnum(t reflect.Type) (*enumTable, bool) {
	v, ok := enums.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*enumTable), true
}

// parse accepts a member name, a decimal integer, or a comma separated list
// of either whose values are OR-ed together.
func (t *enumTable) parse(s string) (reflect.Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return reflect.Value{}, false
	}
	if v, ok := t.one(s); ok {
		return v, true
	}
	if !strings.Contains(s, ",") {
		return reflect.Value{}, false
	}
	out := reflect.New(t.typ).Elem()
	for _, part := range strings.Split(s, ",") {
		v, ok := t.one(strings.TrimSpace(part))
		if !ok {
			return reflect.Value{}, false
		}
		if out.CanInt() {
			out.SetInt(out.Int() | v.Int())
		} else {
			out.SetUint(out.Uint() | v.Uint())
		}
	}
	return out, true
}

func (t *enumTable) one(s string) (reflect.Value, bool) {
	if v, ok := t.byName[s]; ok {
		return v, true
	}
	if s == "" || !(s[0] == '-' || s[0] == '+' || (s[0] >= '0' && s[0] <= '9')) {
		return reflect.Value{}, false
	}
	out := reflect.New(t.typ).Elem()
	if out.CanInt() {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)
		return out, true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || out.OverflowUint(n) {
		return reflect.Value{}, false
	}
	out.SetUint(n)
	return out, true
}
