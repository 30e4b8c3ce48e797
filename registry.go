package rowmap

import (
	"reflect"
)

// ConverterFunc converts a raw column value before it is coerced into the
// destination field. It is registered by field name.
type ConverterFunc func(src any) (any, error)

// ValidatorFunc validates a field value after it has been assigned.
type ValidatorFunc func(value any) error

// ComposeConverters chains converters left to right. An error aborts; a nil
// output stops the chain and is returned as nil.
func ComposeConverters(fns ...ConverterFunc) ConverterFunc {
	return func(src any) (any, error) {
		cur := src
		for _, fn := range fns {
			out, err := fn(cur)
			if err != nil {
				return nil, err
			}
			if out == nil {
				return nil, nil
			}
			cur = out
		}
		return cur, nil
	}
}

// MapString returns a ConverterFunc applying f when src is a string or
// []byte; any other value passes through unchanged.
func MapString(f func(string) string) ConverterFunc {
	return func(src any) (any, error) {
		switch s := src.(type) {
		case string:
			return f(s), nil
		case []byte:
			return f(string(s)), nil
		}
		return src, nil
	}
}

// converterRegistry is swapped atomically (copy-on-write).
type converterRegistry struct {
	global map[string]ConverterFunc
	byDst  map[reflect.Type]map[string]ConverterFunc
}

type validatorRegistry struct {
	global map[string]ValidatorFunc
	byDst  map[reflect.Type]map[string]ValidatorFunc
}

func newConverterRegistry() *converterRegistry {
	return &converterRegistry{
		global: make(map[string]ConverterFunc),
		byDst:  make(map[reflect.Type]map[string]ConverterFunc),
	}
}

func newValidatorRegistry() *validatorRegistry {
	return &validatorRegistry{
		global: make(map[string]ValidatorFunc),
		byDst:  make(map[reflect.Type]map[string]ValidatorFunc),
	}
}

// lookup applies precedence dst > global.
func (r *converterRegistry) lookup(dt reflect.Type, field string) ConverterFunc {
	if fn := r.byDst[dt][field]; fn != nil {
		return fn
	}
	return r.global[field]
}

func (r *validatorRegistry) lookup(dt reflect.Type, field string) ValidatorFunc {
	if fn := r.byDst[dt][field]; fn != nil {
		return fn
	}
	return r.global[field]
}

func (r *converterRegistry) clone(extra int) *converterRegistry {
	n := &converterRegistry{
		global: make(map[string]ConverterFunc, len(r.global)+extra),
		byDst:  make(map[reflect.Type]map[string]ConverterFunc, len(r.byDst)+extra),
	}
	for k, v := range r.global {
		n.global[k] = v
	}
	for t, m := range r.byDst {
		sub := make(map[string]ConverterFunc, len(m))
		for k, v := range m {
			sub[k] = v
		}
		n.byDst[t] = sub
	}
	return n
}

func (r *validatorRegistry) clone(extra int) *validatorRegistry {
	n := &validatorRegistry{
		global: make(map[string]ValidatorFunc, len(r.global)+extra),
		byDst:  make(map[reflect.Type]map[string]ValidatorFunc, len(r.byDst)+extra),
	}
	for k, v := range r.global {
		n.global[k] = v
	}
	for t, m := range r.byDst {
		sub := make(map[string]ValidatorFunc, len(m))
		for k, v := range m {
			sub[k] = v
		}
		n.byDst[t] = sub
	}
	return n
}

func (r *converterRegistry) setFor(dt reflect.Type, field string, fn ConverterFunc) {
	m := r.byDst[dt]
	if m == nil {
		m = make(map[string]ConverterFunc)
		r.byDst[dt] = m
	}
	m[field] = fn
}

func (r *validatorRegistry) setFor(dt reflect.Type, field string, fn ValidatorFunc) {
	m := r.byDst[dt]
	if m == nil {
		m = make(map[string]ValidatorFunc)
		r.byDst[dt] = m
	}
	m[field] = fn
}

// recordType resolves the struct type a registration refers to: a value, a
// pointer to one, or a reflect.Type.
func recordType(v any) reflect.Type {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
