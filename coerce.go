package rowmap

import (
	"database/sql"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// setterFunc assigns a raw row value to dst, coercing it to dst's type.
// dst is always settable.
type setterFunc func(dst reflect.Value, raw any) error

var (
	scannerType  = reflect.TypeFor[sql.Scanner]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// errEnumUnparsed marks an enum value that did not match any member. The
// mapper swallows it and leaves the field unset.
type errEnumUnparsed struct{ value string }

func (e errEnumUnparsed) Error() string { return "unrecognised enum value " + e.value }

// setterFor builds the coercion for values of type t. It is resolved once per
// record field and reused for every row.
func setterFor(t reflect.Type) setterFunc {
	const op errors.Op = "rowmap.coerce"

	if tbl, ok := lookupEnum(t); ok {
		return func(dst reflect.Value, raw any) error {
			s := cast.ToString(textual(raw))
			v, ok := tbl.parse(s)
			if !ok {
				return errEnumUnparsed{value: s}
			}
			dst.Set(v)
			return nil
		}
	}

	if t.Kind() == reflect.Pointer && !reflect.PointerTo(t).Implements(scannerType) {
		elem := setterFor(t.Elem())
		return func(dst reflect.Value, raw any) error {
			if raw == nil {
				dst.Set(reflect.Zero(t))
				return nil
			}
			p := reflect.New(t.Elem())
			if err := elem(p.Elem(), raw); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}
	}

	if reflect.PointerTo(t).Implements(scannerType) {
		return func(dst reflect.Value, raw any) error {
			if raw != nil {
				if rv := reflect.ValueOf(raw); rv.Type().AssignableTo(t) {
					dst.Set(rv)
					return nil
				}
			}
			return dst.Addr().Interface().(sql.Scanner).Scan(raw)
		}
	}

	kindSet := kindSetter(t)
	return func(dst reflect.Value, raw any) error {
		if raw == nil {
			switch t.Kind() {
			case reflect.String:
				dst.SetString("")
				return nil
			case reflect.Interface, reflect.Map, reflect.Slice:
				dst.Set(reflect.Zero(t))
				return nil
			}
			return errors.New(op).Errorf("cannot assign NULL to %s", t)
		}
		rv := reflect.ValueOf(raw)
		if rv.Type().AssignableTo(t) {
			if b, ok := raw.([]byte); ok {
				rv = reflect.ValueOf(append([]byte(nil), b...))
			}
			dst.Set(rv)
			return nil
		}
		return kindSet(dst, textual(raw))
	}
}

// textual turns driver []byte values into strings so that numeric and
// boolean parsing sees text.
func textual(raw any) any {
	if b, ok := raw.([]byte); ok {
		return string(b)
	}
	return raw
}

func kindSetter(t reflect.Type) setterFunc {
	const op errors.Op = "rowmap.coerce"

	switch {
	case t == timeType:
		return func(dst reflect.Value, raw any) error {
			v, err := cast.ToTimeE(raw)
			if err != nil {
				return causeErr(op, err)
			}
			dst.Set(reflect.ValueOf(v))
			return nil
		}
	case t == durationType:
		return func(dst reflect.Value, raw any) error {
			v, err := cast.ToDurationE(raw)
			if err != nil {
				return causeErr(op, err)
			}
			dst.SetInt(int64(v))
			return nil
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		return func(dst reflect.Value, raw any) error {
			v, err := cast.ToBoolE(raw)
			if err != nil {
				return causeErr(op, err)
			}
			dst.SetBool(v)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(dst reflect.Value, raw any) error {
			in, err := signedInput(op, raw)
			if err != nil {
				return causeErr(op, err)
			}
			v, err := cast.ToInt64E(in)
			if err != nil {
				return causeErr(op, err)
			}
			if dst.OverflowInt(v) {
				return errors.New(op).Errorf("value %d overflows %s", v, t)
			}
			dst.SetInt(v)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(dst reflect.Value, raw any) error {
			in, err := unsignedInput(op, raw)
			if err != nil {
				return causeErr(op, err)
			}
			v, err := cast.ToUint64E(in)
			if err != nil {
				return causeErr(op, err)
			}
			if dst.OverflowUint(v) {
				return errors.New(op).Errorf("value %d overflows %s", v, t)
			}
			dst.SetUint(v)
			return nil
		}
	case reflect.Float32, reflect.Float64:
		return func(dst reflect.Value, raw any) error {
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return causeErr(op, err)
			}
			if dst.OverflowFloat(v) {
				return errors.New(op).Errorf("value %g overflows %s", v, t)
			}
			dst.SetFloat(v)
			return nil
		}
	case reflect.String:
		return func(dst reflect.Value, raw any) error {
			v, err := cast.ToStringE(raw)
			if err != nil {
				return causeErr(op, err)
			}
			dst.SetString(v)
			return nil
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return func(dst reflect.Value, raw any) error {
				s, ok := raw.(string)
				if !ok {
					return errors.New(op).Errorf("cannot assign %T to %s", raw, t)
				}
				dst.SetBytes([]byte(s))
				return nil
			}
		}
		return jsonSetter(t)
	case reflect.Struct, reflect.Map:
		return jsonSetter(t)
	}

	return func(dst reflect.Value, raw any) error {
		rv := reflect.ValueOf(raw)
		if rv.Type().ConvertibleTo(t) {
			dst.Set(rv.Convert(t))
			return nil
		}
		return errors.New(op).Errorf("cannot assign %T to %s", raw, t)
	}
}

// integerText is a base 10 integer with an optional all-zero fraction.
var integerText = regexp.MustCompile(`^[+-]?[0-9]+(\.0+)?$`)

// decimalText reduces integer text to a form cast reads as base 10. cast
// honours base prefixes, so "010" would otherwise parse as octal. Empty text
// is left for cast, which reads it as zero.
func decimalText(op errors.Op, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return s, nil
	}
	if !integerText.MatchString(s) {
		return "", errors.New(op).Errorf("%q is not a base 10 integer", s)
	}
	s, _, _ = strings.Cut(s, ".")
	var sign string
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	if s = strings.TrimLeft(s, "0"); s == "" {
		s = "0"
	}
	return sign + s, nil
}

// signedInput narrows raw before cast converts it to int64. cast converts
// unsigned and float values with a plain conversion, which wraps when they
// do not fit.
func signedInput(op errors.Op, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return decimalText(op, v)
	case uint, uint64, float64:
		return converters.CheckInt64(op, v)
	case uintptr:
		return converters.CheckInt64(op, uint64(v))
	case float32:
		return converters.CheckInt64(op, float64(v))
	}
	return raw, nil
}

// unsignedInput is signedInput for unsigned fields. cast already rejects
// negative values.
func unsignedInput(op errors.Op, raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case string:
		return decimalText(op, v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return raw, nil
	}
	if f != math.Trunc(f) || f < 0 || f >= 1<<64 {
		return nil, errors.New(op).Errorf("value %v is not a uint64", f)
	}
	return uint64(f), nil
}

// jsonSetter decodes JSON text columns into composite fields.
func jsonSetter(t reflect.Type) setterFunc {
	const op errors.Op = "rowmap.coerce.json"
	return func(dst reflect.Value, raw any) error {
		s, ok := raw.(string)
		if !ok {
			return errors.New(op).Errorf("cannot assign %T to %s", raw, t)
		}
		p := reflect.New(t)
		if err := json.Unmarshal([]byte(s), p.Interface()); err != nil {
			return causeErr(op, err)
		}
		dst.Set(p.Elem())
		return nil
	}
}
