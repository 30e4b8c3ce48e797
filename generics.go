package rowmap

import "reflect"

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// MapRow maps a single row onto a new T. T is a struct or a pointer to one.
// A nil m uses Default().
func MapRow[T any](m *Mapper, row Row) (T, error) {
	var zero T
	v, err := orDefault(m).newRecord(reflect.TypeFor[T](), row, nil)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// Into maps row onto a new T and stores it in dst.
func Into[T any](m *Mapper, dst *T, row Row) error {
	v, err := MapRow[T](m, row)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
