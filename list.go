package rowmap

import (
	"reflect"

	"github.com/Station-Manager/errors"
)

// MapAll advances src to its end and maps every row onto a new T, in row
// order. It fails with ErrEmptyResult when src yields no rows and stops at
// the first row that fails to map, returning no partial result.
func MapAll[T any](m *Mapper, src RowSource) ([]T, error) {
	const op errors.Op = "rowmap.MapAll"
	m = orDefault(m)
	rt := reflect.TypeFor[T]()
	var (
		out []T
		b   *binding
	)
	for {
		ok, err := src.Advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := m.newRecord(rt, src, &b)
		if err != nil {
			return nil, err
		}
		out = append(out, v.Interface().(T))
	}
	if len(out) == 0 {
		return nil, newError(KindEmptyResult, op)
	}
	return out, nil
}

// MapNext advances src once and maps the row it lands on.
func MapNext[T any](m *Mapper, src RowSource) (T, error) {
	const op errors.Op = "rowmap.MapNext"
	var zero T
	ok, err := src.Advance()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, newError(KindEmptyResult, op)
	}
	return MapRow[T](m, src)
}

// MapTable maps every row of t. t is not consumed.
func MapTable[T any](m *Mapper, t *Table) ([]T, error) {
	return MapAll[T](m, t.Reader())
}

// MapTableRow maps row index of t. It fails with ErrEmptyResult on an empty
// table and ErrIndexOutOfRange when index is outside the table.
func MapTableRow[T any](m *Mapper, t *Table, index int) (T, error) {
	const op errors.Op = "rowmap.MapTableRow"
	var zero T
	if t.RowCount() < 1 {
		return zero, newError(KindEmptyResult, op)
	}
	row, err := t.Row(index)
	if err != nil {
		return zero, err
	}
	return MapRow[T](m, row)
}

// MapTableFirst maps the first row of t.
func MapTableFirst[T any](m *Mapper, t *Table) (T, error) {
	return MapTableRow[T](m, t, 0)
}
