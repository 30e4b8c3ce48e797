package sqlite

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
)

// IntegerToBoolConverter turns SQLite's 0/1 INTEGER booleans into bool. Any
// non-zero value is true, as in SQLite itself. NULL passes through.
func IntegerToBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.sqlite.IntegerToBoolConverter"
	switch v := src.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	}
	n, err := converters.CheckInt64(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}
	return n != 0, nil
}
