package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
	"github.com/aarondl/null/v8"
)

// IntToNullBoolConverter turns a 0/1 flag column into a null.Bool. NULL
// becomes an invalid null.Bool; any integer other than 0 or 1 is rejected.
func IntToNullBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.common.IntToNullBoolConverter"
	switch v := src.(type) {
	case nil:
		return null.Bool{}, nil
	case bool:
		return null.BoolFrom(v), nil
	case null.Bool:
		return v, nil
	}
	n, err := converters.CheckInt64(op, src)
	if err != nil {
		return null.Bool{}, errors.New(op).Err(err).Msg(err.Error())
	}
	switch n {
	case 0:
		return null.BoolFrom(false), nil
	case 1:
		return null.BoolFrom(true), nil
	}
	return null.Bool{}, errors.New(op).Errorf("Given flag must be 0 or 1, got %d", n)
}

// NullBoolToBoolConverter flattens a nullable boolean into a bool; NULL
// becomes false.
func NullBoolToBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullBoolToBoolConverter"

	if nb, ok := src.(null.Bool); ok {
		if !nb.Valid {
			return false, nil
		}
		return nb.Bool, nil
	}
	switch v := src.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	}
	return false, errors.New(op).Errorf("Given parameter not a bool or null.Bool, got %T", src)
}
