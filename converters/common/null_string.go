package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
	"github.com/aarondl/null/v8"
)

// StringToNullStringConverter turns a text column into a null.String where
// NULL and the empty string are both invalid (null).
func StringToNullStringConverter(src any) (any, error) {
	const op errors.Op = "converters.common.StringToNullStringConverter"
	switch v := src.(type) {
	case nil:
		return null.String{}, nil
	case null.String:
		if v.String == "" {
			return null.String{}, nil
		}
		return v, nil
	case string:
		if v == "" {
			return null.String{}, nil
		}
	case []byte:
		if len(v) == 0 {
			return null.String{}, nil
		}
	}
	srcVal, err := converters.CheckString(op, src)
	if err != nil {
		return null.String{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return null.StringFrom(srcVal), nil
}

// NullStringToStringConverter flattens a nullable text column into a plain
// string; NULL becomes "".
func NullStringToStringConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullStringToStringConverter"
	switch v := src.(type) {
	case nil:
		return "", nil
	case null.String:
		if !v.Valid {
			return "", nil
		}
		return v.String, nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", errors.New(op).Errorf("Given parameter not a string or null.String, got %T", src)
}
