package common

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
	"github.com/aarondl/null/v8"
)

// TimeToNullTimeConverter turns a timestamp column into a null.Time. NULL and
// the zero time both become invalid.
func TimeToNullTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TimeToNullTimeConverter"
	switch v := src.(type) {
	case nil:
		return null.Time{}, nil
	case null.Time:
		return v, nil
	}
	ts, err := converters.CheckTime(op, src)
	if err != nil {
		return null.Time{}, err
	}
	if ts.IsZero() {
		return null.Time{}, nil
	}
	return null.TimeFrom(ts), nil
}

// NullTimeToTimeConverter flattens a nullable timestamp into a time.Time;
// NULL becomes the zero time.
func NullTimeToTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullTimeToTimeConverter"

	if nt, ok := src.(null.Time); ok {
		if !nt.Valid {
			return time.Time{}, nil
		}
		return nt.Time, nil
	}
	switch v := src.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	}
	return time.Time{}, errors.New(op).Errorf("Given parameter not a time.Time or null.Time, got %T", src)
}
