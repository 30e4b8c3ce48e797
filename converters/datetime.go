package converters

import (
	"time"

	"github.com/Station-Manager/errors"
)

// DateConverter turns a YYYYMMDD or YYYY-MM-DD text column into a time.Time
// (UTC midnight). time.Time values and NULL pass through.
func DateConverter(src any) (any, error) {
	const op errors.Op = "converters.DateConverter"
	if src == nil {
		return nil, nil
	}
	if t, ok := src.(time.Time); ok {
		return t, nil
	}
	srcVal, err := CheckString(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}

	var retVal time.Time
	switch len(srcVal) {
	case 8:
		retVal, err = time.Parse("20060102", srcVal)
	case 10:
		if srcVal[4] == '-' && srcVal[7] == '-' {
			retVal, err = time.Parse("2006-01-02", srcVal)
		} else {
			return nil, errors.New(op).Msg(ErrMsgBadDateFormat)
		}
	default:
		return nil, errors.New(op).Msg(ErrMsgBadDateFormat)
	}
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(ErrMsgBadDateFormat)
	}
	return retVal, nil
}

// TimeConverter turns an HHMM or HH:MM text column into a time.Time on the
// zero date. time.Time values and NULL pass through.
func TimeConverter(src any) (any, error) {
	const op errors.Op = "converters.TimeConverter"
	if src == nil {
		return nil, nil
	}
	if t, ok := src.(time.Time); ok {
		return t, nil
	}
	srcVal, err := CheckString(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}

	var retVal time.Time
	switch {
	case len(srcVal) == 5 && srcVal[2] == ':':
		retVal, err = time.Parse("15:04", srcVal)
	case len(srcVal) == 4:
		retVal, err = time.Parse("1504", srcVal)
	default:
		return nil, errors.New(op).Msg(ErrMsgBadTimeFormat)
	}
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(ErrMsgBadTimeFormat)
	}
	return retVal, nil
}
