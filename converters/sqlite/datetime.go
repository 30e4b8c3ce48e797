package sqlite

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
)

// SQLite has no date type; these are the text layouts its date functions
// produce, plus RFC 3339.
var textLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02",
}

// TextToTimeConverter parses a TEXT datetime column into a UTC time.Time.
// INTEGER columns are read as unix seconds. time.Time values and NULL pass
// through.
func TextToTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.sqlite.TextToTimeConverter"
	switch v := src.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	}
	srcVal, err := converters.CheckString(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}
	for _, layout := range textLayouts {
		if t, perr := time.Parse(layout, srcVal); perr == nil {
			return t.UTC(), nil
		}
	}
	return nil, errors.New(op).Errorf("Bad datetime format: %q", srcVal)
}

// TextToDateConverter parses a TEXT date column (YYYY-MM-DD or YYYYMMDD).
func TextToDateConverter(src any) (any, error) {
	const op errors.Op = "converters.sqlite.TextToDateConverter"
	retVal, err := converters.DateConverter(src)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}
	return retVal, nil
}
