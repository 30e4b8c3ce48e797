package converters

import (
	"math"
	"time"

	"github.com/Station-Manager/errors"
)

// CheckString returns src as a non-empty string. Driver []byte values are
// accepted as text.
func CheckString(op errors.Op, src any) (string, error) {
	var srcVal string
	switch v := src.(type) {
	case string:
		srcVal = v
	case []byte:
		srcVal = string(v)
	default:
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	if srcVal == "" {
		return "", errors.New(op).Msg(ErrMsgEmptyValue)
	}
	return srcVal, nil
}

// CheckFloat64 returns src as a non-zero float64.
func CheckFloat64(op errors.Op, src any) (float64, error) {
	srcVal, ok := src.(float64)
	if !ok {
		return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
	}
	if srcVal == 0 {
		return 0, errors.New(op).Msg(ErrMsgEmptyValue)
	}
	return srcVal, nil
}

// CheckInt64 accepts any integer type, and float64 values with no fractional
// part (what JSON decoding produces).
func CheckInt64(op errors.Op, src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return -1, errors.New(op).Errorf("Given parameter overflows int64: %d", v)
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return -1, errors.New(op).Errorf("Given parameter overflows int64: %d", v)
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return -1, errors.New(op).Errorf("Given parameter not an integral float64, got %v", v)
		}
		return int64(v), nil
	}
	return -1, errors.New(op).Errorf("Given parameter not a int64, got %T", src)
}

// CheckTime returns src as a time.Time.
func CheckTime(op errors.Op, src any) (time.Time, error) {
	srcVal, ok := src.(time.Time)
	if !ok {
		return time.Time{}, errors.New(op).Errorf("Given parameter not a time.Time, got %T", src)
	}
	return srcVal, nil
}
