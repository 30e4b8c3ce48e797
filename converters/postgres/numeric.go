package postgres

import (
	"math"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/rowmap/converters"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/ericlagergren/decimal"
)

// NumericToDecimalConverter turns a NUMERIC column into types.Decimal. lib/pq
// and pgx return NUMERIC as text; float64 and integer values are accepted
// too. NULL is rejected; use NumericToNullDecimalConverter for nullable
// columns.
func NumericToDecimalConverter(src any) (any, error) {
	const op errors.Op = "converters.postgres.NumericToDecimalConverter"
	if src == nil {
		return types.Decimal{}, errors.New(op).Msg(converters.ErrMsgEmptyValue)
	}
	d, err := toBig(op, src)
	if err != nil {
		return types.Decimal{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return types.NewDecimal(d), nil
}

// NumericToNullDecimalConverter is NumericToDecimalConverter for nullable
// columns; NULL becomes a types.NullDecimal with a nil Big.
func NumericToNullDecimalConverter(src any) (any, error) {
	const op errors.Op = "converters.postgres.NumericToNullDecimalConverter"
	if src == nil {
		return types.NullDecimal{}, nil
	}
	d, err := toBig(op, src)
	if err != nil {
		return types.NullDecimal{}, errors.New(op).Err(err).Msg(err.Error())
	}
	return types.NewNullDecimal(d), nil
}

func toBig(op errors.Op, src any) (*decimal.Big, error) {
	if v, ok := src.(types.Decimal); ok {
		return v.Big, nil
	}
	// CheckFloat64 rejects zero; CheckInt64 below picks it up
	if f, err := converters.CheckFloat64(op, src); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.New(op).Errorf("Given parameter not a finite number: %v", f)
		}
		return new(decimal.Big).SetFloat64(f), nil
	}
	if n, err := converters.CheckInt64(op, src); err == nil {
		return decimal.New(n, 0), nil
	}
	srcVal, err := converters.CheckString(op, src)
	if err != nil {
		return nil, err
	}
	d, ok := new(decimal.Big).SetString(srcVal)
	if !ok || d.IsNaN(0) {
		return nil, errors.New(op).Errorf("Given parameter not a decimal number: %q", srcVal)
	}
	return d, nil
}
