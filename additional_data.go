package rowmap

import (
	"reflect"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
)

// marshalUnmatched stores the columns no field claimed into an AdditionalData
// field of type null.JSON or types.JSON. An empty set leaves it null.
func marshalUnmatched(dst reflect.Value, unmatched map[string]any) error {
	const op errors.Op = "rowmap.marshalUnmatched"
	var data []byte
	if len(unmatched) > 0 {
		b, err := json.Marshal(unmatched)
		if err != nil {
			return causeErr(op, err)
		}
		data = b
	}
	switch dst.Type() {
	case reflect.TypeFor[null.JSON]():
		if data == nil {
			dst.Set(reflect.ValueOf(null.JSON{}))
		} else {
			dst.Set(reflect.ValueOf(null.JSONFrom(data)))
		}
	case reflect.TypeFor[boilertypes.JSON]():
		dst.Set(reflect.ValueOf(boilertypes.JSON(data)))
	}
	return nil
}
