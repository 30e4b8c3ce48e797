package converters

import (
	"math"
	"testing"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkCase feeds one value, shaped the way a database/sql driver returns
// it, to a Check function.
type checkCase[T any] struct {
	name    string
	input   any
	want    T
	wantErr bool
}

func runChecks[T any](t *testing.T, check func(errors.Op, any) (T, error), tests []checkCase[T]) {
	t.Helper()
	const op errors.Op = "converters.test"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := check(op, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				de, ok := errors.AsDetailedError(err)
				require.True(t, ok, "got %T", err)
				assert.Equal(t, op, de.Op())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

var stamp = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestCheckString(t *testing.T) {
	runChecks(t, CheckString, []checkCase[string]{
		{name: "TEXT as string", input: "INV-1", want: "INV-1"},
		{name: "TEXT as bytes", input: []byte("INV-1"), want: "INV-1"},
		{name: "empty bytes", input: []byte{}, wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "INTEGER", input: int64(7), wantErr: true},
		{name: "REAL", input: 1.5, wantErr: true},
		{name: "TIMESTAMP", input: stamp, wantErr: true},
		{name: "NULL", input: nil, wantErr: true},
	})
}

func TestCheckFloat64(t *testing.T) {
	runChecks(t, CheckFloat64, []checkCase[float64]{
		{name: "REAL", input: 19.99, want: 19.99},
		{name: "negative REAL", input: -0.25, want: -0.25},
		{name: "zero is empty", input: 0.0, wantErr: true},
		{name: "INTEGER", input: int64(3), wantErr: true},
		{name: "numeric text", input: []byte("19.99"), wantErr: true},
		{name: "TIMESTAMP", input: stamp, wantErr: true},
		{name: "NULL", input: nil, wantErr: true},
	})
}

func TestCheckInt64(t *testing.T) {
	runChecks(t, CheckInt64, []checkCase[int64]{
		{name: "INTEGER", input: int64(-42), want: -42},
		{name: "largest INTEGER", input: int64(math.MaxInt64), want: math.MaxInt64},
		{name: "int32 from a narrow driver", input: int32(9), want: 9},
		{name: "uint8", input: uint8(255), want: 255},
		{name: "uint64 that fits", input: uint64(math.MaxInt64), want: math.MaxInt64},
		{name: "uint64 past int64", input: uint64(1) << 63, wantErr: true},
		{name: "whole REAL", input: 3.0, want: 3},
		{name: "fractional REAL", input: 2.5, wantErr: true},
		{name: "REAL at 2^63", input: float64(1 << 63), wantErr: true},
		{name: "REAL below int64", input: -1e19, wantErr: true},
		{name: "REAL NaN", input: math.NaN(), wantErr: true},
		{name: "REAL infinity", input: math.Inf(1), wantErr: true},
		{name: "numeric text", input: []byte("12"), wantErr: true},
		{name: "TIMESTAMP", input: stamp, wantErr: true},
		{name: "NULL", input: nil, wantErr: true},
	})
}

func TestCheckTime(t *testing.T) {
	runChecks(t, CheckTime, []checkCase[time.Time]{
		{name: "TIMESTAMP", input: stamp, want: stamp},
		{name: "zero TIMESTAMP", input: time.Time{}, want: time.Time{}},
		{name: "timestamp text", input: []byte("2024-05-01 09:30:00"), wantErr: true},
		{name: "unix seconds", input: int64(1714555800), wantErr: true},
		{name: "NULL", input: nil, wantErr: true},
	})
}
