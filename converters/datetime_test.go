package converters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateConverter(t *testing.T) {
	stored := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{name: "YYYYMMDD format", input: "20251108", want: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)},
		{name: "YYYY-MM-DD format", input: "2025-11-08", want: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)},
		{name: "driver bytes", input: []byte("2024-02-29"), want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "time passes through", input: stored, want: stored},
		{name: "NULL passes through", input: nil, want: nil},
		{name: "wrong separators", input: "2025/11/08", wantErr: true},
		{name: "too short", input: "2025-11", wantErr: true},
		{name: "not a date", input: "20251340", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "number", input: int64(20251108), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateConverter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeConverter(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr bool
	}{
		{name: "HHMM format", input: "1205", want: time.Date(0, 1, 1, 12, 5, 0, 0, time.UTC)},
		{name: "HH:MM format", input: "23:59", want: time.Date(0, 1, 1, 23, 59, 0, 0, time.UTC)},
		{name: "NULL passes through", input: nil, want: nil},
		{name: "hour out of range", input: "2460", wantErr: true},
		{name: "seconds not accepted", input: "12:05:00", wantErr: true},
		{name: "non-string", input: 1205, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeConverter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
