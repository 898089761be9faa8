package paramlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	long := bytes.Repeat([]byte{0xAB}, 40)
	ts := time.Date(2024, 3, 9, 14, 5, 6, 123456789, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "Bob", "'Bob'"},
		{"string with quote", "O'Hara", "'O''Hara'"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"short binary", []byte{0xDE, 0xAD, 0xBE, 0xEF}, "0xDEADBEEF"},
		{"binary at limit", bytes.Repeat([]byte{0x01}, 32), "0x" + strings.Repeat("01", 32)},
		{"long binary", long, "0x" + strings.Repeat("AB", 32) + "..."},
		{"time", ts, "'2024-03-09T14:05:06.123456789Z'"},
		{"uuid", id, "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}

func TestFormatValue_TimeRoundTrips(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 59, 1, time.FixedZone("x", 3600))
	formatted := strings.Trim(FormatValue(ts), "'")

	parsed, err := time.Parse(time.RFC3339Nano, formatted)
	assert.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestFormat(t *testing.T) {
	params := []core.ParameterValue{
		{Name: "p0", Value: "Alice"},
		{Name: "p1", Value: nil},
		{Name: "p2", Value: 3},
	}

	assert.Equal(t, "p0='Alice', p1=null, p2=3", Format(params, Options{Sensitive: true}))
	assert.Equal(t, "p0=?, p1=?, p2=?", Format(params, Options{}))
	assert.Equal(t, "", Format(nil, Options{Sensitive: true}))
}

func TestAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("executed", Attr([]core.ParameterValue{{Name: "p0", Value: 1}}, Options{Sensitive: true}))

	assert.Contains(t, buf.String(), `parameters="p0=1"`)
}
