// Package paramlog formats bound parameters for log output.
//
// Formatting is a pure function of the parameter values; it does not depend
// on the dialect or on how the SQL was rendered.
package paramlog

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/relsql/pkg/core"
)

// MaxBinaryBytes is the number of bytes shown before a binary value is truncated.
const MaxBinaryBytes = 32

// Options controls parameter formatting.
type Options struct {
	// Sensitive enables value output. When false every value is written as "?".
	Sensitive bool
}

// Format renders params as "name=value" pairs separated by ", ".
func Format(params []core.ParameterValue, opts Options) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		if opts.Sensitive {
			sb.WriteString(FormatValue(p.Value))
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// FormatValue renders one parameter value.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(x)
	case []byte:
		return formatBinary(x)
	case time.Time:
		return quote(x.Format(time.RFC3339Nano))
	case uuid.UUID:
		return quote(x.String())
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'G', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'G', -1, 32)
	case fmt.Stringer:
		return quote(x.String())
	default:
		return fmt.Sprint(x)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func formatBinary(b []byte) string {
	if len(b) <= MaxBinaryBytes {
		return "0x" + strings.ToUpper(hex.EncodeToString(b))
	}
	return "0x" + strings.ToUpper(hex.EncodeToString(b[:MaxBinaryBytes])) + "..."
}

// Attr returns a log attribute holding the formatted parameters.
// Formatting is deferred until a handler resolves the value.
func Attr(params []core.ParameterValue, opts Options) slog.Attr {
	return slog.Any("parameters", logValue{params: params, opts: opts})
}

type logValue struct {
	params []core.ParameterValue
	opts   Options
}

// LogValue implements slog.LogValuer.
func (v logValue) LogValue() slog.Value {
	return slog.StringValue(Format(v.params, v.opts))
}
