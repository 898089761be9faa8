package sqlgen

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

// FormatLiteral formats a constant value as a SQL literal in the dialect.
func FormatLiteral(d *dialect.Dialect, value any, t *core.TypeMapping) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return d.Literals.True
		}
		return d.Literals.False
	case string:
		if t.IsDecimal() && isNumeric(v) {
			return v
		}
		return quoteString(d.Literals.StringPrefix, v)
	case []byte:
		return formatBinary(d.Literals.Binary, v)
	case time.Time:
		return fmt.Sprintf(d.Literals.DateTimeFormat, v.Format(d.Literals.DateTimeLayout))
	case uuid.UUID:
		return quoteString("", v.String())
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case fmt.Stringer:
		return quoteString(d.Literals.StringPrefix, v.String())
	default:
		return quoteString(d.Literals.StringPrefix, fmt.Sprint(v))
	}
}

// quoteString doubles embedded single quotes.
func quoteString(prefix, s string) string {
	return prefix + "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatFloat writes the shortest round-trippable form, always marked as
// approximate numeric (with a decimal point or exponent).
func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "'" + strconv.FormatFloat(f, 'G', -1, bits) + "'"
	}
	s := strconv.FormatFloat(f, 'G', -1, bits)
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	}
	return s
}

func formatBinary(style dialect.BinaryLiteralStyle, b []byte) string {
	switch style {
	case dialect.BinaryHex:
		return "0x" + strings.ToUpper(hex.EncodeToString(b))
	case dialect.BinaryBytea:
		return `'\x` + hex.EncodeToString(b) + `'::bytea`
	case dialect.BinaryHextoraw:
		return "HEXTORAW('" + strings.ToUpper(hex.EncodeToString(b)) + "')"
	default:
		return "X'" + strings.ToUpper(hex.EncodeToString(b)) + "'"
	}
}

// isNumeric accepts plain decimal text: an optional sign, digits and at most
// one decimal point. NaN, Inf, exponents and hex floats are rejected.
func isNumeric(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, point := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !point:
			point = true
		default:
			return false
		}
	}
	return digits > 0
}
