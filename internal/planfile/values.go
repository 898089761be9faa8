package planfile

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/relsql/pkg/core"
)

func decodeType(path string, v any) (*core.TypeMapping, error) {
	if v == nil {
		return nil, nil
	}
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	t := &core.TypeMapping{
		StoreType: stringField(m, "store"),
		Nullable:  boolField(m, "nullable"),
		Precision: intField(m, "precision"),
		Scale:     intField(m, "scale"),
		Size:      intField(m, "size"),
	}
	if name := stringField(m, "kind"); name != "" {
		kind, ok := core.ParseTypeKind(name)
		if !ok {
			return nil, invalid(path+".kind", "unknown type kind %q", name)
		}
		t.Kind = kind
	}
	return t, nil
}

func intField(m map[string]any, key string) int {
	n, _ := m[key].(int)
	return n
}

// convertValue turns a YAML scalar into the Go value the declared kind
// expects. Untyped values pass through as decoded.
func convertValue(path string, v any, t *core.TypeMapping) (any, error) {
	if v == nil || t == nil {
		return v, nil
	}
	s, isString := v.(string)
	switch t.Kind {
	case core.KindBinary, core.KindRowVersion:
		if !isString {
			return nil, invalid(path, "binary values are written as hex strings")
		}
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
		if err != nil {
			return nil, invalid(path, "bad hex: %v", err)
		}
		return b, nil
	case core.KindDateTime, core.KindDate, core.KindTime:
		if tm, ok := v.(time.Time); ok {
			return tm, nil
		}
		if !isString {
			return nil, invalid(path, "time values are written as RFC 3339 strings")
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly, time.TimeOnly} {
			if tm, err := time.Parse(layout, s); err == nil {
				return tm, nil
			}
		}
		return nil, invalid(path, "cannot parse time %q", s)
	case core.KindUUID:
		if !isString {
			return nil, invalid(path, "uuid values are written as strings")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, invalid(path, "bad uuid: %v", err)
		}
		return id, nil
	case core.KindDecimal:
		// Decimals keep their exact text; the literal formatter emits it raw.
		return fmt.Sprint(v), nil
	}
	return v, nil
}
