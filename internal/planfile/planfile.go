// Package planfile decodes YAML plan and write-batch documents into pkg/core
// nodes for the relsql CLI.
//
// Expressions are tagged maps: the key that names the node kind (col, lit,
// param, op, not, neg, func, cast, case, in, is_null, like, exists, subquery,
// raw, star) selects the variant and sibling keys fill its fields.
package planfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/relsql/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is wrapped by every decoding error.
var ErrInvalidDocument = errors.New("invalid plan document")

// Plan is a decoded query plan file.
type Plan struct {
	Name    string
	Dialect string
	Select  *core.SelectExpr
}

// Writes is a decoded write-batch file.
type Writes struct {
	Dialect  string
	Commands []*core.ModificationCommand
}

// LoadPlan reads and decodes a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}
	p, err := DecodePlan(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadWrites reads and decodes a write-batch file.
func LoadWrites(path string) (*Writes, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read writes %s: %w", path, err)
	}
	w, err := DecodeWrites(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// DecodePlan decodes a plan document.
func DecodePlan(data []byte) (*Plan, error) {
	doc, err := decodeMap(data)
	if err != nil {
		return nil, err
	}
	sel, ok := doc["select"]
	if !ok {
		return nil, invalid("select", "missing select")
	}
	s, err := decodeSelect("select", sel)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Name:    stringField(doc, "name"),
		Dialect: stringField(doc, "dialect"),
		Select:  s,
	}, nil
}

// DecodeWrites decodes a write-batch document.
func DecodeWrites(data []byte) (*Writes, error) {
	doc, err := decodeMap(data)
	if err != nil {
		return nil, err
	}
	items, err := listField("commands", doc["commands"])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("commands", "no commands")
	}
	w := &Writes{Dialect: stringField(doc, "dialect")}
	for i, item := range items {
		cmd, err := decodeCommand(fmt.Sprintf("commands[%d]", i), item)
		if err != nil {
			return nil, err
		}
		w.Commands = append(w.Commands, cmd)
	}
	return w, nil
}

func decodeMap(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	return doc, nil
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, path, fmt.Sprintf(format, args...))
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func mapField(path string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "expected a mapping, got %T", v)
	}
	return m, nil
}

func listField(path string, v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "expected a list, got %T", v)
	}
	return l, nil
}
