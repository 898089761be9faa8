package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInfo() CommandInfo {
	return NewCommandInfo("people.yaml", "sqlite", &core.Command{
		SQL: "SELECT \"Name\"\nFROM \"People\"\nWHERE \"Team\" = @team",
		Parameters: []core.ParameterValue{
			{Name: "team", Value: "core", Type: &core.TypeMapping{Kind: core.KindString}},
		},
	})
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, ModeAuto).EffectiveMode(), "buffers are not terminals")
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, "").EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&buf, &buf, ModeText).EffectiveMode())
}

func TestNewCommandInfo(t *testing.T) {
	info := sampleInfo()
	require.Len(t, info.Parameters, 1)
	assert.Equal(t, ParamInfo{Name: "team", Value: "'core'", Type: "string"}, info.Parameters[0])
}

func TestCommand_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	require.NoError(t, r.Command(sampleInfo()))

	out := buf.String()
	assert.Contains(t, out, "people.yaml (sqlite)")
	assert.Contains(t, out, "WHERE \"Team\" = @team")
	assert.Contains(t, out, "'core'")
	assert.NotContains(t, out, "\x1b[", "no escape codes when writing to a buffer")
}

func TestCommand_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	require.NoError(t, r.Command(sampleInfo()))

	out := buf.String()
	assert.Contains(t, out, "### people.yaml (sqlite)")
	assert.Contains(t, out, "```sql\nSELECT \"Name\"")
	assert.Contains(t, out, "| Name | Value | Type |")
}

func TestCommands_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.Commands([]CommandInfo{sampleInfo(), sampleInfo()}))

	var decoded []CommandInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "sqlite", decoded[0].Dialect)
	assert.Equal(t, "team", decoded[1].Parameters[0].Name)
}

func TestWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	NewRenderer(&out, &errOut, ModeText).Warn("skipped %d", 2)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "skipped 2")
}
