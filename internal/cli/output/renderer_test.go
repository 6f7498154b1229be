package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode_Explicit(t *testing.T) {
	var buf bytes.Buffer
	for _, mode := range []Mode{ModeText, ModeJSON, ModeMarkdown} {
		r := NewRenderer(&buf, &buf, mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestEffectiveMode_AutoOnBuffer(t *testing.T) {
	// A plain writer is not a terminal, so auto resolves to markdown.
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	r.Header(1, "Summary")
	r.Header(2, "Details")

	assert.Contains(t, buf.String(), "# Summary")
	assert.Contains(t, buf.String(), "## Details")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"nodes": 4}))

	var out map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 4, out["nodes"])
}

func TestTable_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	r.Table(table.Row{"Component", "Steps"}, []table.Row{{"tokenizer", 3}})

	out := buf.String()
	assert.Contains(t, out, "| Component | Steps |")
	assert.Contains(t, out, "tokenizer")
}

func TestErrorf_WritesToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Errorf("boom: %d", 7)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "boom: 7")
}
