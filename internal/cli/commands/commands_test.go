package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/traceviz/internal/cli/output"
	"github.com/leapstack-labs/traceviz/internal/config"
)

const testTrace = `{
	"components": [
		{"name": "ingest", "steps": [
			{"caption": "read batch"},
			{"caption": null}
		]},
		{"name": "transform", "steps": [
			{"caption": "normalize", "links": [
				{"component": "ingest", "feature": "record", "sources": [
					{"step": 0, "value": "r1"}
				]}
			]}
		]}
	]
}`

// writeTestTrace drops a valid trace file into a temp dir and returns its
// path.
func writeTestTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(testTrace), 0644))
	return path
}

func testContext(cfg *config.Config, out *bytes.Buffer, mode output.Mode) context.Context {
	return WithContext(context.Background(),
		cfg,
		slog.New(slog.DiscardHandler),
		output.NewRenderer(out, out, mode),
	)
}

func TestRenderCommand_WritesHTML(t *testing.T) {
	tracePath := writeTestTrace(t)
	outPath := filepath.Join(t.TempDir(), "graph.html")

	var buf bytes.Buffer
	cmd := NewRenderCommand()
	cmd.SetArgs([]string{"-o", outPath})

	err := cmd.ExecuteContext(testContext(&config.Config{Trace: tracePath}, &buf, output.ModeText))
	require.NoError(t, err)

	page, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "traceviz-graph")
	assert.Contains(t, string(page), "ingest:0")

	assert.Contains(t, buf.String(), "4 nodes, 1 edges")
	assert.Contains(t, buf.String(), "1 steps without captions skipped")
}

func TestRenderCommand_MissingTrace(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewRenderCommand()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(testContext(&config.Config{}, &buf, output.ModeText))
	assert.Error(t, err)
}

func TestInfoCommand_JSON(t *testing.T) {
	tracePath := writeTestTrace(t)

	var buf bytes.Buffer
	cmd := NewInfoCommand()
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(testContext(&config.Config{Trace: tracePath, Output: "json"}, &buf, output.ModeJSON))
	require.NoError(t, err)

	var summary struct {
		Components []struct {
			Name  string `json:"name"`
			Index int    `json:"index"`
		} `json:"components"`
		Nodes        int `json:"nodes"`
		Edges        int `json:"edges"`
		SkippedSteps int `json:"skippedSteps"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))

	assert.Len(t, summary.Components, 2)
	assert.Equal(t, "ingest", summary.Components[0].Name)
	assert.Equal(t, 4, summary.Nodes) // 2 components + 2 captioned steps
	assert.Equal(t, 1, summary.Edges)
	assert.Equal(t, 1, summary.SkippedSteps)
}

func TestInfoCommand_Table(t *testing.T) {
	tracePath := writeTestTrace(t)

	var buf bytes.Buffer
	cmd := NewInfoCommand()
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(testContext(&config.Config{Trace: tracePath}, &buf, output.ModeMarkdown))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Trace Graph")
	assert.Contains(t, out, "ingest")
	assert.Contains(t, out, "transform")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCommand("1.2.3", "2026-01-01", "abc1234")

	err := cmd.ExecuteContext(testContext(&config.Config{}, &buf, output.ModeText))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "traceviz 1.2.3")
	assert.Contains(t, buf.String(), "abc1234")
}

func TestServeCommand_Flags(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	for _, name := range []string{"port", "no-browser", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestBrowseCommand_Metadata(t *testing.T) {
	cmd := NewBrowseCommand()
	assert.Equal(t, "browse", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestLoadTrace_SpecOptional(t *testing.T) {
	tracePath := writeTestTrace(t)

	cc := &CommandContext{Cfg: &config.Config{Trace: tracePath}, Logger: slog.New(slog.DiscardHandler)}
	master, spec, err := cc.LoadTrace()
	require.NoError(t, err)
	assert.Nil(t, spec)
	assert.Len(t, master.Components, 2)
}

func TestLoadTrace_WithSpec(t *testing.T) {
	tracePath := writeTestTrace(t)
	specPath := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(specPath,
		[]byte(`{"adjacency": [{"from": "ingest", "to": "transform"}]}`), 0644))

	cc := &CommandContext{Cfg: &config.Config{Trace: tracePath, Spec: specPath}, Logger: slog.New(slog.DiscardHandler)}
	_, spec, err := cc.LoadTrace()
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Len(t, spec.Adjacency, 1)
}
