// Package output provides the CLI rendering layer: styled text for
// terminals, markdown for pipes and agents, and JSON for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown otherwise.
	ModeAuto Mode = ""
	// ModeText is styled terminal output.
	ModeText Mode = "text"
	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
	// ModeMarkdown is plain markdown output.
	ModeMarkdown Mode = "markdown"
)

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Accent  lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: defaultStyles(),
	}
}

// EffectiveMode resolves ModeAuto against the environment: text when
// stdout is a terminal, markdown when piped.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		o := termenv.NewOutput(f)
		if o.ColorProfile() != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// Styles returns the style set for text output.
func (r *Renderer) Styles() *Styles { return r.styles }

// Header writes a heading at the given level in the effective mode.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		for i := 0; i < level; i++ {
			fmt.Fprint(r.out, "#")
		}
		fmt.Fprintf(r.out, " %s\n\n", text)
	default:
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		fmt.Fprintln(r.out, style.Render(text))
	}
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Errorf writes a styled error line to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a table in the effective mode: styled box drawing on a
// terminal, pipe-markdown otherwise.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(header)
	t.AppendRows(rows)
	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
