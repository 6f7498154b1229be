// Package palette provides deterministic color assignment for graph
// components. The builder treats it as an external collaborator: given a
// scheme name and a count it either returns that many distinct colors or
// fails, and a failure is fatal for the whole build.
package palette

import (
	"errors"
	"fmt"
)

// Color is an opaque RGB value in "#rrggbb" form.
type Color string

// ErrTooManyColors is returned when a scheme cannot produce the requested
// number of distinct colors.
var ErrTooManyColors = errors.New("palette: scheme exhausted")

// ErrUnknownScheme is returned for scheme names not in the registry.
var ErrUnknownScheme = errors.New("palette: unknown scheme")

// Generator produces sequences of distinct colors.
type Generator interface {
	// Generate returns exactly n distinct colors for the named scheme,
	// index-aligned and stable across calls, or an error.
	Generate(scheme string, n int) ([]Color, error)
}

// DefaultScheme is the scheme used when none is configured.
const DefaultScheme = "qualitative"

// qualitative is a hand-picked 12-color categorical scheme chosen for
// contrast on both dark and light backgrounds.
var qualitative = []Color{
	"#f59e0b", "#8b5cf6", "#3b82f6", "#10b981",
	"#ef4444", "#f97316", "#06b6d4", "#ec4899",
	"#84cc16", "#6366f1", "#14b8a6", "#eab308",
}

var schemes = map[string][]Color{
	DefaultScheme: qualitative,
}

// Static is the built-in Generator backed by fixed scheme tables.
type Static struct{}

// New returns the built-in generator.
func New() *Static {
	return &Static{}
}

// Generate implements Generator. It fails with ErrTooManyColors when n
// exceeds the scheme size: partial palettes would leave components
// indistinguishable, so the caller must abort instead.
func (*Static) Generate(scheme string, n int) ([]Color, error) {
	table, ok := schemes[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	if n < 0 {
		return nil, fmt.Errorf("palette: negative count %d", n)
	}
	if n > len(table) {
		return nil, fmt.Errorf("%w: %q supports %d colors, %d requested",
			ErrTooManyColors, scheme, len(table), n)
	}
	out := make([]Color, n)
	copy(out, table[:n])
	return out, nil
}

// MaxColors returns the capacity of the named scheme, or 0 if unknown.
func MaxColors(scheme string) int {
	return len(schemes[scheme])
}
