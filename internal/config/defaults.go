package config

import (
	"github.com/leapstack-labs/traceviz/pkg/palette"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

// Default configuration values.
const (
	DefaultTraceFile = "trace.json"
	DefaultPort      = 7680
)

// Defaults returns the base configuration map loaded before any other
// provider.
func Defaults() map[string]any {
	return map[string]any{
		"trace":    DefaultTraceFile,
		"palette":  palette.DefaultScheme,
		"layout":   traceviz.DefaultLayout,
		"ui.port":  DefaultPort,
		"ui.watch": true,
		"ui.open":  false,
	}
}
