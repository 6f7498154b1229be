// Package config provides configuration loading for TraceViz. Values are
// merged from defaults, an optional traceviz.yaml, TRACEVIZ_* environment
// variables, and CLI flags, in that order of increasing precedence.
package config

// Config holds the full tool configuration.
type Config struct {
	// Trace is the path to the master trace JSON file.
	Trace string `koanf:"trace"`
	// Spec is the optional path to a master spec (layout hints) file.
	Spec string `koanf:"spec"`
	// Palette is the color scheme name.
	Palette string `koanf:"palette"`
	// Layout is the named layout strategy handed to the rendering engine.
	Layout string `koanf:"layout"`
	// Output selects the CLI output mode (text, json, markdown).
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	UI UIConfig `koanf:"ui"`
}

// UIConfig holds settings for the web UI server.
type UIConfig struct {
	Port int `koanf:"port"`
	// Watch re-builds the graph when the trace file changes.
	Watch bool `koanf:"watch"`
	// Open auto-opens the browser on serve.
	Open bool `koanf:"open"`
	// Secret is the cookie session secret; empty generates one per run.
	Secret string `koanf:"secret"`
}
