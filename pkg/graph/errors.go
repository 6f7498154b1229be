package graph

import "fmt"

// ConfigError is fatal: the build aborts and no partial model is produced.
// The only source today is palette exhaustion (more components than the
// scheme can color).
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DanglingLinkError is a data-integrity violation: a linked feature
// references a step node that does not exist at the point the edge is
// emitted, either because the source step was never materialized (no
// caption) or because it is not temporally earlier in traversal order.
type DanglingLinkError struct {
	// Component and Step locate the linking step.
	Component string
	Step      int
	// Feature is the linked feature name.
	Feature string
	// Source is the missing step node identity the link points at.
	Source string
}

func (e *DanglingLinkError) Error() string {
	return fmt.Sprintf("dangling link: %s step %d feature %q references missing step node %q",
		e.Component, e.Step, e.Feature, e.Source)
}
