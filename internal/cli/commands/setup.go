package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/traceviz/internal/cli/output"
	"github.com/leapstack-labs/traceviz/internal/config"
	"github.com/leapstack-labs/traceviz/pkg/trace"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

type contextKey struct{}

// WithContext stores command dependencies in a context.
func WithContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, r *output.Renderer) context.Context {
	return context.WithValue(ctx, contextKey{}, &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	})
}

// NewCommandContext retrieves command dependencies stored by the root
// command, falling back to defaults when run outside it (tests).
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	if cc, ok := cmd.Context().Value(contextKey{}).(*CommandContext); ok {
		return cc
	}
	return &CommandContext{
		Cfg:      &config.Config{},
		Logger:   slog.New(slog.DiscardHandler),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto),
	}
}

// LoadTrace loads the configured master trace and optional master spec.
func (cc *CommandContext) LoadTrace() (*trace.MasterTrace, *trace.MasterSpec, error) {
	if cc.Cfg.Trace == "" {
		return nil, nil, fmt.Errorf("no trace file configured (use --trace or traceviz.yaml)")
	}
	master, err := trace.Load(cc.Cfg.Trace)
	if err != nil {
		return nil, nil, err
	}

	var spec *trace.MasterSpec
	if cc.Cfg.Spec != "" {
		spec, err = trace.LoadSpec(cc.Cfg.Spec)
		if err != nil {
			return nil, nil, err
		}
	}
	return master, spec, nil
}

// NewInstance loads the trace and performs the one-time build pass.
func (cc *CommandContext) NewInstance(containerID string) (*traceviz.Instance, error) {
	master, spec, err := cc.LoadTrace()
	if err != nil {
		return nil, err
	}
	return traceviz.New(master, containerID, spec, traceviz.Options{
		Scheme: cc.Cfg.Palette,
		Layout: cc.Cfg.Layout,
		Logger: cc.Logger,
	})
}
