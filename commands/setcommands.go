package commands

import (
	"context"
	"fmt"
)

type setCommandsConfig struct {
	ignoreUncompliant bool
}

// SetCommandsOption configures SetBotCommands.
type SetCommandsOption func(*setCommandsConfig)

// IgnoreUncompliantCommands publishes the compliant commands even when some
// registered commands cannot be expressed in the command menu.
func IgnoreUncompliantCommands() SetCommandsOption {
	return func(cfg *setCommandsConfig) {
		cfg.ignoreUncompliant = true
	}
}

// SetBotCommands publishes every wire record through api. When uncompliant
// is non-empty and the caller did not opt into IgnoreUncompliantCommands,
// the transport is refused with *UncompliantCommandsError listing every
// offending command, its language and every reason.
func SetBotCommands(ctx context.Context, api API, params []SetMyCommandsParams, uncompliant []UncompliantCommand, opts ...SetCommandsOption) error {
	var cfg setCommandsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(uncompliant) > 0 && !cfg.ignoreUncompliant {
		return &UncompliantCommandsError{Commands: uncompliant}
	}

	for _, p := range params {
		if err := api.SetMyCommands(ctx, p); err != nil {
			return fmt.Errorf("set commands for scope %q: %w", p.Scope.Type, err)
		}
	}
	return nil
}
