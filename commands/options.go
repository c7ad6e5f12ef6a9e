package commands

import "strings"

// TargetedCommands controls how "/command@botname" style commands match.
type TargetedCommands string

const (
	// TargetedIgnored matches only commands without a bot-username suffix.
	TargetedIgnored TargetedCommands = "ignored"
	// TargetedOptional matches both targeted and non-targeted commands.
	TargetedOptional TargetedCommands = "optional"
	// TargetedRequired matches only commands carrying this bot's username.
	TargetedRequired TargetedCommands = "required"
)

// Options configure how a command is matched against message text.
type Options struct {
	// Prefix identifies a command in message text. Defaults to "/".
	Prefix string

	// MatchOnlyAtStart requires the command to open the message.
	// Defaults to true.
	MatchOnlyAtStart bool

	// TargetedCommands selects how "@botname" suffixes are treated.
	// Defaults to TargetedOptional.
	TargetedCommands TargetedCommands

	// IgnoreCase matches command names case-insensitively.
	// Defaults to false.
	IgnoreCase bool
}

// DefaultOptions returns the standard matching options.
func DefaultOptions() Options {
	return Options{
		Prefix:           "/",
		MatchOnlyAtStart: true,
		TargetedCommands: TargetedOptional,
		IgnoreCase:       false,
	}
}

// CommandOption overrides a single matching option.
type CommandOption func(*Options)

// WithPrefix sets the command prefix. A blank prefix resets to "/".
func WithPrefix(prefix string) CommandOption {
	return func(o *Options) {
		if strings.TrimSpace(prefix) == "" {
			prefix = "/"
		}
		o.Prefix = prefix
	}
}

// WithMatchAnywhere allows the command to appear anywhere in the message.
func WithMatchAnywhere() CommandOption {
	return func(o *Options) {
		o.MatchOnlyAtStart = false
	}
}

// WithTargetedCommands sets the "@botname" suffix handling.
func WithTargetedCommands(mode TargetedCommands) CommandOption {
	return func(o *Options) {
		o.TargetedCommands = mode
	}
}

// WithIgnoreCase enables case-insensitive command matching.
func WithIgnoreCase() CommandOption {
	return func(o *Options) {
		o.IgnoreCase = true
	}
}

func buildOptions(base Options, opts ...CommandOption) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
