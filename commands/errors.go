package commands

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition errors for context operations.
var (
	ErrNoChat = errors.New("tgcmd/commands: update has no chat")
	ErrNoText = errors.New("tgcmd/commands: update has no text")
)

// InvalidScopeError reports an unrecognized command scope. It is raised as a
// panic at registration time since the scope set is fixed at compile time
// and an unknown value is a programming error.
type InvalidScopeError struct {
	Scope Scope
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("tgcmd/commands: invalid scope: %q", e.Scope.Type)
}

// UncompliantCommandsError aggregates every command that cannot be expressed
// in the Bot API command menu, with every reason per command.
type UncompliantCommandsError struct {
	Commands []UncompliantCommand
}

func (e *UncompliantCommandsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tgcmd/commands: %d command(s) are not API compliant:", len(e.Commands))
	for _, cmd := range e.Commands {
		language := cmd.Language
		if language == "" {
			language = "default"
		}
		fmt.Fprintf(&b, "\n  %s (language %q): %s", cmd.Name, language, strings.Join(cmd.Reasons, "; "))
	}
	return b.String()
}
