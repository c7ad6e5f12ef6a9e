package commands

import (
	"context"
	"regexp"
	"strings"
)

// CommandMatch is the result of parsing a command out of message text.
type CommandMatch struct {
	// Command is the name that matched.
	Command Name

	// Rest is the trimmed remainder of the message after the command token
	// and the optional "@botname" suffix. Empty when the message is only
	// the command.
	Rest string

	// Match holds the submatches of a pattern name executed against the
	// full original text. Nil for literal names.
	Match []string
}

// commandScanRegex tokenizes message text into prefix, command, optional
// "@username" target and the remaining text. The username capture is bound
// to the token immediately following the command name, so an "@" later in
// the arguments is never mistaken for bot targeting.
func commandScanRegex(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(prefix) +
		`(?P<command>[^@\s]+)(?:@(?P<username>\S*))?(?P<rest>.*)`)
}

// FindMatchingCommand parses the update's text (falling back to the caption)
// against the candidate names and returns the first match, or nil.
func FindMatchingCommand(names []Name, opts Options, c *Context) *CommandMatch {
	msg := c.Msg()
	if msg == nil {
		return nil
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return nil
	}

	if opts.MatchOnlyAtStart && !strings.HasPrefix(text, opts.Prefix) {
		return nil
	}

	m := commandScanRegex(opts.Prefix).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	command, username, rest := m[1], m[2], m[3]

	if opts.TargetedCommands == TargetedRequired && username == "" {
		return nil
	}
	if username != "" {
		if c.Me == nil || username != c.Me.Username {
			return nil
		}
		if opts.TargetedCommands == TargetedIgnored {
			return nil
		}
	}

	for _, name := range names {
		if name.IsPattern() {
			// Patterns see the command plus its arguments; the discovery
			// regex above only tokenized, the user's pattern captures.
			if !MatchesPattern(command+rest, name, opts.IgnoreCase) {
				continue
			}
			return &CommandMatch{
				Command: name,
				Rest:    strings.TrimSpace(rest),
				Match:   patternFor(name, opts.IgnoreCase).FindStringSubmatch(text),
			}
		}
		if MatchesPattern(command, name, opts.IgnoreCase) {
			return &CommandMatch{Command: name, Rest: strings.TrimSpace(rest)}
		}
	}
	return nil
}

// HasCommand wraps FindMatchingCommand as a predicate. On success it stashes
// the argument text and the structured match on the context for handlers.
func HasCommand(names []Name, opts Options) Predicate {
	return func(_ context.Context, c *Context) (bool, error) {
		result := FindMatchingCommand(names, opts, c)
		if result == nil {
			return false, nil
		}
		c.Match = result.Rest
		c.CommandMatch = result
		return true, nil
	}
}
