package commands

import (
	"context"
	"slices"
	"strings"

	"github.com/prilive-com/tgcmd/tg"
)

// Context carries one update through command matching and dispatch.
type Context struct {
	Update tg.Update
	Me     *tg.User
	API    API

	// Match holds the trimmed argument text of the last matched command.
	Match string
	// CommandMatch holds the structured result of the last matched command.
	CommandMatch *CommandMatch
	// Suggestion holds the nearest-command guess stashed by NotFound.
	Suggestion string
}

// NewContext wraps an update with the bot identity and API access.
func NewContext(update tg.Update, me *tg.User, api API) *Context {
	return &Context{Update: update, Me: me, API: api}
}

// Msg returns the update's message, channel post or edited variant.
func (c *Context) Msg() *tg.Message {
	return c.Update.Msg()
}

// Chat returns the chat the update happened in, or nil.
func (c *Context) Chat() *tg.Chat {
	if msg := c.Msg(); msg != nil {
		return msg.Chat
	}
	return nil
}

// From returns the sender, or nil.
func (c *Context) From() *tg.User {
	if msg := c.Msg(); msg != nil {
		return msg.From
	}
	return nil
}

// Text returns the message text, falling back to the caption.
func (c *Context) Text() string {
	msg := c.Msg()
	if msg == nil {
		return ""
	}
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

// SetMyCommands publishes the groups' commands to the current chat, merging
// same-(scope, language) lists across groups in registration order.
// Returns ErrNoChat when the update has no chat.
func (c *Context) SetMyCommands(ctx context.Context, groups []*Group, opts ...SetCommandsOption) error {
	chat := c.Chat()
	if chat == nil {
		return ErrNoChat
	}
	params, uncompliant := ParamsFrom(groups, chat.ID)
	return SetBotCommands(ctx, c.API, params, uncompliant, opts...)
}

// NearestCommand returns the best fuzzy guess "prefix+name" for the current
// message text across the groups, or "" when nothing clears the similarity
// threshold. Returns ErrNoText when the update has no text.
//
// The sender's language_code picks the localization pool unless the caller
// ignores localization.
func (c *Context) NearestCommand(groups []*Group, opts ...FuzzyOption) (string, error) {
	if c.Text() == "" {
		return "", ErrNoText
	}

	cfg := buildFuzzyOptions(opts)
	if cfg.IgnoreLocalization {
		cfg.Language = ""
	} else if from := c.From(); from != nil {
		cfg.Language = from.LanguageCode
	}

	var best *FuzzyResult
	for _, g := range groups {
		entities := commandEntities(c.Text(), g.Prefixes())
		if len(entities) == 0 {
			continue
		}
		first := entities[0]
		input := strings.Replace(first.Text, first.Prefix, "", 1)

		result := FuzzyMatch(input, g, cfg)
		if result != nil && (best == nil || result.Similarity > best.Similarity) {
			best = result
		}
	}
	if best == nil {
		return "", nil
	}
	return best.Command.Prefix + best.Command.Name, nil
}

// CommandEntities scans the message text for command-like tokens under every
// prefix registered across the groups. Returns ErrNoText when the update has
// no text.
func (c *Context) CommandEntities(groups ...*Group) ([]CommandEntity, error) {
	text := c.Text()
	if text == "" {
		return nil, ErrNoText
	}

	var prefixes []string
	for _, g := range groups {
		for _, p := range g.Prefixes() {
			if !slices.Contains(prefixes, p) {
				prefixes = append(prefixes, p)
			}
		}
	}
	if len(prefixes) == 0 {
		return nil, nil
	}
	return commandEntities(text, prefixes), nil
}

// NotFound builds a predicate for unmatched updates: when the text carries a
// command-like token for the groups' prefixes, it stashes the fuzzy
// suggestion on the context and passes.
func NotFound(groups []*Group, opts ...FuzzyOption) Predicate {
	return func(_ context.Context, c *Context) (bool, error) {
		if !containsCommands(c.Text(), groups) {
			return false, nil
		}
		suggestion, err := c.NearestCommand(groups, opts...)
		if err != nil {
			return false, err
		}
		c.Suggestion = suggestion
		return true, nil
	}
}
