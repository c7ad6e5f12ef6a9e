package commands

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/prilive-com/tgcmd/tg"
)

// maxCommandNameLength is the Bot API limit for command menu entries.
const maxCommandNameLength = 32

// allowedNameChars strips every character the command menu accepts, leaving
// the offending residue for the compliance report.
var allowedNameChars = regexp.MustCompile(`[0-9a-zA-Z_]`)

// Localization is a per-language name/description pair.
type Localization struct {
	Name        Name
	Description string
}

// Command is a single registered command: its localizations, visibility
// scopes and per-scope handler chains. All registration methods are
// append-only and expected to run during startup, before dispatch begins.
type Command struct {
	opts          Options
	localizations map[string]Localization
	languages     []string // insertion order, "default" first
	scopes        []Scope
	scopedChains  []chain
	defaultChains []chain
}

// NewCommand creates a command with the mandatory "default" localization.
func NewCommand(name Name, description string, opts ...CommandOption) *Command {
	return newCommand(name, description, DefaultOptions(), opts...)
}

func newCommand(name Name, description string, base Options, opts ...CommandOption) *Command {
	return &Command{
		opts: buildOptions(base, opts...),
		localizations: map[string]Localization{
			"default": {Name: name, Description: description},
		},
		languages: []string{"default"},
	}
}

// Localize adds a name/description pair for a language code.
func (c *Command) Localize(language string, name Name, description string) *Command {
	if _, exists := c.localizations[language]; !exists {
		c.languages = append(c.languages, language)
	}
	c.localizations[language] = Localization{Name: name, Description: description}
	return c
}

// Options returns the command's matching options.
func (c *Command) Options() Options {
	return c.opts
}

// Prefix returns the command's prefix.
func (c *Command) Prefix() string {
	return c.opts.Prefix
}

// Scopes returns the scopes the command is registered under.
func (c *Command) Scopes() []Scope {
	return c.scopes
}

// Languages returns the registered language codes, "default" first.
func (c *Command) Languages() []string {
	return c.languages
}

// Names returns every localized name of the command.
func (c *Command) Names() []Name {
	names := make([]Name, 0, len(c.languages))
	for _, lang := range c.languages {
		names = append(names, c.localizations[lang].Name)
	}
	return names
}

// GetLocalizedName returns the name for a language, falling back to default.
func (c *Command) GetLocalizedName(language string) Name {
	if loc, ok := c.localizations[language]; ok {
		return loc.Name
	}
	return c.localizations["default"].Name
}

// GetLocalizedDescription returns the description for a language, falling
// back to default.
func (c *Command) GetLocalizedDescription(language string) string {
	if loc, ok := c.localizations[language]; ok {
		return loc.Description
	}
	return c.localizations["default"].Description
}

// StringName returns the default name as text, using the pattern source for
// regex names.
func (c *Command) StringName() string {
	return c.GetLocalizedName("default").String()
}

// ToBotCommand serializes the command for a language into a wire record.
func (c *Command) ToBotCommand(language string) tg.BotCommand {
	return tg.BotCommand{
		Command:     c.GetLocalizedName(language).String(),
		Description: c.GetLocalizedDescription(language),
	}
}

// AddToScope registers the command under a scope with an optional handler.
// A nil handler records the scope for menu serialization without attaching a
// dispatch chain. Chat-targeted scopes with a zero chat or user id are
// silently skipped. Panics with *InvalidScopeError on an unknown scope type.
func (c *Command) AddToScope(scope Scope, handler Handler, opts ...CommandOption) *Command {
	options := buildOptions(c.opts, opts...)

	switch scope.Type {
	case ScopeTypeDefault:
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.defaultChains, handler, options)

	case ScopeTypeAllPrivateChats:
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("private"))

	case ScopeTypeAllGroupChats:
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("group", "supergroup"))

	case ScopeTypeAllChatAdministrators:
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("group", "supergroup"),
			adminFilter)

	case ScopeTypeChat:
		if scope.ChatID == 0 {
			return c
		}
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("group", "supergroup", "private"),
			chatIDFilter(scope.ChatID))

	case ScopeTypeChatAdministrators:
		if scope.ChatID == 0 {
			return c
		}
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("group", "supergroup"),
			chatIDFilter(scope.ChatID),
			adminFilter)

	case ScopeTypeChatMember:
		if scope.ChatID == 0 || scope.UserID == 0 {
			return c
		}
		c.scopes = append(c.scopes, scope)
		c.addChain(&c.scopedChains, handler, options,
			chatTypeFilter("group", "supergroup"),
			chatIDFilter(scope.ChatID),
			userIDFilter(scope.UserID))

	default:
		panic(&InvalidScopeError{Scope: scope})
	}
	return c
}

// addChain builds a filter chain: the command-name filter first, then the
// scope filters in order. The name filter reads the localization map live so
// Localize calls after AddToScope still take effect.
func (c *Command) addChain(chains *[]chain, handler Handler, options Options, filters ...Predicate) {
	if handler == nil {
		return
	}
	nameFilter := func(ctx context.Context, cc *Context) (bool, error) {
		return HasCommand(c.Names(), options)(ctx, cc)
	}
	*chains = append(*chains, chain{
		predicates: append([]Predicate{nameFilter}, filters...),
		handler:    handler,
	})
}

// IsAPICompliant reports whether the command's localization for a language
// can be placed in the Bot API command menu. Every violated rule is reported
// so a single call surfaces all problems at once.
func (c *Command) IsAPICompliant(language string) (bool, []string) {
	var reasons []string
	if c.opts.Prefix != "/" {
		reasons = append(reasons, fmt.Sprintf("Command has custom prefix: %s", c.opts.Prefix))
	}
	name := c.GetLocalizedName(language)
	if name.IsPattern() {
		reasons = append(reasons, "Command has a regular expression name")
		return false, reasons
	}

	literal := name.String()
	if literal != strings.ToLower(literal) {
		reasons = append(reasons, "Command name has uppercase characters")
	}
	if n := utf8.RuneCountInString(literal); n > maxCommandNameLength {
		reasons = append(reasons, fmt.Sprintf(
			"Command name is too long (%d characters). Maximum allowed is %d characters",
			n, maxCommandNameLength))
	}
	if residue := allowedNameChars.ReplaceAllString(literal, ""); residue != "" {
		reasons = append(reasons, fmt.Sprintf(
			"Command name has special characters (%s). Only letters, digits and _ are allowed",
			residue))
	}
	return len(reasons) == 0, reasons
}

// elementals flattens every localization into fuzzy-matching candidates.
func (c *Command) elementals() []CommandElemental {
	out := make([]CommandElemental, 0, len(c.languages))
	for _, lang := range c.languages {
		loc := c.localizations[lang]
		out = append(out, CommandElemental{
			Name:        loc.Name.String(),
			Prefix:      c.opts.Prefix,
			Language:    lang,
			Description: loc.Description,
		})
	}
	return out
}

// chatTypeFilter passes when the update's chat type is one of types.
func chatTypeFilter(types ...string) Predicate {
	return func(_ context.Context, c *Context) (bool, error) {
		chat := c.Chat()
		if chat == nil {
			return false, nil
		}
		return slices.Contains(types, chat.Type), nil
	}
}

// chatIDFilter passes when the update comes from the given chat.
func chatIDFilter(chatID int64) Predicate {
	return func(_ context.Context, c *Context) (bool, error) {
		chat := c.Chat()
		return chat != nil && chat.ID == chatID, nil
	}
}

// userIDFilter passes when the update comes from the given user.
func userIDFilter(userID int64) Predicate {
	return func(_ context.Context, c *Context) (bool, error) {
		from := c.From()
		return from != nil && from.ID == userID, nil
	}
}

// adminFilter passes when the sender is an administrator or the owner of the
// current chat. It is the only filter that touches the network and always
// runs after the synchronous filters in its chain.
func adminFilter(ctx context.Context, c *Context) (bool, error) {
	chat, from := c.Chat(), c.From()
	if chat == nil || from == nil || c.API == nil {
		return false, nil
	}
	member, err := c.API.GetChatMember(ctx, chat.ID, from.ID)
	if err != nil {
		return false, err
	}
	return tg.IsAdmin(member), nil
}
