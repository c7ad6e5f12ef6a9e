package commands

import (
	"context"
	"slices"
)

// CommandElemental is the flattened view of one command localization, used
// as a candidate for fuzzy suggestion.
type CommandElemental struct {
	Name        string
	Prefix      string
	Language    string
	Description string
}

// Group owns an ordered, append-only collection of commands. It derives
// scope and language groupings for serialization and runs the dispatch
// pipeline for incoming updates.
//
// The derived caches are fully rebuilt by every serialization call instead
// of being maintained incrementally. Registries hold tens of commands, so
// the rebuild is cheap and immune to invalidation bugs.
type Group struct {
	opts     Options
	commands []*Command

	scopeOrder []string
	scopes     map[string]Scope
	scopeCmds  map[string][]*Command
	languages  []string
}

// NewGroup creates a command group. Options become the defaults for every
// command registered on it.
func NewGroup(opts ...CommandOption) *Group {
	return &Group{opts: buildOptions(DefaultOptions(), opts...)}
}

// Command registers a new command. A non-nil handler is attached under the
// default scope; pass nil to register scopes explicitly via AddToScope.
func (g *Group) Command(name Name, description string, handler Handler, opts ...CommandOption) *Command {
	cmd := newCommand(name, description, g.opts, opts...)
	if handler != nil {
		cmd.AddToScope(ScopeDefault(), handler)
	}
	g.commands = append(g.commands, cmd)
	return cmd
}

// Add appends externally constructed commands to the group.
func (g *Group) Add(cmds ...*Command) *Group {
	g.commands = append(g.commands, cmds...)
	return g
}

// Commands returns the registered commands in registration order.
func (g *Group) Commands() []*Command {
	return g.commands
}

// populateMetadata rebuilds the scope and language caches from scratch.
func (g *Group) populateMetadata() {
	g.scopeOrder = g.scopeOrder[:0]
	g.scopes = make(map[string]Scope)
	g.scopeCmds = make(map[string][]*Command)
	g.languages = []string{"default"}

	for _, cmd := range g.commands {
		for _, scope := range cmd.Scopes() {
			k := scope.key()
			if _, seen := g.scopes[k]; !seen {
				g.scopes[k] = scope
				g.scopeOrder = append(g.scopeOrder, k)
			}
			g.scopeCmds[k] = append(g.scopeCmds[k], cmd)
		}
		for _, lang := range cmd.Languages() {
			if !slices.Contains(g.languages, lang) {
				g.languages = append(g.languages, lang)
			}
		}
	}
}

// ToArgs serializes the group into one wire record per (scope, language)
// pair. Commands that fail compliance for a language are diverted into the
// returned report list; pairs left with zero compliant commands are omitted
// since the Bot API rejects empty command lists.
func (g *Group) ToArgs() ([]SetMyCommandsParams, []UncompliantCommand) {
	g.populateMetadata()

	var params []SetMyCommandsParams
	var uncompliant []UncompliantCommand
	for _, key := range g.scopeOrder {
		scope := g.scopes[key]
		for _, lang := range g.languages {
			record := SetMyCommandsParams{
				Scope:        scope.Wire(),
				LanguageCode: wireLanguage(lang),
			}
			for _, cmd := range g.scopeCmds[key] {
				ok, reasons := cmd.IsAPICompliant(lang)
				if !ok {
					uncompliant = append(uncompliant, UncompliantCommand{
						Name:     cmd.StringName(),
						Language: lang,
						Reasons:  reasons,
					})
					continue
				}
				record.Commands = append(record.Commands, cmd.ToBotCommand(lang))
			}
			if len(record.Commands) == 0 {
				continue
			}
			params = append(params, record)
		}
	}
	return params, uncompliant
}

// ToSingleScopeArgs serializes every command carrying at least one scope
// into wire records for one externally supplied scope, typically the chat a
// message arrived in. Empty (scope, language) records are omitted.
func (g *Group) ToSingleScopeArgs(scope Scope) ([]SetMyCommandsParams, []UncompliantCommand) {
	g.populateMetadata()

	var scoped []*Command
	for _, cmd := range g.commands {
		if len(cmd.Scopes()) > 0 {
			scoped = append(scoped, cmd)
		}
	}

	var params []SetMyCommandsParams
	var uncompliant []UncompliantCommand
	for _, lang := range g.languages {
		record := SetMyCommandsParams{
			Scope:        scope.Wire(),
			LanguageCode: wireLanguage(lang),
		}
		for _, cmd := range scoped {
			ok, reasons := cmd.IsAPICompliant(lang)
			if !ok {
				uncompliant = append(uncompliant, UncompliantCommand{
					Name:     cmd.StringName(),
					Language: lang,
					Reasons:  reasons,
				})
				continue
			}
			record.Commands = append(record.Commands, cmd.ToBotCommand(lang))
		}
		if len(record.Commands) == 0 {
			continue
		}
		params = append(params, record)
	}
	return params, uncompliant
}

// ToElementals flattens every scoped command into fuzzy-matching candidates.
// With a language, each command contributes its localization for that
// language, falling back to "default". An empty language yields every
// localization of every scoped command.
func (g *Group) ToElementals(language string) []CommandElemental {
	g.populateMetadata()

	var out []CommandElemental
	for _, cmd := range g.commands {
		if len(cmd.Scopes()) == 0 {
			continue
		}
		all := cmd.elementals()
		if language == "" {
			out = append(out, all...)
			continue
		}
		if elem, ok := pickElemental(all, language); ok {
			out = append(out, elem)
		}
	}
	return out
}

func pickElemental(all []CommandElemental, language string) (CommandElemental, bool) {
	for _, e := range all {
		if e.Language == language {
			return e, true
		}
	}
	for _, e := range all {
		if e.Language == "default" {
			return e, true
		}
	}
	return CommandElemental{}, false
}

// Prefixes returns the distinct command prefixes in registration order.
func (g *Group) Prefixes() []string {
	var out []string
	for _, cmd := range g.commands {
		if !slices.Contains(out, cmd.Prefix()) {
			out = append(out, cmd.Prefix())
		}
	}
	return out
}

// SetCommands publishes the group's full menu through api.
func (g *Group) SetCommands(ctx context.Context, api API, opts ...SetCommandsOption) error {
	params, uncompliant := g.ToArgs()
	return SetBotCommands(ctx, api, params, uncompliant, opts...)
}

// Dispatch runs the update through every command's handler chains. Chains of
// specific scopes run first across all commands in registration order; the
// default-scope chains run last so specific scopes take priority. The first
// chain whose filters all pass handles the update.
func (g *Group) Dispatch(ctx context.Context, c *Context) (bool, error) {
	for _, cmd := range g.commands {
		for _, ch := range cmd.scopedChains {
			handled, err := ch.run(ctx, c)
			if handled || err != nil {
				return handled, err
			}
		}
	}
	for _, cmd := range g.commands {
		for _, ch := range cmd.defaultChains {
			handled, err := ch.run(ctx, c)
			if handled || err != nil {
				return handled, err
			}
		}
	}
	return false, nil
}

// wireLanguage maps the internal "default" sentinel to the omitted wire
// value.
func wireLanguage(language string) string {
	if language == "default" {
		return ""
	}
	return language
}
