package commands

import (
	"slices"

	"github.com/prilive-com/tgcmd/tg"
)

// SetMyCommandsParams is one wire record for the setMyCommands call:
// a scope, an optional language code and the command list.
type SetMyCommandsParams struct {
	Scope        tg.BotCommandScope
	LanguageCode string // empty for the default language
	Commands     []tg.BotCommand
}

// UncompliantCommand reports why a command/language pair cannot be placed in
// the Bot API command menu. It is data, not an error: serialization always
// succeeds and diverts these into a separate list.
type UncompliantCommand struct {
	Name     string
	Language string
	Reasons  []string
}

// MergeParams combines wire records from several groups. Records are merged
// by (scope type, language code); command lists concatenate in input order
// and the first appearance of a key fixes its position.
func MergeParams(lists ...[]SetMyCommandsParams) []SetMyCommandsParams {
	type mergeKey struct {
		scopeType string
		language  string
	}
	index := make(map[mergeKey]int)
	var merged []SetMyCommandsParams

	for _, list := range lists {
		for _, p := range list {
			k := mergeKey{scopeType: p.Scope.Type, language: p.LanguageCode}
			if i, ok := index[k]; ok {
				merged[i].Commands = append(merged[i].Commands, p.Commands...)
				continue
			}
			index[k] = len(merged)
			p.Commands = slices.Clone(p.Commands)
			merged = append(merged, p)
		}
	}
	return merged
}

// ParamsFrom serializes several groups for one specific chat and merges the
// results, so feature modules each owning a group contribute to a single
// menu per (scope, language) pair.
func ParamsFrom(groups []*Group, chatID int64) ([]SetMyCommandsParams, []UncompliantCommand) {
	lists := make([][]SetMyCommandsParams, 0, len(groups))
	var uncompliant []UncompliantCommand
	for _, g := range groups {
		params, bad := g.ToSingleScopeArgs(ScopeChat(chatID))
		lists = append(lists, params)
		uncompliant = append(uncompliant, bad...)
	}
	return MergeParams(lists...), uncompliant
}
