package commands

import (
	"regexp"
	"slices"
	"unicode"
	"unicode/utf8"
)

// CommandEntity is a command-like token found in message text.
type CommandEntity struct {
	// Text is the full token including its prefix.
	Text string
	// Offset is the byte offset of the token in the source text.
	Offset int
	// Length is the token length in bytes.
	Length int
	// Prefix is the prefix the token was found under.
	Prefix string
	// Type is always "bot_command".
	Type string
}

// commandEntities scans text for tokens opening with one of the prefixes.
// A token only counts when the prefix sits at the start of the text or right
// after whitespace, so "a/b" never yields "/b".
func commandEntities(text string, prefixes []string) []CommandEntity {
	var entities []CommandEntity
	for _, prefix := range prefixes {
		re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `\S+`)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] > 0 {
				r, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
				if !unicode.IsSpace(r) {
					continue
				}
			}
			token := text[loc[0]:loc[1]]
			entities = append(entities, CommandEntity{
				Text:   token,
				Offset: loc[0],
				Length: len(token),
				Prefix: prefix,
				Type:   "bot_command",
			})
		}
	}
	return entities
}

// containsCommands reports whether the text holds any command-like token for
// the groups' prefixes. With no registered prefixes "/" is assumed.
func containsCommands(text string, groups []*Group) bool {
	if text == "" {
		return false
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
		prefixes = []string{"/"}
	}
	return len(commandEntities(text, prefixes)) > 0
}
