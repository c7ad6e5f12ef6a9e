// Package commands implements command registration, scoped dispatch, and
// fuzzy suggestion for Telegram bots.
//
// Commands are declared on a Group with a name (literal or regular
// expression), a description, and a handler. Each command can carry
// per-language localizations and be attached to one or more visibility
// scopes. The group serializes its commands into setMyCommands wire records
// and dispatches incoming updates through per-scope filter chains.
//
// # Usage
//
//	group := commands.NewGroup()
//	group.Command(commands.NewName("start"), "Start the bot", startHandler)
//	group.Command(commands.NewName("settings"), "Bot settings", nil).
//	    AddToScope(commands.ScopeAllPrivateChats(), settingsHandler)
//
//	if err := group.SetCommands(ctx, api); err != nil {
//	    log.Fatal(err)
//	}
//
//	handled, err := group.Dispatch(ctx, c)
//
// When no command matches, NotFound produces a predicate that stashes a
// fuzzy "did you mean" suggestion on the context.
package commands
