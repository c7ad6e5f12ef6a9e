// Package sender provides the Telegram Bot API client used to publish
// command menus and inspect chat membership.
//
// # Features
//
//   - Circuit breaker for fault tolerance
//   - Global rate limiting
//   - Retry with exponential backoff
//   - setMyCommands / getMyCommands / deleteMyCommands
//   - getChatMember for admin and membership checks
//
// # Usage
//
//	client, err := sender.New(token,
//	    sender.WithRateLimit(30, 10),
//	    sender.WithRetries(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.SetMyCommands(ctx, cmds,
//	    sender.WithCommandScope(tg.BotCommandScopeAllPrivateChats()),
//	)
package sender
