// Package tgcmd is a command engine for Telegram bots.
//
// tgcmd combines a long-polling update receiver, a resilient Bot API sender
// and a command registration/dispatch core: declare commands with localized
// names and visibility scopes on a commands.Group, publish them to the
// Telegram command menu, and let the Bot route incoming updates to the right
// handler, with fuzzy "did you mean" suggestions for near misses.
//
// # Quick Start
//
//	bot, err := tgcmd.New(token,
//	    tgcmd.WithPolling(30, 100),
//	    tgcmd.WithRetries(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bot.Close()
//
//	group := commands.NewGroup()
//	group.Command(commands.NewName("start"), "Start the bot",
//	    func(ctx context.Context, c *commands.Context) error {
//	        _, err := bot.SendMessage(ctx, c.Chat().ID, "Hello!")
//	        return err
//	    })
//
//	bot.Use(group)
//	if err := bot.RegisterCommands(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := bot.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Subpackages
//
// The commands package holds the matching and scope-composition core and
// works against any implementation of commands.API. The sender and receiver
// packages are usable standalone:
//
//	import "github.com/prilive-com/tgcmd/sender"
//	client, _ := sender.New(token)
//
//	import "github.com/prilive-com/tgcmd/receiver"
//	recv := receiver.NewPollingClient(token, updates, logger, cfg)
//
// Shared Telegram types live in the tg subpackage.
//
// # Features
//
//   - Literal and regex command names, per-language localizations
//   - Scoped dispatch with Bot API visibility scopes
//   - Jaro-Winkler command suggestion
//   - Circuit breaker with sony/gobreaker
//   - Global rate limiting and retry with crypto jitter
//   - Token auto-redaction in logs and errors
//   - Structured logging with slog
package tgcmd
