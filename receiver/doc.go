// Package receiver delivers Telegram updates to a channel via long polling.
//
// # Usage
//
//	updates := make(chan tg.Update, 100)
//	client := receiver.NewPollingClient(token, updates, logger, cfg)
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop()
//
//	for update := range updates {
//	    // dispatch
//	}
package receiver
