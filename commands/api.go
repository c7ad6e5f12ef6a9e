package commands

import (
	"context"

	"github.com/prilive-com/tgcmd/tg"
)

// API is the slice of the Telegram Bot API the command engine needs.
// *sender.Client satisfies it through the adapter in the root package.
type API interface {
	// GetChatMember looks up a user's membership status in a chat.
	GetChatMember(ctx context.Context, chatID int64, userID int64) (tg.ChatMember, error)

	// SetMyCommands publishes one scope/language command list.
	SetMyCommands(ctx context.Context, params SetMyCommandsParams) error
}
