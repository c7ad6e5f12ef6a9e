package sender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prilive-com/tgcmd/tg"
)

// GetChatMemberRequest represents a getChatMember request.
type GetChatMemberRequest struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
}

// GetMe returns basic information about the bot.
func (c *Client) GetMe(ctx context.Context) (*tg.User, error) {
	resp, err := c.executeRequest(ctx, "getMe", struct{}{})
	if err != nil {
		return nil, err
	}
	var user tg.User
	if err := json.Unmarshal(resp.Result, &user); err != nil {
		return nil, fmt.Errorf("tgcmd: getMe: failed to parse response: %w", err)
	}
	return &user, nil
}

// GetChatMember returns information about a member of a chat.
func (c *Client) GetChatMember(ctx context.Context, chatID int64, userID int64) (tg.ChatMember, error) {
	if chatID == 0 {
		return nil, tg.NewValidationError("chat_id", "cannot be zero")
	}
	if userID == 0 {
		return nil, tg.NewValidationError("user_id", "cannot be zero")
	}

	resp, err := c.executeRequest(ctx, "getChatMember", GetChatMemberRequest{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return nil, err
	}

	return tg.UnmarshalChatMember(resp.Result)
}
