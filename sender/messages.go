package sender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prilive-com/tgcmd/tg"
)

// SendMessageRequest represents a sendMessage request.
type SendMessageRequest struct {
	ChatID           int64  `json:"chat_id"`
	MessageThreadID  int    `json:"message_thread_id,omitempty"`
	Text             string `json:"text"`
	ParseMode        string `json:"parse_mode,omitempty"`
	ReplyToMessageID int    `json:"reply_to_message_id,omitempty"`
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*tg.Message, error) {
	if req.ChatID == 0 {
		return nil, tg.NewValidationError("chat_id", "cannot be zero")
	}
	if req.Text == "" {
		return nil, tg.NewValidationError("text", "cannot be empty")
	}

	return withRetry(c, ctx, func() (*tg.Message, error) {
		resp, err := c.executeRequest(ctx, "sendMessage", req)
		if err != nil {
			return nil, err
		}
		var msg tg.Message
		if err := json.Unmarshal(resp.Result, &msg); err != nil {
			return nil, fmt.Errorf("tgcmd: sendMessage: failed to parse response: %w", err)
		}
		return &msg, nil
	})
}
