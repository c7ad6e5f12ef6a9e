package tg

import (
	"encoding/json"
	"fmt"
)

// Update represents an incoming update from Telegram.
// Command dispatch only consumes message-bearing updates; the membership
// updates are carried so bots can react to scope changes.
type Update struct {
	UpdateID          int                `json:"update_id"`
	Message           *Message           `json:"message,omitempty"`
	EditedMessage     *Message           `json:"edited_message,omitempty"`
	ChannelPost       *Message           `json:"channel_post,omitempty"`
	EditedChannelPost *Message           `json:"edited_channel_post,omitempty"`
	MyChatMember      *ChatMemberUpdated `json:"my_chat_member,omitempty"`
	ChatMember        *ChatMemberUpdated `json:"chat_member,omitempty"`
}

// Msg returns the message carried by the update, regardless of which
// message field it arrived in. Returns nil for non-message updates.
func (u *Update) Msg() *Message {
	if u == nil {
		return nil
	}
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	}
	return nil
}

// ChatMemberUpdated represents changes in the status of a chat member.
type ChatMemberUpdated struct {
	Chat          *Chat      `json:"chat"`
	From          *User      `json:"from"`
	Date          int64      `json:"date"`
	OldChatMember ChatMember `json:"-"`
	NewChatMember ChatMember `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling for ChatMemberUpdated.
// The OldChatMember and NewChatMember fields are ChatMember interfaces
// that require discriminated union parsing.
func (u *ChatMemberUpdated) UnmarshalJSON(data []byte) error {
	// Alias to avoid infinite recursion
	type Alias ChatMemberUpdated
	var raw struct {
		Alias
		OldChatMember json.RawMessage `json:"old_chat_member"`
		NewChatMember json.RawMessage `json:"new_chat_member"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = ChatMemberUpdated(raw.Alias)

	if len(raw.OldChatMember) > 0 {
		m, err := UnmarshalChatMember(raw.OldChatMember)
		if err != nil {
			return fmt.Errorf("old_chat_member: %w", err)
		}
		u.OldChatMember = m
	}
	if len(raw.NewChatMember) > 0 {
		m, err := UnmarshalChatMember(raw.NewChatMember)
		if err != nil {
			return fmt.Errorf("new_chat_member: %w", err)
		}
		u.NewChatMember = m
	}
	return nil
}
