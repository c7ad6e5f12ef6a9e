package commands

import (
	"fmt"

	"github.com/prilive-com/tgcmd/tg"
)

// ScopeType identifies a command visibility scope.
type ScopeType string

const (
	ScopeTypeDefault               ScopeType = "default"
	ScopeTypeAllPrivateChats       ScopeType = "all_private_chats"
	ScopeTypeAllGroupChats         ScopeType = "all_group_chats"
	ScopeTypeAllChatAdministrators ScopeType = "all_chat_administrators"
	ScopeTypeChat                  ScopeType = "chat"
	ScopeTypeChatAdministrators    ScopeType = "chat_administrators"
	ScopeTypeChatMember            ScopeType = "chat_member"
)

// Scope restricts where a command is visible and dispatched. ChatID and
// UserID are only meaningful for the chat-targeted scope types.
type Scope struct {
	Type   ScopeType
	ChatID int64
	UserID int64
}

// ScopeDefault covers every chat not matched by a more specific scope.
func ScopeDefault() Scope {
	return Scope{Type: ScopeTypeDefault}
}

// ScopeAllPrivateChats covers all private chats.
func ScopeAllPrivateChats() Scope {
	return Scope{Type: ScopeTypeAllPrivateChats}
}

// ScopeAllGroupChats covers all group and supergroup chats.
func ScopeAllGroupChats() Scope {
	return Scope{Type: ScopeTypeAllGroupChats}
}

// ScopeAllChatAdministrators covers administrators of all groups.
func ScopeAllChatAdministrators() Scope {
	return Scope{Type: ScopeTypeAllChatAdministrators}
}

// ScopeChat covers one specific chat.
func ScopeChat(chatID int64) Scope {
	return Scope{Type: ScopeTypeChat, ChatID: chatID}
}

// ScopeChatAdministrators covers administrators of one specific chat.
func ScopeChatAdministrators(chatID int64) Scope {
	return Scope{Type: ScopeTypeChatAdministrators, ChatID: chatID}
}

// ScopeChatMember covers one user in one specific chat.
func ScopeChatMember(chatID int64, userID int64) Scope {
	return Scope{Type: ScopeTypeChatMember, ChatID: chatID, UserID: userID}
}

// Wire converts the scope to its Bot API representation.
// Panics with *InvalidScopeError on an unrecognized type.
func (s Scope) Wire() tg.BotCommandScope {
	switch s.Type {
	case ScopeTypeDefault:
		return tg.BotCommandScopeDefault()
	case ScopeTypeAllPrivateChats:
		return tg.BotCommandScopeAllPrivateChats()
	case ScopeTypeAllGroupChats:
		return tg.BotCommandScopeAllGroupChats()
	case ScopeTypeAllChatAdministrators:
		return tg.BotCommandScopeAllChatAdministrators()
	case ScopeTypeChat:
		return tg.BotCommandScopeChat(s.ChatID)
	case ScopeTypeChatAdministrators:
		return tg.BotCommandScopeChatAdministrators(s.ChatID)
	case ScopeTypeChatMember:
		return tg.BotCommandScopeChatMember(s.ChatID, s.UserID)
	default:
		panic(&InvalidScopeError{Scope: s})
	}
}

// key identifies a scope inside the group's derived caches.
func (s Scope) key() string {
	return fmt.Sprintf("%s/%d/%d", s.Type, s.ChatID, s.UserID)
}
