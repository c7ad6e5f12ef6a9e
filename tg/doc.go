// Package tg contains the Telegram Bot API types shared by the tgcmd
// packages: updates, messages, chats, users, chat members, and the
// bot-command menu types (BotCommand, BotCommandScope).
//
// Only the slice of the Bot API that command registration and dispatch
// touches is modeled here.
package tg
