package sender

import (
	"context"
	"regexp"

	"github.com/prilive-com/tgcmd/tg"
)

// ================== Request Types ==================

// SetMyCommandsRequest represents a setMyCommands request.
type SetMyCommandsRequest struct {
	Commands     []tg.BotCommand     `json:"commands"`
	Scope        *tg.BotCommandScope `json:"scope,omitempty"`
	LanguageCode string              `json:"language_code,omitempty"`
}

// GetMyCommandsRequest represents a getMyCommands request.
type GetMyCommandsRequest struct {
	Scope        *tg.BotCommandScope `json:"scope,omitempty"`
	LanguageCode string              `json:"language_code,omitempty"`
}

// DeleteMyCommandsRequest represents a deleteMyCommands request.
type DeleteMyCommandsRequest struct {
	Scope        *tg.BotCommandScope `json:"scope,omitempty"`
	LanguageCode string              `json:"language_code,omitempty"`
}

// ================== Bot Commands ==================

var commandRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// SetMyCommands sets the bot's command list for the specified scope and language.
// Commands appear in the menu button when users type "/".
func (c *Client) SetMyCommands(ctx context.Context, commands []tg.BotCommand, opts ...BotCommandOption) error {
	if len(commands) > 100 {
		return tg.NewValidationError("commands", "must have at most 100 commands")
	}
	for _, cmd := range commands {
		if len(cmd.Command) < 1 || len(cmd.Command) > 32 {
			return tg.NewValidationError("command", "must be 1-32 characters")
		}
		if !commandRegex.MatchString(cmd.Command) {
			return tg.NewValidationError("command", "must be lowercase a-z, 0-9, underscore only")
		}
		if len(cmd.Description) < 1 || len(cmd.Description) > 256 {
			return tg.NewValidationError("description", "must be 1-256 characters")
		}
	}

	req := SetMyCommandsRequest{Commands: commands}
	for _, opt := range opts {
		opt.applyToSetMyCommands(&req)
	}

	_, err := withRetry(c, ctx, func() (struct{}, error) {
		return struct{}{}, c.callJSON(ctx, "setMyCommands", req, nil)
	})
	return err
}

// GetMyCommands returns the bot's command list for the specified scope and language.
func (c *Client) GetMyCommands(ctx context.Context, opts ...BotCommandOption) ([]tg.BotCommand, error) {
	req := GetMyCommandsRequest{}
	for _, opt := range opts {
		opt.applyToGetMyCommands(&req)
	}

	var result []tg.BotCommand
	if err := c.callJSON(ctx, "getMyCommands", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteMyCommands removes the bot's command list for the specified scope and language.
func (c *Client) DeleteMyCommands(ctx context.Context, opts ...BotCommandOption) error {
	req := DeleteMyCommandsRequest{}
	for _, opt := range opts {
		opt.applyToDeleteMyCommands(&req)
	}

	_, err := withRetry(c, ctx, func() (struct{}, error) {
		return struct{}{}, c.callJSON(ctx, "deleteMyCommands", req, nil)
	})
	return err
}

// ================== Options ==================

// BotCommandOption configures bot command methods.
type BotCommandOption interface {
	applyToSetMyCommands(*SetMyCommandsRequest)
	applyToGetMyCommands(*GetMyCommandsRequest)
	applyToDeleteMyCommands(*DeleteMyCommandsRequest)
}

type botCommandOption struct {
	scope        *tg.BotCommandScope
	languageCode string
}

func (o botCommandOption) applyToSetMyCommands(r *SetMyCommandsRequest) {
	if o.scope != nil {
		r.Scope = o.scope
	}
	if o.languageCode != "" {
		r.LanguageCode = o.languageCode
	}
}

func (o botCommandOption) applyToGetMyCommands(r *GetMyCommandsRequest) {
	if o.scope != nil {
		r.Scope = o.scope
	}
	if o.languageCode != "" {
		r.LanguageCode = o.languageCode
	}
}

func (o botCommandOption) applyToDeleteMyCommands(r *DeleteMyCommandsRequest) {
	if o.scope != nil {
		r.Scope = o.scope
	}
	if o.languageCode != "" {
		r.LanguageCode = o.languageCode
	}
}

// WithCommandScope sets the scope for bot commands.
func WithCommandScope(scope tg.BotCommandScope) BotCommandOption {
	return botCommandOption{scope: &scope}
}

// WithCommandLanguage sets the IETF language tag for bot commands.
func WithCommandLanguage(code string) BotCommandOption {
	return botCommandOption{languageCode: code}
}

// WithCommandScopeAndLanguage sets both scope and language for bot commands.
func WithCommandScopeAndLanguage(scope tg.BotCommandScope, code string) BotCommandOption {
	return botCommandOption{scope: &scope, languageCode: code}
}
