package tgcmd

import (
	"context"
	"log/slog"

	"github.com/prilive-com/tgcmd/commands"
	"github.com/prilive-com/tgcmd/receiver"
	"github.com/prilive-com/tgcmd/sender"
	"github.com/prilive-com/tgcmd/tg"
)

// Bot combines the long-polling receiver, the sender client and the command
// dispatch pipeline.
type Bot struct {
	token    tg.SecretToken
	logger   *slog.Logger
	receiver *receiver.PollingClient
	sender   *sender.Client
	updates  chan tg.Update
	config   botConfig

	me           *tg.User
	groups       []*commands.Group
	notFound     commands.Handler
	notFoundOpts []commands.FuzzyOption
}

type botConfig struct {
	// Polling settings
	pollingTimeout   int
	pollingLimit     int
	pollingMaxErrors int
	deleteWebhook    bool
	allowedUpdates   []string

	// Sender settings
	senderConfig sender.Config

	// Receiver settings
	receiverConfig receiver.Config

	// Buffer
	updateBufferSize int

	// Logger
	logger *slog.Logger
}

// Option configures the Bot.
type Option func(*botConfig)

// WithPolling sets the long-polling timeout and batch limit.
func WithPolling(timeout, limit int) Option {
	return func(c *botConfig) {
		c.pollingTimeout = timeout
		c.pollingLimit = limit
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *botConfig) {
		c.logger = logger
	}
}

// WithRetries sets max retry attempts for API calls.
func WithRetries(max int) Option {
	return func(c *botConfig) {
		c.senderConfig.MaxRetries = max
	}
}

// WithRateLimit sets global rate limiting for API calls.
func WithRateLimit(globalRPS float64, burst int) Option {
	return func(c *botConfig) {
		c.senderConfig.GlobalRPS = globalRPS
		c.senderConfig.GlobalBurst = burst
	}
}

// WithBaseURL overrides the Telegram API base URL.
func WithBaseURL(url string) Option {
	return func(c *botConfig) {
		c.senderConfig.BaseURL = url
		// The receiver appends the token directly, so its base carries the
		// "/bot" segment.
		c.receiverConfig.BaseURL = url + "/bot"
	}
}

// WithPollingMaxErrors sets max consecutive polling errors.
func WithPollingMaxErrors(max int) Option {
	return func(c *botConfig) {
		c.pollingMaxErrors = max
	}
}

// WithAllowedUpdates filters update types.
func WithAllowedUpdates(types ...string) Option {
	return func(c *botConfig) {
		c.allowedUpdates = types
	}
}

// WithDeleteWebhook deletes an existing webhook before polling.
func WithDeleteWebhook(delete bool) Option {
	return func(c *botConfig) {
		c.deleteWebhook = delete
	}
}

// WithUpdateBufferSize sets the updates channel buffer size.
func WithUpdateBufferSize(size int) Option {
	return func(c *botConfig) {
		c.updateBufferSize = size
	}
}

// New creates a Bot.
func New(token string, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, tg.ErrInvalidToken
	}

	cfg := botConfig{
		pollingTimeout:   30,
		pollingLimit:     100,
		pollingMaxErrors: 10,
		updateBufferSize: 100,
		senderConfig:     sender.DefaultConfig(),
		receiverConfig:   receiver.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	secretToken := tg.SecretToken(token)
	cfg.senderConfig.Token = secretToken
	cfg.receiverConfig.Token = secretToken
	cfg.receiverConfig.PollingTimeout = cfg.pollingTimeout
	cfg.receiverConfig.PollingLimit = cfg.pollingLimit
	cfg.receiverConfig.PollingMaxErrors = cfg.pollingMaxErrors
	cfg.receiverConfig.DeleteWebhookFirst = cfg.deleteWebhook
	cfg.receiverConfig.AllowedUpdates = cfg.allowedUpdates

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	senderClient, err := sender.NewFromConfig(cfg.senderConfig, sender.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	updates := make(chan tg.Update, cfg.updateBufferSize)

	bot := &Bot{
		token:   secretToken,
		logger:  logger,
		sender:  senderClient,
		updates: updates,
		config:  cfg,
	}

	bot.receiver = receiver.NewPollingClient(
		secretToken,
		updates,
		logger,
		cfg.receiverConfig,
		receiver.WithPollingMaxErrors(cfg.pollingMaxErrors),
		receiver.WithPollingAllowedUpdates(cfg.allowedUpdates),
		receiver.WithPollingDeleteWebhook(cfg.deleteWebhook),
	)

	return bot, nil
}

// Use adds command groups to the dispatch pipeline, in order.
func (b *Bot) Use(groups ...*commands.Group) {
	b.groups = append(b.groups, groups...)
}

// OnNotFound installs a fallback handler for messages that look like a
// command but match nothing. The fuzzy suggestion, when one clears the
// threshold, is stashed on the context before the handler runs.
func (b *Bot) OnNotFound(handler commands.Handler, opts ...commands.FuzzyOption) {
	b.notFound = handler
	b.notFoundOpts = opts
}

// RegisterCommands publishes every group's command menu to Telegram.
func (b *Bot) RegisterCommands(ctx context.Context, opts ...commands.SetCommandsOption) error {
	for _, g := range b.groups {
		if err := g.SetCommands(ctx, b.API(), opts...); err != nil {
			return err
		}
	}
	return nil
}

// Start begins receiving updates without dispatching them. Use Updates() to
// consume the raw channel, or Run for the full dispatch loop.
func (b *Bot) Start(ctx context.Context) error {
	return b.receiver.Start(ctx)
}

// Run starts the receiver and dispatches updates through the registered
// groups until the context is cancelled. Handler errors are logged, not
// fatal.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.sender.GetMe(ctx)
	if err != nil {
		return err
	}
	b.me = me

	if err := b.receiver.Start(ctx); err != nil {
		return err
	}
	defer b.receiver.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-b.updates:
			if err := b.HandleUpdate(ctx, update); err != nil {
				b.logger.Error("update dispatch failed",
					"update_id", update.UpdateID,
					"error", err,
				)
			}
		}
	}
}

// HandleUpdate dispatches a single update through the registered groups.
// Scoped handler chains run before default-scope chains; the first handled
// chain wins. Unhandled command-like messages fall through to the OnNotFound
// handler when one is installed.
func (b *Bot) HandleUpdate(ctx context.Context, update tg.Update) error {
	c := commands.NewContext(update, b.me, b.API())

	for _, g := range b.groups {
		handled, err := g.Dispatch(ctx, c)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	if b.notFound != nil {
		ok, err := commands.NotFound(b.groups, b.notFoundOpts...)(ctx, c)
		if err != nil {
			return err
		}
		if ok {
			return b.notFound(ctx, c)
		}
	}
	return nil
}

// Stop gracefully stops the receiver.
func (b *Bot) Stop() {
	b.receiver.Stop()
}

// Close releases all resources.
func (b *Bot) Close() error {
	b.Stop()
	return b.sender.Close()
}

// Updates returns the raw updates channel.
func (b *Bot) Updates() <-chan tg.Update {
	return b.updates
}

// IsHealthy returns health status for liveness probes.
func (b *Bot) IsHealthy() bool {
	return b.receiver.IsHealthy()
}

// Me returns the cached bot identity, populated by Run.
func (b *Bot) Me() *tg.User {
	return b.me
}

// API returns the command-engine view of the sender client.
func (b *Bot) API() commands.API {
	return apiAdapter{client: b.sender}
}

// SendMessage sends a text message.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string, opts ...SendOption) (*tg.Message, error) {
	req := sender.SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return b.sender.SendMessage(ctx, req)
}

// Sender returns the underlying sender client for advanced usage.
func (b *Bot) Sender() *sender.Client {
	return b.sender
}

// SendOption configures send message requests.
type SendOption func(*sender.SendMessageRequest)

// WithParseMode sets the parse mode.
func WithParseMode(mode string) SendOption {
	return func(r *sender.SendMessageRequest) {
		r.ParseMode = mode
	}
}

// WithReplyTo sets the reply-to message ID.
func WithReplyTo(messageID int) SendOption {
	return func(r *sender.SendMessageRequest) {
		r.ReplyToMessageID = messageID
	}
}

// apiAdapter exposes *sender.Client through the commands.API interface.
type apiAdapter struct {
	client *sender.Client
}

func (a apiAdapter) GetChatMember(ctx context.Context, chatID int64, userID int64) (tg.ChatMember, error) {
	return a.client.GetChatMember(ctx, chatID, userID)
}

func (a apiAdapter) SetMyCommands(ctx context.Context, params commands.SetMyCommandsParams) error {
	opts := []sender.BotCommandOption{sender.WithCommandScope(params.Scope)}
	if params.LanguageCode != "" {
		opts = append(opts, sender.WithCommandLanguage(params.LanguageCode))
	}
	return a.client.SetMyCommands(ctx, params.Commands, opts...)
}
