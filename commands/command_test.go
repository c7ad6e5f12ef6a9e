package commands

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAPICompliant(t *testing.T) {
	t.Run("compliant command", func(t *testing.T) {
		ok, reasons := NewCommand(NewName("start"), "Start").IsAPICompliant("default")
		assert.True(t, ok)
		assert.Empty(t, reasons)
	})

	t.Run("custom prefix", func(t *testing.T) {
		cmd := NewCommand(NewName("test"), "_", WithPrefix("!"))
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{"Command has custom prefix: !"}, reasons)
	})

	t.Run("regex name", func(t *testing.T) {
		cmd := NewCommand(NewPattern(regexp.MustCompile("test")), "_")
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{"Command has a regular expression name"}, reasons)
	})

	t.Run("uppercase characters", func(t *testing.T) {
		cmd := NewCommand(NewName("testCommand"), "_")
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{"Command name has uppercase characters"}, reasons)
	})

	t.Run("name too long", func(t *testing.T) {
		cmd := NewCommand(NewName("longnamelongnamelongnamelongnamelongname"), "_")
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{
			"Command name is too long (40 characters). Maximum allowed is 32 characters",
		}, reasons)
	})

	t.Run("special characters", func(t *testing.T) {
		cmd := NewCommand(NewName("*test!"), "_")
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{
			"Command name has special characters (*!). Only letters, digits and _ are allowed",
		}, reasons)
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		cmd := NewCommand(NewName("$SUPERuncompli4ntCommand12345678"), "_")
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{
			"Command name has uppercase characters",
			"Command name has special characters ($). Only letters, digits and _ are allowed",
		}, reasons)
	})

	t.Run("custom prefix and regex name together", func(t *testing.T) {
		cmd := NewCommand(NewPattern(regexp.MustCompile("test")), "_", WithPrefix("+"))
		ok, reasons := cmd.IsAPICompliant("default")
		assert.False(t, ok)
		assert.Equal(t, []string{
			"Command has custom prefix: +",
			"Command has a regular expression name",
		}, reasons)
	})

	t.Run("checks the requested localization", func(t *testing.T) {
		cmd := NewCommand(NewName("start"), "Start").
			Localize("es", NewName("Iniciar"), "Iniciar")

		ok, _ := cmd.IsAPICompliant("default")
		assert.True(t, ok)

		ok, reasons := cmd.IsAPICompliant("es")
		assert.False(t, ok)
		assert.Equal(t, []string{"Command name has uppercase characters"}, reasons)
	})
}

func TestCommandLocalization(t *testing.T) {
	cmd := NewCommand(NewName("start"), "Start the bot").
		Localize("es", NewName("iniciar"), "Iniciar el bot").
		Localize("fr", NewName("demarrer"), "Demarrer le bot")

	assert.Equal(t, []string{"default", "es", "fr"}, cmd.Languages())
	assert.Equal(t, "iniciar", cmd.GetLocalizedName("es").String())
	assert.Equal(t, "Iniciar el bot", cmd.GetLocalizedDescription("es"))

	// Unknown language falls back to default.
	assert.Equal(t, "start", cmd.GetLocalizedName("pt").String())
	assert.Equal(t, "Start the bot", cmd.GetLocalizedDescription("pt"))

	assert.Equal(t, "start", cmd.StringName())

	names := cmd.Names()
	require.Len(t, names, 3)
	assert.Equal(t, "start", names[0].String())
}

func TestCommandToBotCommand(t *testing.T) {
	cmd := NewCommand(NewName("start"), "Start the bot").
		Localize("es", NewName("iniciar"), "Iniciar el bot")

	wire := cmd.ToBotCommand("es")
	assert.Equal(t, "iniciar", wire.Command)
	assert.Equal(t, "Iniciar el bot", wire.Description)

	wire = cmd.ToBotCommand("default")
	assert.Equal(t, "start", wire.Command)
}

func TestAddToScopeUnknownScopePanics(t *testing.T) {
	cmd := NewCommand(NewName("start"), "Start")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		var scopeErr *InvalidScopeError
		require.ErrorAs(t, err, &scopeErr)
		assert.Equal(t, ScopeType("bogus"), scopeErr.Scope.Type)
	}()
	cmd.AddToScope(Scope{Type: "bogus"}, nil)
}

func TestAddToScopeMissingIDsSkipped(t *testing.T) {
	handler := func(context.Context, *Context) error { return nil }

	cmd := NewCommand(NewName("start"), "Start")
	cmd.AddToScope(ScopeChat(0), handler)
	cmd.AddToScope(ScopeChatAdministrators(0), handler)
	cmd.AddToScope(ScopeChatMember(42, 0), handler)
	cmd.AddToScope(ScopeChatMember(0, 42), handler)

	assert.Empty(t, cmd.Scopes())
	assert.Empty(t, cmd.scopedChains)
}

func TestAddToScopeWithoutHandlerRecordsMetadataOnly(t *testing.T) {
	cmd := NewCommand(NewName("start"), "Start")
	cmd.AddToScope(ScopeAllPrivateChats(), nil)

	require.Len(t, cmd.Scopes(), 1)
	assert.Equal(t, ScopeTypeAllPrivateChats, cmd.Scopes()[0].Type)
	assert.Empty(t, cmd.scopedChains)
	assert.Empty(t, cmd.defaultChains)
}

func TestAddToScopeDuplicatesAllowed(t *testing.T) {
	handler := func(context.Context, *Context) error { return nil }

	cmd := NewCommand(NewName("start"), "Start")
	cmd.AddToScope(ScopeDefault(), handler)
	cmd.AddToScope(ScopeDefault(), handler)

	assert.Len(t, cmd.Scopes(), 2)
	assert.Len(t, cmd.defaultChains, 2)
}

func TestScopeWire(t *testing.T) {
	assert.Equal(t, "default", ScopeDefault().Wire().Type)
	assert.Equal(t, "all_private_chats", ScopeAllPrivateChats().Wire().Type)
	assert.Equal(t, "all_group_chats", ScopeAllGroupChats().Wire().Type)
	assert.Equal(t, "all_chat_administrators", ScopeAllChatAdministrators().Wire().Type)

	chat := ScopeChat(42).Wire()
	assert.Equal(t, "chat", chat.Type)
	assert.Equal(t, int64(42), chat.ChatID)

	member := ScopeChatMember(42, 7).Wire()
	assert.Equal(t, "chat_member", member.Type)
	assert.Equal(t, int64(42), member.ChatID)
	assert.Equal(t, int64(7), member.UserID)
}
