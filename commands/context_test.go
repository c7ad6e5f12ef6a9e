package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/internal/testutil"
	"github.com/prilive-com/tgcmd/tg"
)

func TestContextAccessors(t *testing.T) {
	c := textContext("/start args")
	require.NotNil(t, c.Msg())
	assert.Equal(t, testutil.TestChatID, c.Chat().ID)
	assert.Equal(t, testutil.TestUserID, c.From().ID)
	assert.Equal(t, "/start args", c.Text())

	t.Run("caption fallback", func(t *testing.T) {
		assert.Equal(t, "/start", captionContext("/start").Text())
	})

	t.Run("empty update", func(t *testing.T) {
		c := NewContext(tg.Update{UpdateID: 1}, testutil.TestBot(), nil)
		assert.Nil(t, c.Msg())
		assert.Nil(t, c.Chat())
		assert.Nil(t, c.From())
		assert.Empty(t, c.Text())
	})
}

func TestContextSetMyCommands(t *testing.T) {
	t.Run("requires a chat", func(t *testing.T) {
		c := NewContext(tg.Update{UpdateID: 1}, testutil.TestBot(), nil)
		err := c.SetMyCommands(context.Background(), []*Group{NewGroup()})
		assert.ErrorIs(t, err, ErrNoChat)
	})

	t.Run("publishes merged records for the current chat", func(t *testing.T) {
		users := NewGroup()
		users.Command(NewName("start"), "Start", noopHandler).
			Localize("es", NewName("iniciar"), "Iniciar")
		admin := NewGroup()
		admin.Command(NewName("ban"), "Ban", noopHandler)

		api := &mockAPI{}
		c := NewContext(testutil.TestUpdate(1, "/start"), testutil.TestBot(), api)

		require.NoError(t, c.SetMyCommands(context.Background(), []*Group{users, admin}))
		require.Len(t, api.setCalls, 2)

		assert.Equal(t, "chat", api.setCalls[0].Scope.Type)
		assert.Equal(t, testutil.TestChatID, api.setCalls[0].Scope.ChatID)
		assert.Equal(t, "", api.setCalls[0].LanguageCode)
		require.Len(t, api.setCalls[0].Commands, 2)
		assert.Equal(t, "start", api.setCalls[0].Commands[0].Command)
		assert.Equal(t, "ban", api.setCalls[0].Commands[1].Command)

		// The admin group has no Spanish localization, so the es record only
		// carries the first group's command.
		assert.Equal(t, "es", api.setCalls[1].LanguageCode)
		require.Len(t, api.setCalls[1].Commands, 1)
		assert.Equal(t, "iniciar", api.setCalls[1].Commands[0].Command)
	})
}

func suggestionGroup() *Group {
	g := NewGroup()
	g.Command(NewName("papazote"), "Greets the papa", noopHandler)
	g.Command(NewName("papacin"), "Greets papa familiarly", noopHandler, WithPrefix("+"))
	return g
}

func TestNearestCommand(t *testing.T) {
	t.Run("requires text", func(t *testing.T) {
		c := NewContext(tg.Update{UpdateID: 1}, testutil.TestBot(), nil)
		_, err := c.NearestCommand([]*Group{suggestionGroup()})
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("suggests across prefixes", func(t *testing.T) {
		got, err := textContext("/papacin").NearestCommand([]*Group{suggestionGroup()})
		require.NoError(t, err)
		assert.Equal(t, "+papacin", got)
	})

	t.Run("nothing close enough", func(t *testing.T) {
		got, err := textContext("/nonadapapi").NearestCommand([]*Group{suggestionGroup()})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("best result across groups wins", func(t *testing.T) {
		other := NewGroup()
		other.Command(NewName("papacino"), "Even closer", noopHandler)

		got, err := textContext("/papacino").NearestCommand([]*Group{suggestionGroup(), other})
		require.NoError(t, err)
		assert.Equal(t, "/papacino", got)
	})

	t.Run("sender language picks the localization pool", func(t *testing.T) {
		g := NewGroup()
		g.Command(NewName("settings"), "Settings", noopHandler).
			Localize("es", NewName("ajustes"), "Ajustes")

		msg := testutil.TestMessage(1, "/ajuste")
		msg.From.LanguageCode = "es"
		c := NewContext(testutil.TestUpdateWithMessage(1, msg), testutil.TestBot(), nil)

		got, err := c.NearestCommand([]*Group{g})
		require.NoError(t, err)
		assert.Equal(t, "/ajustes", got)
	})

	t.Run("ignore localization searches every language", func(t *testing.T) {
		g := NewGroup()
		g.Command(NewName("settings"), "Settings", noopHandler).
			Localize("es", NewName("ajustes"), "Ajustes")

		got, err := textContext("/ajuste").NearestCommand([]*Group{g}, WithIgnoreLocalization())
		require.NoError(t, err)
		assert.Equal(t, "/ajustes", got)
	})
}

func TestContextCommandEntities(t *testing.T) {
	g := NewGroup()
	g.Command(NewName("start"), "Start", noopHandler)
	g.Command(NewName("ban"), "Ban", noopHandler, WithPrefix("!"))

	t.Run("requires text", func(t *testing.T) {
		c := NewContext(tg.Update{UpdateID: 1}, testutil.TestBot(), nil)
		_, err := c.CommandEntities(g)
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("finds tokens per prefix with byte offsets", func(t *testing.T) {
		entities, err := textContext("/start then !ban him").CommandEntities(g)
		require.NoError(t, err)
		require.Len(t, entities, 2)

		assert.Equal(t, "/start", entities[0].Text)
		assert.Equal(t, 0, entities[0].Offset)
		assert.Equal(t, 6, entities[0].Length)
		assert.Equal(t, "/", entities[0].Prefix)
		assert.Equal(t, "bot_command", entities[0].Type)

		assert.Equal(t, "!ban", entities[1].Text)
		assert.Equal(t, 12, entities[1].Offset)
		assert.Equal(t, "!", entities[1].Prefix)
	})

	t.Run("mid-word prefixes are not tokens", func(t *testing.T) {
		entities, err := textContext("a/b and http://x").CommandEntities(g)
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("no registered prefixes yields nothing", func(t *testing.T) {
		entities, err := textContext("/start").CommandEntities(NewGroup())
		require.NoError(t, err)
		assert.Nil(t, entities)
	})
}

func TestNotFound(t *testing.T) {
	groups := []*Group{suggestionGroup()}

	t.Run("stashes the suggestion", func(t *testing.T) {
		c := textContext("/papacin")

		ok, err := NotFound(groups)(context.Background(), c)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "+papacin", c.Suggestion)
	})

	t.Run("passes without a suggestion when nothing is close", func(t *testing.T) {
		c := textContext("/nonadapapi")

		ok, err := NotFound(groups)(context.Background(), c)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, c.Suggestion)
	})

	t.Run("plain text is not command-like", func(t *testing.T) {
		c := textContext("hello there")

		ok, err := NotFound(groups)(context.Background(), c)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty groups assume the slash prefix", func(t *testing.T) {
		c := textContext("/anything")

		ok, err := NotFound(nil)(context.Background(), c)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, c.Suggestion)
	})
}
