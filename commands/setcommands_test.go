package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBotCommandsRefusesUncompliant(t *testing.T) {
	api := &mockAPI{}

	g := NewGroup()
	g.Command(NewName("start"), "Start", noopHandler)
	g.Command(NewName("Broken"), "Bad", noopHandler)

	err := g.SetCommands(context.Background(), api)
	require.Error(t, err)

	var uncompliantErr *UncompliantCommandsError
	require.ErrorAs(t, err, &uncompliantErr)
	require.Len(t, uncompliantErr.Commands, 1)
	assert.Equal(t, "Broken", uncompliantErr.Commands[0].Name)
	assert.Contains(t, err.Error(), "1 command(s) are not API compliant")
	assert.Contains(t, err.Error(), `Broken (language "default")`)
	assert.Contains(t, err.Error(), "Command name has uppercase characters")

	// Nothing was sent.
	assert.Empty(t, api.setCalls)
}

func TestSetBotCommandsIgnoreUncompliant(t *testing.T) {
	api := &mockAPI{}

	g := NewGroup()
	g.Command(NewName("start"), "Start", noopHandler)
	g.Command(NewName("Broken"), "Bad", noopHandler)

	require.NoError(t, g.SetCommands(context.Background(), api, IgnoreUncompliantCommands()))
	require.Len(t, api.setCalls, 1)
	require.Len(t, api.setCalls[0].Commands, 1)
	assert.Equal(t, "start", api.setCalls[0].Commands[0].Command)
}

func TestSetBotCommandsWrapsTransportErrors(t *testing.T) {
	boom := errors.New("boom")
	api := &mockAPI{setErr: boom}

	g := NewGroup()
	g.Command(NewName("start"), "Start", noopHandler)

	err := g.SetCommands(context.Background(), api)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `set commands for scope "default"`)
}
