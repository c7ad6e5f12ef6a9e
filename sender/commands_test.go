package sender_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/internal/testutil"
	"github.com/prilive-com/tgcmd/sender"
	"github.com/prilive-com/tgcmd/tg"
)

func TestSetMyCommands(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	cmds := []tg.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "help", Description: "Show help"},
	}

	require.NoError(t, client.SetMyCommands(context.Background(), cmds))

	capture := server.LastCapture()
	capture.AssertPath(t, "/bot"+testutil.TestToken+"/setMyCommands")
	capture.AssertMethod(t, "POST")
	capture.AssertContentType(t, "application/json")
	capture.AssertJSONFieldAbsent(t, "scope")
	capture.AssertJSONFieldAbsent(t, "language_code")

	var req sender.SetMyCommandsRequest
	capture.BodyJSON(t, &req)
	require.Len(t, req.Commands, 2)
	assert.Equal(t, "start", req.Commands[0].Command)
}

func TestSetMyCommandsScopeAndLanguage(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	cmds := []tg.BotCommand{{Command: "ban", Description: "Ban a user"}}

	err := client.SetMyCommands(context.Background(), cmds,
		sender.WithCommandScope(tg.BotCommandScopeChat(testutil.TestChatID)),
		sender.WithCommandLanguage("es"),
	)
	require.NoError(t, err)

	capture := server.LastCapture()
	capture.AssertJSONField(t, "language_code", "es")

	var req sender.SetMyCommandsRequest
	capture.BodyJSON(t, &req)
	require.NotNil(t, req.Scope)
	assert.Equal(t, "chat", req.Scope.Type)
	assert.Equal(t, testutil.TestChatID, req.Scope.ChatID)
}

func TestSetMyCommandsValidation(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	tests := []struct {
		name string
		cmds []tg.BotCommand
	}{
		{"uppercase name", []tg.BotCommand{{Command: "Start", Description: "x"}}},
		{"empty name", []tg.BotCommand{{Command: "", Description: "x"}}},
		{"empty description", []tg.BotCommand{{Command: "start", Description: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.SetMyCommands(context.Background(), tt.cmds)
			var valErr *tg.ValidationError
			require.ErrorAs(t, err, &valErr)
		})
	}

	// Validation failures never reach the wire.
	assert.Zero(t, server.CaptureCount())
}

func TestGetMyCommands(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/getMyCommands", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyBotCommands(w, []map[string]any{
			{"command": "start", "description": "Start the bot"},
		})
	})
	client := testutil.NewTestClient(t, server.BaseURL())

	cmds, err := client.GetMyCommands(context.Background(),
		sender.WithCommandLanguage("es"),
	)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "start", cmds[0].Command)

	server.LastCapture().AssertJSONField(t, "language_code", "es")
}

func TestDeleteMyCommands(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	err := client.DeleteMyCommands(context.Background(),
		sender.WithCommandScopeAndLanguage(tg.BotCommandScopeAllPrivateChats(), "es"),
	)
	require.NoError(t, err)

	capture := server.LastCapture()
	capture.AssertPath(t, "/bot"+testutil.TestToken+"/deleteMyCommands")
	capture.AssertJSONField(t, "language_code", "es")

	var req sender.DeleteMyCommandsRequest
	capture.BodyJSON(t, &req)
	require.NotNil(t, req.Scope)
	assert.Equal(t, "all_private_chats", req.Scope.Type)
}
