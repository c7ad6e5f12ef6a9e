package sender_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/internal/testutil"
	"github.com/prilive-com/tgcmd/tg"
)

func TestGetMe(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.OnMethod("POST", "/bot"+testutil.TestToken+"/getMe", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyUser(w)
	})
	client := testutil.NewTestClient(t, server.BaseURL())

	me, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.TestBotID, me.ID)
	assert.Equal(t, testutil.TestBotUsername, me.Username)
	assert.True(t, me.IsBot)
}

func TestGetChatMember(t *testing.T) {
	tests := []struct {
		status  string
		isAdmin bool
		isOwner bool
	}{
		{"creator", true, true},
		{"administrator", true, false},
		{"member", false, false},
		{"restricted", false, false},
		{"left", false, false},
		{"kicked", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			server := testutil.NewMockServer(t)
			server.On("/bot"+testutil.TestToken+"/getChatMember", func(w http.ResponseWriter, r *http.Request) {
				testutil.ReplyChatMember(w, tt.status)
			})
			client := testutil.NewTestClient(t, server.BaseURL())

			member, err := client.GetChatMember(context.Background(), testutil.TestChatID, testutil.TestUserID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, member.Status())
			assert.Equal(t, tt.isAdmin, tg.IsAdmin(member))
			assert.Equal(t, tt.isOwner, tg.IsOwner(member))
			assert.Equal(t, testutil.TestUserID, member.GetUser().ID)

			capture := server.LastCapture()
			capture.AssertJSONField(t, "chat_id", float64(testutil.TestChatID))
			capture.AssertJSONField(t, "user_id", float64(testutil.TestUserID))
		})
	}
}

func TestGetChatMemberValidation(t *testing.T) {
	server := testutil.NewMockServer(t)
	client := testutil.NewTestClient(t, server.BaseURL())

	var valErr *tg.ValidationError

	_, err := client.GetChatMember(context.Background(), 0, testutil.TestUserID)
	require.ErrorAs(t, err, &valErr)

	_, err = client.GetChatMember(context.Background(), testutil.TestChatID, 0)
	require.ErrorAs(t, err, &valErr)

	assert.Zero(t, server.CaptureCount())
}

func TestGetChatMemberUserNotFound(t *testing.T) {
	server := testutil.NewMockServer(t)
	server.On("/bot"+testutil.TestToken+"/getChatMember", func(w http.ResponseWriter, r *http.Request) {
		testutil.ReplyBadRequest(w, "user not found")
	})
	client := testutil.NewTestClient(t, server.BaseURL())

	_, err := client.GetChatMember(context.Background(), testutil.TestChatID, testutil.TestUserID)
	assert.ErrorIs(t, err, tg.ErrUserNotFound)
}
