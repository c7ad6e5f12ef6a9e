package tg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/tg"
)

func TestUnmarshalChatMember(t *testing.T) {
	tests := []struct {
		status  string
		isAdmin bool
	}{
		{"creator", true},
		{"administrator", true},
		{"member", false},
		{"restricted", false},
		{"left", false},
		{"kicked", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			data := []byte(`{"status":"` + tt.status + `","user":{"id":7,"is_bot":false,"first_name":"T"}}`)

			member, err := tg.UnmarshalChatMember(data)
			require.NoError(t, err)
			assert.Equal(t, tt.status, member.Status())
			assert.Equal(t, tt.isAdmin, tg.IsAdmin(member))
			require.NotNil(t, member.GetUser())
			assert.Equal(t, int64(7), member.GetUser().ID)
		})
	}
}

func TestUnmarshalChatMemberUnknownStatus(t *testing.T) {
	_, err := tg.UnmarshalChatMember([]byte(`{"status":"alien"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alien")
}

func TestUnmarshalChatMemberAdministratorFields(t *testing.T) {
	data := []byte(`{
		"status": "administrator",
		"user": {"id": 7, "is_bot": false, "first_name": "T"},
		"can_manage_chat": true,
		"can_delete_messages": true,
		"custom_title": "Mod"
	}`)

	member, err := tg.UnmarshalChatMember(data)
	require.NoError(t, err)

	admin, ok := member.(tg.ChatMemberAdministrator)
	require.True(t, ok)
	assert.True(t, admin.CanManageChat)
	assert.True(t, admin.CanDeleteMessages)
	assert.Equal(t, "Mod", admin.CustomTitle)
}
