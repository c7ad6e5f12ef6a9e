package testutil

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// TelegramEnvelope is the standard Telegram API response format.
type TelegramEnvelope struct {
	OK          bool        `json:"ok"`
	Result      any         `json:"result,omitempty"`
	ErrorCode   int         `json:"error_code,omitempty"`
	Description string      `json:"description,omitempty"`
	Parameters  *Parameters `json:"parameters,omitempty"`
}

// Parameters contains optional error parameters (e.g., retry_after).
type Parameters struct {
	RetryAfter      int   `json:"retry_after,omitempty"`
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

// ReplyOK writes a successful Telegram API response.
func ReplyOK(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TelegramEnvelope{
		OK:     true,
		Result: result,
	})
}

// ReplyError writes a Telegram API error response.
func ReplyError(w http.ResponseWriter, code int, description string, params *Parameters) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TelegramEnvelope{
		OK:          false,
		ErrorCode:   code,
		Description: description,
		Parameters:  params,
	})
}

// ReplyRateLimit writes a 429 rate limit response with retry_after in both JSON and HTTP header.
func ReplyRateLimit(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	ReplyError(w, 429, "Too Many Requests: retry after "+strconv.Itoa(retryAfter), &Parameters{
		RetryAfter: retryAfter,
	})
}

// ReplyServerError writes a 5xx server error response.
func ReplyServerError(w http.ResponseWriter, code int, description string) {
	ReplyError(w, code, description, nil)
}

// ReplyBadRequest writes a 400 bad request error.
func ReplyBadRequest(w http.ResponseWriter, description string) {
	ReplyError(w, 400, "Bad Request: "+description, nil)
}

// ReplyForbidden writes a 403 forbidden error (e.g., bot blocked).
func ReplyForbidden(w http.ResponseWriter, description string) {
	ReplyError(w, 403, "Forbidden: "+description, nil)
}

// ReplyBool writes a successful boolean response (for setMyCommands, etc.).
func ReplyBool(w http.ResponseWriter, result bool) {
	ReplyOK(w, result)
}

// ReplyUser writes a successful getMe response.
func ReplyUser(w http.ResponseWriter) {
	ReplyOK(w, map[string]any{
		"id":         TestBotID,
		"is_bot":     true,
		"first_name": "Test Bot",
		"username":   TestBotUsername,
	})
}

// ReplyUpdates writes a successful getUpdates response.
func ReplyUpdates(w http.ResponseWriter, updates []map[string]any) {
	ReplyOK(w, updates)
}

// ReplyEmptyUpdates writes an empty getUpdates response.
func ReplyEmptyUpdates(w http.ResponseWriter) {
	ReplyOK(w, []map[string]any{})
}

// ReplyChatMember writes a successful getChatMember response with the given
// status ("creator", "administrator", "member", "restricted", "left", "kicked").
func ReplyChatMember(w http.ResponseWriter, status string) {
	ReplyOK(w, map[string]any{
		"status": status,
		"user": map[string]any{
			"id":         TestUserID,
			"is_bot":     false,
			"first_name": "Test",
			"username":   TestUsername,
		},
	})
}

// ReplyBotCommands writes a successful getMyCommands response.
func ReplyBotCommands(w http.ResponseWriter, commands []map[string]any) {
	ReplyOK(w, commands)
}
