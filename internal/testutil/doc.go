// Package testutil provides testing utilities for tgcmd.
//
// This package is intended for internal testing only and should not be imported
// by external packages.
//
// # Mock Telegram Server
//
// MockTelegramServer provides a mock Telegram Bot API server for testing:
//
//	server := testutil.NewMockServer(t)
//	server.On("/bot"+testutil.TestToken+"/setMyCommands", func(w http.ResponseWriter, r *http.Request) {
//	    testutil.ReplyBool(w, true)
//	})
//	// Use server.BaseURL() as the API base URL
//
// # Request Capture
//
// All requests are automatically captured and can be inspected:
//
//	cap := server.LastCapture()
//	cap.AssertMethod(t, "POST")
//	cap.AssertJSONField(t, "language_code", "es")
//
// # Chat Member Replies
//
// ReplyChatMember serves canned getChatMember payloads for scope-filter tests:
//
//	testutil.ReplyChatMember(w, "administrator")
package testutil
