package commands

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/internal/testutil"
	"github.com/prilive-com/tgcmd/tg"
)

func textContext(text string) *Context {
	return NewContext(testutil.TestUpdate(1, text), testutil.TestBot(), nil)
}

func captionContext(caption string) *Context {
	msg := testutil.TestMessage(1, "")
	msg.Caption = caption
	return NewContext(testutil.TestUpdateWithMessage(1, msg), testutil.TestBot(), nil)
}

func TestFindMatchingCommandBasic(t *testing.T) {
	names := []Name{NewName("start")}

	result := FindMatchingCommand(names, DefaultOptions(), textContext("/start"))
	require.NotNil(t, result)
	assert.Equal(t, "start", result.Command.String())
	assert.Equal(t, "", result.Rest)
	assert.Nil(t, result.Match)
}

func TestFindMatchingCommandRest(t *testing.T) {
	names := []Name{NewName("start")}

	result := FindMatchingCommand(names, DefaultOptions(), textContext("/start  hello world "))
	require.NotNil(t, result)
	assert.Equal(t, "hello world", result.Rest)
}

func TestFindMatchingCommandNoText(t *testing.T) {
	names := []Name{NewName("start")}

	c := NewContext(tg.Update{UpdateID: 1}, testutil.TestBot(), nil)
	assert.Nil(t, FindMatchingCommand(names, DefaultOptions(), c))
}

func TestFindMatchingCommandCaptionFallback(t *testing.T) {
	names := []Name{NewName("start")}

	result := FindMatchingCommand(names, DefaultOptions(), captionContext("/start args"))
	require.NotNil(t, result)
	assert.Equal(t, "args", result.Rest)
}

func TestFindMatchingCommandNoCandidateMatches(t *testing.T) {
	names := []Name{NewName("start"), NewName("help")}

	assert.Nil(t, FindMatchingCommand(names, DefaultOptions(), textContext("/other")))
}

func TestFindMatchingCommandMatchOnlyAtStart(t *testing.T) {
	names := []Name{NewName("start")}

	t.Run("rejects command after leading text", func(t *testing.T) {
		assert.Nil(t, FindMatchingCommand(names, DefaultOptions(), textContext("hi /start")))
	})

	t.Run("match anywhere accepts it", func(t *testing.T) {
		opts := buildOptions(DefaultOptions(), WithMatchAnywhere())
		result := FindMatchingCommand(names, opts, textContext("hi /start there"))
		require.NotNil(t, result)
		assert.Equal(t, "there", result.Rest)
	})

	t.Run("match anywhere still matches at position zero", func(t *testing.T) {
		opts := buildOptions(DefaultOptions(), WithMatchAnywhere())
		require.NotNil(t, FindMatchingCommand(names, opts, textContext("/start")))
	})
}

func TestFindMatchingCommandTargeted(t *testing.T) {
	names := []Name{NewName("start")}

	// Bare, targeted at this bot, targeted at another bot, against each
	// targeting mode.
	tests := []struct {
		mode TargetedCommands
		text string
		want bool
	}{
		{TargetedIgnored, "/start", true},
		{TargetedIgnored, "/start@testbot", false},
		{TargetedIgnored, "/start@otherbot", false},
		{TargetedOptional, "/start", true},
		{TargetedOptional, "/start@testbot", true},
		{TargetedOptional, "/start@otherbot", false},
		{TargetedRequired, "/start", false},
		{TargetedRequired, "/start@testbot", true},
		{TargetedRequired, "/start@otherbot", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+" "+tt.text, func(t *testing.T) {
			opts := buildOptions(DefaultOptions(), WithTargetedCommands(tt.mode))
			result := FindMatchingCommand(names, opts, textContext(tt.text))
			assert.Equal(t, tt.want, result != nil)
		})
	}
}

func TestFindMatchingCommandAtSignInArguments(t *testing.T) {
	names := []Name{NewName("start")}

	t.Run("email argument is not a target", func(t *testing.T) {
		result := FindMatchingCommand(names, DefaultOptions(), textContext("/start someone@example.com"))
		require.NotNil(t, result)
		assert.Equal(t, "someone@example.com", result.Rest)
	})

	t.Run("target and email argument coexist", func(t *testing.T) {
		result := FindMatchingCommand(names, DefaultOptions(), textContext("/start@testbot someone@example.com"))
		require.NotNil(t, result)
		assert.Equal(t, "someone@example.com", result.Rest)
	})
}

func TestFindMatchingCommandPattern(t *testing.T) {
	t.Run("populates submatches from the full text", func(t *testing.T) {
		names := []Name{NewPattern(regexp.MustCompile(`start_(\d{3})`))}

		result := FindMatchingCommand(names, DefaultOptions(), textContext("/start_123"))
		require.NotNil(t, result)
		assert.Equal(t, "", result.Rest)
		assert.Equal(t, []string{"start_123", "123"}, result.Match)
	})

	t.Run("pattern sees command plus arguments", func(t *testing.T) {
		names := []Name{NewPattern(regexp.MustCompile(`buy (\w+)`))}

		result := FindMatchingCommand(names, DefaultOptions(), textContext("/buy apples"))
		require.NotNil(t, result)
		assert.Equal(t, "apples", result.Rest)
		assert.Equal(t, []string{"buy apples", "apples"}, result.Match)
	})

	t.Run("non-matching pattern", func(t *testing.T) {
		names := []Name{NewPattern(regexp.MustCompile(`start_(\d{3})`))}
		assert.Nil(t, FindMatchingCommand(names, DefaultOptions(), textContext("/start_xy")))
	})
}

func TestFindMatchingCommandCustomPrefix(t *testing.T) {
	names := []Name{NewName("ban")}
	opts := buildOptions(DefaultOptions(), WithPrefix("!"))

	result := FindMatchingCommand(names, opts, textContext("!ban spammer"))
	require.NotNil(t, result)
	assert.Equal(t, "spammer", result.Rest)

	assert.Nil(t, FindMatchingCommand(names, opts, textContext("/ban spammer")))
}

func TestFindMatchingCommandIgnoreCase(t *testing.T) {
	names := []Name{NewName("start")}
	opts := buildOptions(DefaultOptions(), WithIgnoreCase())

	require.NotNil(t, FindMatchingCommand(names, opts, textContext("/START")))
}

func TestFindMatchingCommandPatternCaseFlag(t *testing.T) {
	// The pattern's own (?i) flag applies even without IgnoreCase.
	names := []Name{NewPattern(regexp.MustCompile("(?i)start"))}

	require.NotNil(t, FindMatchingCommand(names, DefaultOptions(), textContext("/START")))
}

func TestHasCommandStashesMatch(t *testing.T) {
	c := textContext("/start some args")

	ok, err := HasCommand([]Name{NewName("start")}, DefaultOptions())(context.Background(), c)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "some args", c.Match)
	require.NotNil(t, c.CommandMatch)
	assert.Equal(t, "start", c.CommandMatch.Command.String())
}

func TestHasCommandNoMatchLeavesContext(t *testing.T) {
	c := textContext("hello")

	ok, err := HasCommand([]Name{NewName("start")}, DefaultOptions())(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.Match)
	assert.Nil(t, c.CommandMatch)
}
