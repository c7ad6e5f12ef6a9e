package tg_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgcmd/tg"
)

const sampleToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"

func TestSecretTokenRedaction(t *testing.T) {
	token := tg.SecretToken(sampleToken)

	assert.Equal(t, sampleToken, token.Value())
	assert.Equal(t, "[REDACTED]", token.String())
	assert.Equal(t, `tg.SecretToken("[REDACTED]")`, token.GoString())

	assert.NotContains(t, fmt.Sprintf("%v", token), sampleToken)
	assert.NotContains(t, fmt.Sprintf("%+v", token), sampleToken)
	assert.NotContains(t, fmt.Sprintf("%#v", token), sampleToken)
	assert.NotContains(t, fmt.Sprintf("%s", token), sampleToken)
}

func TestSecretTokenSlog(t *testing.T) {
	token := tg.SecretToken(sampleToken)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("starting", "token", token)

	assert.NotContains(t, buf.String(), sampleToken)
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestSecretTokenMarshalText(t *testing.T) {
	token := tg.SecretToken(sampleToken)

	data, err := json.Marshal(map[string]tg.SecretToken{"token": token})
	require.NoError(t, err)
	assert.NotContains(t, string(data), sampleToken)
	assert.Contains(t, string(data), "[REDACTED]")
}

func TestSecretTokenIsEmpty(t *testing.T) {
	assert.True(t, tg.SecretToken("").IsEmpty())
	assert.False(t, tg.SecretToken(sampleToken).IsEmpty())
}
