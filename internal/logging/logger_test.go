package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerDiscards(t *testing.T) {
	require.Equal(t, zerolog.Disabled, zerolog.Nop().GetLevel())
	require.NotPanics(t, func() {
		Debug().Msg("dropped")
	})
}

func TestSetGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	Debug().Str("key", "value").Msg("hello")
	require.Contains(t, buf.String(), `"key":"value"`)
	require.Contains(t, buf.String(), `"message":"hello"`)

	buf.Reset()
	Ctx(context.Background()).Info().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}

func TestSessionAndTransactionFields(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf))

	session := ForSession(Logger, "s-1", "social")
	tx := ForTransaction(session, "t-1", "WRITE")
	tx.Info().Msg("opened")

	out := buf.String()
	require.Contains(t, out, `"session":"s-1"`)
	require.Contains(t, out, `"database":"social"`)
	require.Contains(t, out, `"transaction":"t-1"`)
	require.Contains(t, out, `"type":"WRITE"`)
}
