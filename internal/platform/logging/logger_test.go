package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("tournament_id", "t-1")

	logger.Info("fixtures created", "count", 12, "error", errors.New("boom"))
	logger.Debug("hidden below level")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, `"msg":"fixtures created"`)
	assert.Contains(t, out, `"tournament_id":"t-1"`)
	assert.Contains(t, out, `"count":12`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.NotContains(t, out, "hidden below level")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLogger_NilIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	assert.NoError(t, logger.Sync())
	assert.NotNil(t, logger.With("k", "v"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}
