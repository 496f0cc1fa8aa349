package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSecret(t *testing.T) {
	secret, err := SessionSecret("configured", "production")
	require.NoError(t, err)
	assert.Equal(t, []byte("configured"), secret)

	_, err = SessionSecret("", "production")
	assert.Error(t, err)

	_, err = SessionSecret("", "")
	assert.Error(t, err)

	first, err := SessionSecret("", "development")
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := SessionSecret("", "development")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestParseLogLevel(t *testing.T) {
	for input, expected := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		level, err := ParseLogLevel(input)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitList(" http://a, ,http://b "))
	assert.Nil(t, SplitList(""))
}
