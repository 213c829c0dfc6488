package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrianliechti/waves-mcp/pkg/audio"

	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("WAVES_API_KEY", "test-key")
	t.Setenv("MCP_BASE_PATH", dir)
	t.Setenv("ADDRESS", "")

	c, err := Parse("")
	require.NoError(t, err)

	defer c.Close()

	require.Equal(t, ":8000", c.Address)
	require.Equal(t, dir, c.Store().Path())
	require.Equal(t, audio.DefaultMaxAge, c.Cleanup.MaxAge)
	require.Zero(t, c.Cleanup.Interval)

	require.Empty(t, c.Authorizers)
	require.Len(t, c.Tools(), 1)
	require.NotNil(t, c.MCP())
	require.NotNil(t, c.Waves())
}

func TestParseDefaultStoragePath(t *testing.T) {
	t.Setenv("WAVES_API_KEY", "test-key")
	t.Setenv("MCP_BASE_PATH", "")

	c, err := Parse("")
	require.NoError(t, err)

	require.Equal(t, filepath.Join(os.TempDir(), "waves-mcp"), c.Store().Path())
}

func TestParseMissingToken(t *testing.T) {
	t.Setenv("WAVES_API_KEY", "")

	_, err := Parse("")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("WAVES_API_KEY", "")
	t.Setenv("TEST_WAVES_TOKEN", "file-key")
	t.Setenv("TEST_AUDIO_DIR", dir)

	path := writeConfig(t, `
address: ":9000"

waves:
  url: http://localhost:1234
  token: ${TEST_WAVES_TOKEN}
  limit: 5

storage:
  path: ${TEST_AUDIO_DIR}

cleanup:
  interval: 5m
  max_age: 30m

mcp:
  name: voices
  instructions: Generate speech.

authorizers:
  - type: static
    token: secret
`)

	c, err := Parse(path)
	require.NoError(t, err)

	defer c.Close()

	require.Equal(t, ":9000", c.Address)
	require.Equal(t, dir, c.Store().Path())
	require.Equal(t, 5*time.Minute, c.Cleanup.Interval)
	require.Equal(t, 30*time.Minute, c.Cleanup.MaxAge)
	require.Len(t, c.Authorizers, 1)

	_, err = c.Tool("waves")
	require.NoError(t, err)

	_, err = c.Tool("unknown")
	require.Error(t, err)
}

func TestParseUnknownField(t *testing.T) {
	t.Setenv("WAVES_API_KEY", "test-key")

	path := writeConfig(t, `
providers:
  - type: openai
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseInvalidAuthorizer(t *testing.T) {
	t.Setenv("WAVES_API_KEY", "test-key")
	t.Setenv("MCP_BASE_PATH", t.TempDir())

	path := writeConfig(t, `
authorizers:
  - type: basic
`)

	_, err := Parse(path)
	require.ErrorContains(t, err, "invalid authorizer type")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestCreateLimiter(t *testing.T) {
	limit := func(v int) *int {
		return &v
	}

	require.Nil(t, createLimiter(nil))
	require.Nil(t, createLimiter(limit(0)))
	require.Nil(t, createLimiter(limit(-1)))

	l := createLimiter(limit(5))
	require.NotNil(t, l)
	require.Equal(t, 5, l.Burst())
}

func TestParseZeroLimit(t *testing.T) {
	t.Setenv("WAVES_API_KEY", "test-key")
	t.Setenv("MCP_BASE_PATH", t.TempDir())

	path := writeConfig(t, `
waves:
  limit: 0
`)

	c, err := Parse(path)
	require.NoError(t, err)

	defer c.Close()

	p, err := c.Tool("waves")
	require.NoError(t, err)

	val, err := p.Execute(context.Background(), "cleanupGeneratedAudio", map[string]any{})
	require.NoError(t, err)

	_, ok := val.(*audio.CleanupReport)
	require.True(t, ok, "unexpected result type %T", val)
}
