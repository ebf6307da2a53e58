package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: "9090"
gemini:
  api_key: "from-file"
  model: "gemini-1.5-pro"
cache:
  size: 10
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o600))
	return path
}

func TestInitReadsFileAndDefaults(t *testing.T) {
	Init(writeConfig(t))

	assert.Equal(t, "9090", Conf.Server.Port)
	assert.Equal(t, "from-file", Conf.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", Conf.Gemini.Model)
	assert.Equal(t, 10, Conf.Cache.Size)
	// not in the file
	assert.Equal(t, "memory", Conf.Cache.Backend)
	assert.Equal(t, 3, Conf.Conversation.HistoryWindow)
	assert.Equal(t, "j-hartmann/emotion-english-distilroberta-base", Conf.Classifier.Model)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("CACHE_BACKEND", "redis")

	Init(writeConfig(t))

	assert.Equal(t, "from-env", Conf.Gemini.APIKey)
	assert.Equal(t, "redis", Conf.Cache.Backend)
}

func TestInitPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		Init(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 50, c.Cache.Size)
	assert.Equal(t, 50, c.Conversation.MaxTurns)
}
