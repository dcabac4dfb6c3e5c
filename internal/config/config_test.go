package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCreds(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", writeCreds(t))
	t.Setenv("PORT", "")
	t.Setenv("CHAT_MODEL", "")
	t.Setenv("TRANSCRIBE_MODEL", "")
	t.Setenv("CHUNK_SECONDS", "")
	t.Setenv("RUBRIC_VERSION", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gpt-4", cfg.ChatModel)
	assert.Equal(t, "whisper-1", cfg.TranscribeModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 600, cfg.ChunkSeconds)
	assert.Equal(t, "v2", cfg.RubricVersion)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", writeCreds(t))
	t.Setenv("PORT", "9001")
	t.Setenv("CHUNK_SECONDS", "300")
	t.Setenv("RUBRIC_VERSION", "v1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 300, cfg.ChunkSeconds)
	assert.Equal(t, "v1", cfg.RubricVersion)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", writeCreds(t))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_MissingCredentialsPath(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_APPLICATION_CREDENTIALS")
}

func TestLoad_NonexistentCredentialsFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/nope/does-not-exist.json")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}
