package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port              int
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	ChatModel         string
	TranscribeModel   string
	GoogleCredentials string
	ChunkSeconds      int
	RubricVersion     string
	LogLevel          string
}

// Load reads the configuration from environment variables. It returns an
// error when a credential the service cannot run without is missing, so the
// process refuses to start instead of failing on the first request.
func Load() (Config, error) {
	cfg := Config{
		Port:              envInt("PORT", 8080),
		OpenAIAPIKey:      envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:         envStr("CHAT_MODEL", "gpt-4"),
		TranscribeModel:   envStr("TRANSCRIBE_MODEL", "whisper-1"),
		GoogleCredentials: envStr("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ChunkSeconds:      envInt("CHUNK_SECONDS", 600),
		RubricVersion:     envStr("RUBRIC_VERSION", "v2"),
		LogLevel:          envStr("LOG_LEVEL", "info"),
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY not set")
	}
	if cfg.GoogleCredentials == "" {
		return Config{}, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS not set")
	}
	if _, err := os.Stat(cfg.GoogleCredentials); err != nil {
		return Config{}, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS path is invalid: %w", err)
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
