package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	BotToken          string
	ChatID            int64
	DeepSeekAPIKey    string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	DefaultFeedURL    string
	LogDir            string
}

func Load() *Config {
	return &Config{
		BotToken:          getEnv("BOT_TOKEN", ""),
		ChatID:            getEnvAsInt64("CHAT_ID", 0),
		DeepSeekAPIKey:    getEnv("DS_API_KEY", ""),
		ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: getEnv("ELEVENLABS_VOICE_ID", ""),
		DefaultFeedURL:    getEnv("DEFAULT_RSS_URL", ""),
		LogDir:            getEnv("LOG_DIR", "logs"),
	}
}

// Validate reports every missing required credential at once, so a broken
// deployment is fixable in one pass. It must run before any network call.
func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.ChatID == 0 {
		missing = append(missing, "CHAT_ID")
	}
	if c.DeepSeekAPIKey == "" {
		missing = append(missing, "DS_API_KEY")
	}
	if c.ElevenLabsAPIKey == "" {
		missing = append(missing, "ELEVENLABS_API_KEY")
	}
	if c.ElevenLabsVoiceID == "" {
		missing = append(missing, "ELEVENLABS_VOICE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
