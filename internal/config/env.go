package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"jobwatch-bot/internal/secrets"

	"github.com/joho/godotenv"
)

const (
	EnvBotToken     = "BOT_TOKEN"
	EnvChatID       = "GROUP_CHAT_ID"
	EnvAdzunaAppID  = "ADZUNA_APP_ID"
	EnvAdzunaAppKey = "ADZUNA_APP_KEY"
	EnvRapidAPIKey  = "RAPIDAPI_KEY"
)

// Credentials holds every secret the process needs. Built once at startup
// and passed by value into whichever component needs a piece of it; nothing
// reads the environment after this.
type Credentials struct {
	BotToken     string
	ChatID       int64
	AdzunaAppID  string
	AdzunaAppKey string
	RapidAPIKey  string
}

// LoadCredentials reads a .env file if one exists, then resolves each value
// from the environment with an OS-keychain fallback for the secret ones.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load() // missing .env is fine

	var c Credentials
	c.BotToken = lookupSecret(EnvBotToken)
	c.AdzunaAppID = lookupSecret(EnvAdzunaAppID)
	c.AdzunaAppKey = lookupSecret(EnvAdzunaAppKey)
	c.RapidAPIKey = lookupSecret(EnvRapidAPIKey)

	if raw := strings.TrimSpace(os.Getenv(EnvChatID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%s must be a numeric chat id: %w", EnvChatID, err)
		}
		c.ChatID = id
	}
	return c, nil
}

func lookupSecret(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	v, err := secrets.Lookup(name)
	if err != nil {
		return ""
	}
	return v
}
