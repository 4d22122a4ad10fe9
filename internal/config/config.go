package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultModel is used when AI_MODEL is unset.
const DefaultModel = "openai/gpt-4o-mini"

// DefaultBaseURL is the OpenRouter chat-completion gateway.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

type Config struct {
	// HTTP server
	Port string

	// Provider
	OpenRouterBaseURL string
	Model             string
	AITimeout         time.Duration

	// Client (tipctl)
	APIBase      string
	ClientDBPath string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "5055"),

		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", DefaultBaseURL),
		Model:             getEnv("AI_MODEL", DefaultModel),
		AITimeout:         getEnvDuration("AI_TIMEOUT", 15*time.Second),

		APIBase:      getEnv("API_BASE", "http://localhost:5055"),
		ClientDBPath: getEnv("CLIENT_DB_PATH", "./data/budgetapp-client.db"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if parsed, err := url.Parse(c.OpenRouterBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid OpenRouter base URL '%s': %v", c.OpenRouterBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid OpenRouter base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if strings.TrimSpace(c.Model) == "" {
		errors = append(errors, "model identifier cannot be empty")
	}

	if c.AITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid AI timeout %v: must be at least 1 second", c.AITimeout))
	} else if c.AITimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid AI timeout %v: must be at most 5 minutes", c.AITimeout))
	}

	if c.ClientDBPath == "" {
		errors = append(errors, "client database path cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Credentials is the provider credential state observed at a point in time.
// The key value itself is never logged or echoed; only presence matters.
type Credentials struct {
	Key   string
	Model string
}

// Present reports whether a usable credential is configured.
func (c Credentials) Present() bool {
	return strings.TrimSpace(c.Key) != ""
}

// ReadCredentials re-reads the provider credential and model from the
// environment, reloading the .env file first so a key added or removed
// between requests takes effect without a restart.
func ReadCredentials() Credentials {
	_ = godotenv.Overload()
	return Credentials{
		Key:   os.Getenv("OPENROUTER_API_KEY"),
		Model: getEnv("AI_MODEL", DefaultModel),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
