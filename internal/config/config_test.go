package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:              "5055",
		OpenRouterBaseURL: "https://openrouter.ai/api/v1",
		Model:             "openai/gpt-4o-mini",
		AITimeout:         15 * time.Second,
		APIBase:           "http://localhost:5055",
		ClientDBPath:      "./test-client.db",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid base URL scheme",
			mutate:      func(c *Config) { c.OpenRouterBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name:        "empty model",
			mutate:      func(c *Config) { c.Model = "  " },
			wantErr:     true,
			errorString: "model identifier cannot be empty",
		},
		{
			name:        "timeout too small",
			mutate:      func(c *Config) { c.AITimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "timeout too large",
			mutate:      func(c *Config) { c.AITimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
		{
			name:        "empty client db path",
			mutate:      func(c *Config) { c.ClientDBPath = "" },
			wantErr:     true,
			errorString: "client database path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_MODEL", "")
	t.Setenv("OPENROUTER_BASE_URL", "")
	cfg := Load()
	if cfg.Port != "5055" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.Model != DefaultModel {
		t.Fatalf("default model = %q", cfg.Model)
	}
	if cfg.OpenRouterBaseURL != DefaultBaseURL {
		t.Fatalf("default base URL = %q", cfg.OpenRouterBaseURL)
	}
}

func TestValidateDoesNotTouchFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	cfg := validConfig()
	cfg.ClientDBPath = filepath.Join(dir, "client.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("validation created %s", dir)
	}
}

func TestCredentialsPresent(t *testing.T) {
	if (Credentials{Key: ""}).Present() {
		t.Fatal("empty key reported present")
	}
	if (Credentials{Key: "   "}).Present() {
		t.Fatal("blank key reported present")
	}
	if !(Credentials{Key: "sk-or-abc"}).Present() {
		t.Fatal("real key reported absent")
	}
}

func TestReadCredentials(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("AI_MODEL", "")
	creds := ReadCredentials()
	if !creds.Present() {
		t.Fatal("expected key present")
	}
	if creds.Model != DefaultModel {
		t.Fatalf("model = %q, want default", creds.Model)
	}
}
