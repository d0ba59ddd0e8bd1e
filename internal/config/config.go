// Package config loads the server and CLI configuration from an optional
// YAML file, then applies environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Assistant AssistantConfig `yaml:"assistant"`
	Weather   WeatherConfig   `yaml:"weather"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// SecureCookies marks the session cookie Secure; enable behind HTTPS.
	SecureCookies bool `yaml:"secure_cookies"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret string       `yaml:"jwt_secret"`
	GitHub    GitHubConfig `yaml:"github"`
}

type GitHubConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CallbackURL  string `yaml:"callback_url"`
}

// AssistantConfig holds the server-wide Gemini key, used for users who have
// not stored their own.
type AssistantConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type WeatherConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: 8080},
		Database:  DatabaseConfig{Path: "data/yawmiyat.db"},
		Assistant: AssistantConfig{Model: "gemini-2.0-flash"},
		Weather:   WeatherConfig{BaseURL: "https://api.open-meteo.com"},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error; an
// empty path skips the file entirely. Environment overrides are applied
// last in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Auth.GitHub.CallbackURL == "" {
		cfg.Auth.GitHub.CallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Server.Port)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	overrides := []struct {
		env string
		dst *string
	}{
		{"DB_PATH", &c.Database.Path},
		{"JWT_SECRET", &c.Auth.JWTSecret},
		{"GITHUB_CLIENT_ID", &c.Auth.GitHub.ClientID},
		{"GITHUB_CLIENT_SECRET", &c.Auth.GitHub.ClientSecret},
		{"GITHUB_CALLBACK_URL", &c.Auth.GitHub.CallbackURL},
		{"GEMINI_API_KEY", &c.Assistant.APIKey},
		{"WEATHER_BASE_URL", &c.Weather.BaseURL},
		{"LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	return nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters (set JWT_SECRET)")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// EnsureDBDir creates the directory holding the database file.
func (c *Config) EnsureDBDir() error {
	if c.Database.Path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}
