package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// with selected values overridable through the environment (see [Config.ApplyEnv]).
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Server      ServerConfig      `toml:"server"`
	Frontend    FrontendConfig    `toml:"frontend"`
}

// CredentialsConfig contains provider credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// Map converts the Spotify credentials to the map form consumed by the services package.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"redirect_uri":  s.RedirectURI,
	}
}

// Configured reports whether both client id and client secret are present.
func (s SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	SecureCookies bool   `toml:"secure_cookies"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BaseURL returns the http URL of the server, used by CLI commands that talk to a running instance.
func (s ServerConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", s.Host, s.Port)
}

// FrontendConfig contains settings for the browser-facing side of the flow.
type FrontendConfig struct {
	BaseURL string `toml:"base_url"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration values with environment variables when set.
//
// Recognized variables: SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET,
// SPOTIFY_REDIRECT_URI, FRONTEND_BASE_URL, SPOTISTATS_HOST, SPOTISTATS_PORT,
// SPOTISTATS_SECURE_COOKIES.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REDIRECT_URI"); v != "" {
		c.Credentials.Spotify.RedirectURI = v
	}
	if v := os.Getenv("FRONTEND_BASE_URL"); v != "" {
		c.Frontend.BaseURL = v
	}
	if v := os.Getenv("SPOTISTATS_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SPOTISTATS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SPOTISTATS_SECURE_COOKIES"); v != "" {
		if secure, err := strconv.ParseBool(v); err == nil {
			c.Server.SecureCookies = secure
		}
	}
}
