package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variable names for the four OAuth 1.0a user-context secrets.
// The names are fixed: they match what the Twitter developer portal hands out
// and what existing deployments already export.
const (
	EnvConsumerKey    = "API_KEY"
	EnvConsumerSecret = "API_SECRET_KEY"
	EnvAccessToken    = "ACCESS_TOKEN"
	EnvAccessSecret   = "ACCESS_TOKEN_SECRET"
)

// Credentials is the four-secret set needed for an authenticated session.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// CredentialsFromEnv reads the four secrets from the environment.
// Missing variables are left empty; call Validate before use.
func CredentialsFromEnv() Credentials {
	return Credentials{
		ConsumerKey:    os.Getenv(EnvConsumerKey),
		ConsumerSecret: os.Getenv(EnvConsumerSecret),
		AccessToken:    os.Getenv(EnvAccessToken),
		AccessSecret:   os.Getenv(EnvAccessSecret),
	}
}

// MissingCredentialsError reports which credential variables are unset.
type MissingCredentialsError struct {
	Missing []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf(
		"Missing required environment variables. Please set: %s",
		strings.Join(e.Missing, ", "),
	)
}

// Validate returns a *MissingCredentialsError when any of the four
// secrets is empty. All four must be present simultaneously.
func (c Credentials) Validate() error {
	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{EnvConsumerKey, c.ConsumerKey},
		{EnvConsumerSecret, c.ConsumerSecret},
		{EnvAccessToken, c.AccessToken},
		{EnvAccessSecret, c.AccessSecret},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Missing: missing}
	}
	return nil
}

// LogPresence debug-logs which credential variables are set.
// Only booleans are logged, never the values themselves.
func (c Credentials) LogPresence(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("credential presence",
		EnvConsumerKey, c.ConsumerKey != "",
		EnvConsumerSecret, c.ConsumerSecret != "",
		EnvAccessToken, c.AccessToken != "",
		EnvAccessSecret, c.AccessSecret != "",
	)
}

// Transport values for the MCP listener.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds daemon-level settings.
type Config struct {
	Transport string // "http" or "stdio"
	Host      string
	Port      int
	APIKey    string // optional bearer key for the admin endpoints
}

// LoadFromEnv builds a Config from environment variables with TWMCP_ prefix.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Transport: getenv("TWMCP_TRANSPORT", TransportHTTP),
		Host:      getenv("TWMCP_HOST", "0.0.0.0"),
		Port:      getenvInt("TWMCP_PORT", 8083),
		APIKey:    os.Getenv("TWMCP_API_KEY"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for required fields.
func (c *Config) Validate() error {
	var errs []string

	switch c.Transport {
	case TransportHTTP, TransportStdio:
	default:
		errs = append(errs, fmt.Sprintf("transport must be %q or %q, got %q",
			TransportHTTP, TransportStdio, c.Transport))
	}
	if c.Transport == TransportHTTP {
		if c.Host == "" {
			errs = append(errs, "host is required for http transport")
		}
		if c.Port < 1 || c.Port > 65535 {
			errs = append(errs, fmt.Sprintf("port %d out of range", c.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
