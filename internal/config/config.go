package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/weirlive/panw-object/internal/logging"
	"github.com/weirlive/panw-object/internal/synthesizer"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	OIDC   OIDCConfig
	Synth  SynthConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds API authentication configuration.
type AuthConfig struct {
	APIKeys []string `env:"API_KEYS" envSeparator:","`
}

// Keys returns the configured API keys with blanks removed.
func (c *AuthConfig) Keys() []string {
	keys := make([]string, 0, len(c.APIKeys))
	for _, k := range c.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// OIDCConfig holds OIDC authentication configuration for the web form.
type OIDCConfig struct {
	Enabled         bool          `env:"OIDC_ENABLED" envDefault:"false"`
	IssuerURL       string        `env:"OIDC_ISSUER_URL"`
	ClientID        string        `env:"OIDC_CLIENT_ID"`
	ClientSecret    string        `env:"OIDC_CLIENT_SECRET"`
	RedirectURL     string        `env:"OIDC_REDIRECT_URL"`
	Scopes          string        `env:"OIDC_SCOPES" envDefault:"openid,email,profile"`
	SessionSecret   string        `env:"OIDC_SESSION_SECRET"`
	SessionDuration time.Duration `env:"OIDC_SESSION_DURATION" envDefault:"12h"`
	AllowedDomains  string        `env:"OIDC_ALLOWED_DOMAINS"`
	SecureCookies   bool          `env:"OIDC_SECURE_COOKIES" envDefault:"true"`
}

// GetScopes returns the OIDC scopes as a slice.
func (c *OIDCConfig) GetScopes() []string {
	if strings.TrimSpace(c.Scopes) == "" {
		return []string{"openid", "email", "profile"}
	}
	return splitList(c.Scopes)
}

// GetAllowedDomains returns the allowed email domains, or nil for any.
func (c *OIDCConfig) GetAllowedDomains() []string {
	return splitList(c.AllowedDomains)
}

// GetSessionSecretBytes returns the 32-byte session encryption key.
func (c *OIDCConfig) GetSessionSecretBytes() ([]byte, error) {
	if c.SessionSecret == "" {
		return nil, fmt.Errorf("OIDC_SESSION_SECRET is required")
	}
	if len(c.SessionSecret) == 64 {
		if decoded, err := hex.DecodeString(c.SessionSecret); err == nil {
			return decoded, nil
		}
	}
	if len(c.SessionSecret) != 32 {
		return nil, fmt.Errorf("OIDC_SESSION_SECRET must be 32 bytes (or 64 hex characters)")
	}
	return []byte(c.SessionSecret), nil
}

// SynthConfig selects the naming policy.
type SynthConfig struct {
	SanitizeMode   string `env:"SANITIZE_MODE" envDefault:"preserve-dots"`
	DetectionOrder string `env:"DETECTION_ORDER" envDefault:"range-first"`
	RenameType     string `env:"RENAME_TYPE" envDefault:"OBJ"`
	RenameFrom     string `env:"RENAME_FROM" envDefault:"name"`
	TagGroups      bool   `env:"TAG_GROUPS" envDefault:"true"`
	StrictFQDN     bool   `env:"STRICT_FQDN" envDefault:"false"`
}

// Policy converts the settings to a synthesizer policy.
func (c *SynthConfig) Policy() synthesizer.Policy {
	return synthesizer.Policy{
		Sanitize:   synthesizer.SanitizeMode(strings.ToLower(strings.TrimSpace(c.SanitizeMode))),
		Detection:  synthesizer.DetectionOrder(strings.ToLower(strings.TrimSpace(c.DetectionOrder))),
		RenameType: strings.ToUpper(strings.TrimSpace(c.RenameType)),
		RenameFrom: synthesizer.RenameSource(strings.ToLower(strings.TrimSpace(c.RenameFrom))),
		TagGroups:  c.TagGroups,
		StrictFQDN: c.StrictFQDN,
	}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Logging converts the settings for the logging package.
func (c *LogConfig) Logging() logging.Config {
	return logging.Config{Level: c.Level, Format: c.Format}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.Auth); err != nil {
		return nil, fmt.Errorf("parsing auth config: %w", err)
	}
	if err := env.Parse(&cfg.OIDC); err != nil {
		return nil, fmt.Errorf("parsing oidc config: %w", err)
	}
	if err := env.Parse(&cfg.Synth); err != nil {
		return nil, fmt.Errorf("parsing synthesizer config: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}

	policy := c.Synth.Policy()
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("invalid synthesizer config: %w", err)
	}

	// Validate OIDC config when enabled
	if c.OIDC.Enabled {
		if c.OIDC.IssuerURL == "" {
			return fmt.Errorf("OIDC_ISSUER_URL is required when OIDC is enabled")
		}
		if c.OIDC.ClientID == "" {
			return fmt.Errorf("OIDC_CLIENT_ID is required when OIDC is enabled")
		}
		if c.OIDC.ClientSecret == "" {
			return fmt.Errorf("OIDC_CLIENT_SECRET is required when OIDC is enabled")
		}
		if c.OIDC.RedirectURL == "" {
			return fmt.Errorf("OIDC_REDIRECT_URL is required when OIDC is enabled")
		}
		if _, err := c.OIDC.GetSessionSecretBytes(); err != nil {
			return err
		}
	}

	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
