// Package config loads the application configuration from the environment.
//
// Everything lives in one explicit Config struct, built once in main and
// passed by reference into the components that need it. Nothing reads
// os.Getenv outside this package.
//
// PRECEDENCE:
// Environment variables win; a .env file (loaded via godotenv, ignored when
// absent) fills in anything the environment doesn't set; compiled-in defaults
// cover the rest. The shared secret has no default on purpose — the server
// must not start with a guessable secret.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server.
//
// The validate tags are enforced once at startup by Load — a misconfigured
// deployment fails fast with a clear message instead of limping along and
// failing on the first login.
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	DataFile    string `validate:"required"` // path of the JSON document
	UploadsDir  string `validate:"required"` // where uploaded assets are written
	TemplateDir string `validate:"required"`

	// Secret is the shared secret known to this service and to the external
	// system that issues login credentials. Signature verification, the simple
	// login key and session-token hashing all derive from it.
	Secret string `validate:"required,min=16"`

	SessionTTL  time.Duration `validate:"gt=0"` // session + cookie lifetime
	LoginWindow time.Duration `validate:"gt=0"` // max |now - ts| for timestamped logins

	// CookieSecure marks the session cookie Secure. Off by default so local
	// HTTP development works; set COOKIE_SECURE=true behind TLS.
	CookieSecure bool

	// RedirectURL is where browser requests are sent when authentication
	// fails — an external portal, treated purely as a collaborator address.
	RedirectURL string `validate:"required,url"`

	AllowedOrigins []string
}

// Load builds and validates the configuration.
//
// The .env file is optional; a missing file is not an error. A present but
// malformed duration or port IS an error — silently substituting a default
// for a typo would hide the misconfiguration.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           8080,
		DataFile:       getEnv("DATA_FILE", "data/linkdeck.json"),
		UploadsDir:     getEnv("UPLOADS_DIR", "data/uploads/assets"),
		TemplateDir:    getEnv("TEMPLATE_DIR", "web/templates"),
		Secret:         os.Getenv("LINK_SECRET"),
		SessionTTL:     12 * time.Hour,
		LoginWindow:    5 * time.Minute,
		CookieSecure:   false,
		RedirectURL:    getEnv("REDIRECT_URL", "https://portal.example.com/login"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = ttl
	}
	if v := os.Getenv("LOGIN_WINDOW"); v != "" {
		window, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid LOGIN_WINDOW %q: %w", v, err)
		}
		cfg.LoginWindow = window
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid COOKIE_SECURE %q: %w", v, err)
		}
		cfg.CookieSecure = secure
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// getEnv returns the environment value or a fallback when unset.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated env value, trimming whitespace around
// each entry and dropping empties.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
