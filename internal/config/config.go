// Package config reads the site configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file. Process variables always win over the file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "8080"
	DefaultServiceID      = "service_w198aki"
	DefaultTemplateID     = "template_28t9loq"
	DefaultPublicKey      = "DNwe7dmhgGuMLAaZV"
	DefaultEmailJSURL     = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultEmailJSTimeout = 10 * time.Second
	DefaultTemplateGlob   = "templates/*"
)

// EmailJS selects the hosted account and template used for contact mail.
type EmailJS struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
	Timeout    time.Duration
}

type Config struct {
	Port          string
	TemplateGlob  string
	LogLevel      string
	LogFormat     string
	CSRFKey       []byte
	CSRFGenerated bool
	SecureCookies bool
	EmailJS       EmailJS
}

// Load seeds the environment from the given .env files (missing files are
// skipped) and then reads the configuration.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from a getenv-style function.
func FromLookup(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:         get("PORT", DefaultPort),
		TemplateGlob: get("TEMPLATE_GLOB", DefaultTemplateGlob),
		LogLevel:     get("LOG_LEVEL", "info"),
		LogFormat:    get("LOG_FORMAT", "json"),
		EmailJS: EmailJS{
			ServiceID:  get("EMAILJS_SERVICE_ID", DefaultServiceID),
			TemplateID: get("EMAILJS_TEMPLATE_ID", DefaultTemplateID),
			PublicKey:  get("EMAILJS_PUBLIC_KEY", DefaultPublicKey),
			PrivateKey: get("EMAILJS_PRIVATE_KEY", ""),
			Endpoint:   get("EMAILJS_ENDPOINT", DefaultEmailJSURL),
			Timeout:    DefaultEmailJSTimeout,
		},
	}

	if raw := getenv("EMAILJS_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid EMAILJS_TIMEOUT %q", raw)
		}
		cfg.EmailJS.Timeout = d
	}

	// Cookies are only marked Secure outside gin debug mode unless overridden.
	cfg.SecureCookies = getenv("GIN_MODE") != "" && getenv("GIN_MODE") != "debug"
	if raw := getenv("SECURE_COOKIES"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIES %q: %w", raw, err)
		}
		cfg.SecureCookies = b
	}

	if raw := getenv("CSRF_KEY"); raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("CSRF_KEY must be 64 hex characters")
		}
		cfg.CSRFKey = key
	} else {
		key, err := randomKey()
		if err != nil {
			return nil, err
		}
		cfg.CSRFKey = key
		cfg.CSRFGenerated = true
	}

	return cfg, nil
}

func randomKey() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating csrf key: %w", err)
	}
	return b, nil
}
