package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultServiceID, cfg.EmailJS.ServiceID)
	assert.Equal(t, DefaultTemplateID, cfg.EmailJS.TemplateID)
	assert.Equal(t, DefaultPublicKey, cfg.EmailJS.PublicKey)
	assert.Equal(t, DefaultEmailJSURL, cfg.EmailJS.Endpoint)
	assert.Equal(t, DefaultEmailJSTimeout, cfg.EmailJS.Timeout)
	assert.Empty(t, cfg.EmailJS.PrivateKey)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.True(t, cfg.CSRFGenerated)
	assert.False(t, cfg.SecureCookies)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookup(map[string]string{
		"PORT":                "9000",
		"EMAILJS_SERVICE_ID":  "service_x",
		"EMAILJS_TEMPLATE_ID": "template_y",
		"EMAILJS_PUBLIC_KEY":  "pub",
		"EMAILJS_PRIVATE_KEY": "priv",
		"EMAILJS_TIMEOUT":     "3s",
		"GIN_MODE":            "release",
		"CSRF_KEY":            strings.Repeat("ab", 32),
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, EmailJS{
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pub",
		PrivateKey: "priv",
		Endpoint:   DefaultEmailJSURL,
		Timeout:    3 * time.Second,
	}, cfg.EmailJS)
	assert.True(t, cfg.SecureCookies)
	assert.False(t, cfg.CSRFGenerated)
	assert.Len(t, cfg.CSRFKey, 32)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"timeout":  {"EMAILJS_TIMEOUT": "soon"},
		"negative": {"EMAILJS_TIMEOUT": "-1s"},
		"secure":   {"SECURE_COOKIES": "maybe"},
		"csrf":     {"CSRF_KEY": "short"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookup(env))
			assert.Error(t, err)
		})
	}
}

func TestDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EMAILJS_SERVICE_ID=service_file\nPORT=7070\n"), 0o600))

	env, err := godotenv.Read(path)
	require.NoError(t, err)

	cfg, err := FromLookup(lookup(env))
	require.NoError(t, err)
	assert.Equal(t, "service_file", cfg.EmailJS.ServiceID)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoadSkipsMissingFile(t *testing.T) {
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "template_env", cfg.EmailJS.TemplateID)
}

func TestLoadSeedsFromFileProcessWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EMAILJS_SERVICE_ID=service_file\nEMAILJS_PUBLIC_KEY=public_file\n"), 0o600))

	// t.Setenv restores the original state after the test; the unset lets
	// the file seed the variable.
	t.Setenv("EMAILJS_SERVICE_ID", "")
	require.NoError(t, os.Unsetenv("EMAILJS_SERVICE_ID"))
	t.Setenv("EMAILJS_PUBLIC_KEY", "public_process")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "service_file", cfg.EmailJS.ServiceID)
	assert.Equal(t, "public_process", cfg.EmailJS.PublicKey)
}
