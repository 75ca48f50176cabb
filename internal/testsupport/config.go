package testsupport

import (
	"path/filepath"
	"testing"

	"webmify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MediaDir = filepath.Join(base, "media")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BaseURL = "https://media.example.test/uploads"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithConversionDisabled turns the conversion master toggle off.
func WithConversionDisabled() ConfigOption {
	return func(c *config.Config) {
		c.Conversion.Enabled = false
	}
}

// WithEncoderBinary points the encoder at a specific executable, typically a
// stub written by StubEncoder.
func WithEncoderBinary(path string) ConfigOption {
	return func(c *config.Config) {
		c.Encoder.Binary = path
	}
}

// WithBaseURL overrides the public URL prefix on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.BaseURL = url
	}
}
