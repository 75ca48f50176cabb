package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		return errors.New("paths.media_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.Binary == "" {
		return errors.New("encoder.binary must be set")
	}
	if c.Encoder.VideoCodec == "" {
		return errors.New("encoder.video_codec must be set")
	}
	if c.Encoder.AudioCodec == "" {
		return errors.New("encoder.audio_codec must be set")
	}
	for _, r := range c.Encoder.Extension {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("encoder.extension %q must be alphanumeric", c.Encoder.Extension)
		}
	}
	if c.Encoder.TimeoutSeconds < 0 {
		return errors.New("encoder.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.WatchPollInterval <= 0 {
		return errors.New("workflow.watch_poll_interval must be positive")
	}
	if c.Workflow.ScanWorkers <= 0 {
		return errors.New("workflow.scan_workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
