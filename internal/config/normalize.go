package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoder()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = defaultMediaDir
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.BaseURL = strings.TrimRight(strings.TrimSpace(c.Paths.BaseURL), "/")
	return nil
}

func (c *Config) normalizeEncoder() {
	if strings.TrimSpace(c.Encoder.Binary) == "" {
		c.Encoder.Binary = defaultEncoderBinary
	} else {
		c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	}
	if strings.TrimSpace(c.Encoder.ProbeBinary) == "" {
		c.Encoder.ProbeBinary = defaultProbeBinary
	} else {
		c.Encoder.ProbeBinary = strings.TrimSpace(c.Encoder.ProbeBinary)
	}
	c.Encoder.VideoCodec = strings.TrimSpace(c.Encoder.VideoCodec)
	c.Encoder.AudioCodec = strings.TrimSpace(c.Encoder.AudioCodec)
	c.Encoder.Extension = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Encoder.Extension), "."))
	if c.Encoder.Extension == "" {
		c.Encoder.Extension = defaultExtension
	}
	cleaned := make([]string, 0, len(c.Encoder.ExtraArgs))
	for _, arg := range c.Encoder.ExtraArgs {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	c.Encoder.ExtraArgs = cleaned
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.WatchPollInterval <= 0 {
		c.Workflow.WatchPollInterval = defaultWatchPollInterval
	}
	if c.Workflow.ScanWorkers <= 0 {
		c.Workflow.ScanWorkers = defaultScanWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
