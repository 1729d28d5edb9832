package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePolling()
	c.normalizeDisplay()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	c.Server.BaseURL = strings.TrimRight(base, "/")
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizePolling() {
	if c.Polling.QueueInterval <= 0 {
		c.Polling.QueueInterval = defaultQueueInterval
	}
	if c.Polling.JobInterval <= 0 {
		c.Polling.JobInterval = defaultJobInterval
	}
}

func (c *Config) normalizeDisplay() {
	if c.Display.ReleaseLimit <= 0 {
		c.Display.ReleaseLimit = defaultReleaseLimit
	}
	if c.Display.CompletedTail <= 0 {
		c.Display.CompletedTail = defaultCompletedTail
	}
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColor
	}
}

func (c *Config) normalizeLogging() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}
