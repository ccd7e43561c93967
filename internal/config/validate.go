package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxChunkChars < 1 {
		return errors.New("subtitles.max_chunk_chars must be at least 1")
	}
	if c.Subtitles.MaxParallelSynthesis < 1 {
		return errors.New("subtitles.max_parallel_synthesis must be at least 1")
	}
	if c.Subtitles.ConfidenceThreshold < 0 || c.Subtitles.ConfidenceThreshold > 1 {
		return errors.New("subtitles.confidence_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.TimeoutSeconds < 1 {
		return errors.New("tts.timeout_seconds must be at least 1")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Dir) == "" {
		return errors.New("cache.dir must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
