package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"subforge/internal/config"
	"subforge/internal/logging"
	"subforge/internal/subtitles"
	"subforge/internal/synthcache"
	"subforge/internal/tts"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildService assembles the pipeline service from configuration. The
// returned cleanup releases the cache lock and must run after the service
// is no longer needed.
func (c *commandContext) buildService() (*subtitles.Service, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logging: %w", err)
	}

	synth, err := tts.NewCommandSynthesizer(
		cfg.TTS.Command,
		cfg.TTS.Args,
		cfg.TTS.Voice,
		time.Duration(cfg.TTS.TimeoutSeconds)*time.Second,
		logger,
	)
	if err != nil {
		return nil, nil, err
	}

	var cache subtitles.Cache
	cleanup := func() {}
	if cfg.Cache.Enabled {
		store, err := synthcache.Open(cfg.Cache.Dir)
		if err != nil {
			logger.Warn("synthesis cache unavailable, continuing without it", logging.Error(err))
		} else {
			cache = store
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing synthesis cache", logging.Error(err))
				}
			}
		}
	}

	return subtitles.NewService(cfg, logger, synth, cache), cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
