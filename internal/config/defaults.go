package config

const (
	defaultOutputDir            = "~/.local/share/subforge/output"
	defaultWorkDir              = "~/.local/share/subforge/work"
	defaultLogDir               = "~/.local/share/subforge/logs"
	defaultCacheDir             = "~/.local/share/subforge/cache"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultTTSTimeoutSeconds    = 300
	defaultMaxChunkChars        = 300
	defaultMaxParallelSynthesis = 2
	defaultConfidenceThreshold  = 0.1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		TTS: TTS{
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Subtitles: Subtitles{
			MaxChunkChars:        defaultMaxChunkChars,
			MaxParallelSynthesis: defaultMaxParallelSynthesis,
			ConfidenceThreshold:  defaultConfidenceThreshold,
			ValidateOutput:       true,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
