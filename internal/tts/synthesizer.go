package tts

import (
	"context"
	"time"

	"subforge/internal/timeline"
)

// Result is the outcome of synthesizing one text chunk.
type Result struct {
	// Timeline carries the synthesizer's raw fragment timestamps. May be
	// word-level or phrase-level; the pipeline classifies and reconciles it.
	Timeline timeline.Timeline
	// AudioPath points at the audio artifact the synthesizer produced.
	AudioPath string
	// Duration is the audio length. Zero when the backend did not report
	// one; callers then fall back to the timeline's final end offset.
	Duration time.Duration
}

// Synthesizer produces speech and raw timestamps for a text chunk.
// Implementations may be called concurrently for independent chunks.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (Result, error)
}

// Fingerprint identifies a synthesizer configuration for cache keying.
// Two synthesizers with the same fingerprint produce interchangeable output
// for the same text.
type Fingerprint interface {
	Fingerprint() string
}
