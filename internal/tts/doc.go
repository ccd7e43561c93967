// Package tts defines the boundary to external speech synthesis: the
// Synthesizer interface the subtitle pipeline consumes, and a provider that
// shells out to a configured command and parses its timestamp payload.
//
// Network calls, model lifecycle, and audio encoding live on the far side
// of this boundary; the pipeline only sees timelines, durations, and audio
// artifact paths.
package tts
