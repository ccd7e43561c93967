package subtitles

import "errors"

const (
	// DefaultMaxChunkChars bounds the text sent to a single synthesis call.
	DefaultMaxChunkChars = 300

	// maxPhraseRun closes a word-level phrase after this many words even
	// without punctuation.
	maxPhraseRun = 8

	// minCommaRun is the minimum word-level run length at which a
	// comma-class mark closes the phrase early.
	minCommaRun = 4
)

var (
	// ErrEmptyTimeline reports a render call with zero fragments. Surfaced
	// so callers can tell "no speech" apart from a renderer bug instead of
	// silently writing an empty file.
	ErrEmptyTimeline = errors.New("empty timeline")

	// ErrReconciliationMismatch reports that accumulated fragments could
	// not be aligned to every expected sentence unit. Recovered locally by
	// the proportional fallback, never fatal.
	ErrReconciliationMismatch = errors.New("reconciliation mismatch")

	// ErrSynthesisFailed tags an external synthesizer failure. The whole
	// run aborts; stitching across a missing chunk is never attempted.
	ErrSynthesisFailed = errors.New("synthesis failed")
)
