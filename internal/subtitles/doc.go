// Package subtitles reconciles raw synthesizer timelines into a subtitle
// track synchronized with the generated narration audio.
//
// The pipeline splits the script into sentence units, plans bounded-size
// synthesis chunks, classifies each chunk's timeline as word-level or
// phrase-level, regroups or re-matches fragments into whole lines, stitches
// the per-chunk timelines with cumulative offsets, and renders SRT. Chunks
// whose timestamps cannot be trusted fall back to a proportional split of
// the chunk's audio duration, so one garbled chunk never sinks a run.
package subtitles
