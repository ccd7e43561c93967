package subtitles

import (
	"time"
	"unicode/utf8"

	"subforge/internal/timeline"
)

// ChunkTimeline pairs a reconciled chunk timeline with its audio duration.
type ChunkTimeline struct {
	Timeline timeline.Timeline
	Duration time.Duration
}

// Stitch concatenates per-chunk timelines into one continuous timeline.
// Every fragment of chunk k shifts by the summed audio duration of chunks
// 0..k-1, so input order is preserved. A chunk whose reported duration
// undershoots its timeline's final end would push the next chunk's
// fragments back into it; the combined timeline is sanitized so such
// regressions clamp to the previous fragment's end instead of surfacing
// as overlapping cues. Returns the timeline and the total audio duration.
func Stitch(chunks []ChunkTimeline) (timeline.Timeline, time.Duration) {
	total := 0
	for _, chunk := range chunks {
		total += len(chunk.Timeline)
	}

	out := make(timeline.Timeline, 0, total)
	var offset timeline.Ticks
	for _, chunk := range chunks {
		for _, frag := range chunk.Timeline {
			out = append(out, timeline.Fragment{
				Text:  frag.Text,
				Start: frag.Start + offset,
				End:   frag.End + offset,
			})
		}
		offset += timeline.FromDuration(chunk.Duration)
	}

	return out.Sanitize(), offset.Duration()
}

// ProportionalTimeline builds the fallback timeline for a chunk whose
// synthesizer timestamps could not be reconciled: the audio duration is
// apportioned across the sentence units by character-count ratio, which
// keeps starts monotonic and one fragment per unit.
func ProportionalTimeline(units []string, duration time.Duration) timeline.Timeline {
	totalChars := 0
	for _, unit := range units {
		totalChars += utf8.RuneCountInString(unit)
	}
	if totalChars == 0 {
		return timeline.Timeline{}
	}

	durationTicks := timeline.FromDuration(duration)
	out := make(timeline.Timeline, 0, len(units))
	var cursor timeline.Ticks
	for _, unit := range units {
		chars := utf8.RuneCountInString(unit)
		if chars == 0 {
			continue
		}
		span := timeline.Ticks(int64(durationTicks) * int64(chars) / int64(totalChars))
		out = append(out, timeline.Fragment{
			Text:  unit,
			Start: cursor,
			End:   cursor + span,
		})
		cursor += span
	}

	return out
}
