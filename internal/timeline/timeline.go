package timeline

import (
	"strings"
	"time"
)

// Ticks counts 100-nanosecond units, the time base synthesizers report
// word boundaries in.
type Ticks int64

// TicksPerSecond is the number of 100 ns ticks in one second.
const TicksPerSecond Ticks = 10_000_000

// FromSeconds converts fractional seconds to ticks.
func FromSeconds(seconds float64) Ticks {
	return Ticks(seconds * float64(TicksPerSecond))
}

// FromDuration converts a time.Duration to ticks.
func FromDuration(d time.Duration) Ticks {
	return Ticks(d.Nanoseconds() / 100)
}

// Seconds converts ticks to fractional seconds.
func (t Ticks) Seconds() float64 {
	return float64(t) / float64(TicksPerSecond)
}

// Duration converts ticks to a time.Duration.
func (t Ticks) Duration() time.Duration {
	return time.Duration(int64(t) * 100)
}

// Fragment is one timed piece of synthesizer output.
type Fragment struct {
	Text  string `json:"text"`
	Start Ticks  `json:"start"`
	End   Ticks  `json:"end"`
}

// Timeline is an ordered sequence of fragments with non-decreasing starts.
type Timeline []Fragment

// Sanitize returns a copy with per-fragment anomalies corrected: fragments
// with blank text are dropped, starts that regress are clamped to the
// previous fragment's end, and ends before their start snap to the start.
// An approximate subtitle beats no subtitle, so nothing here fails.
func (tl Timeline) Sanitize() Timeline {
	out := make(Timeline, 0, len(tl))
	var floor Ticks
	for _, frag := range tl {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		if frag.Start < floor {
			frag.Start = floor
		}
		if frag.End < frag.Start {
			frag.End = frag.Start
		}
		floor = frag.End
		out = append(out, frag)
	}
	return out
}

// End returns the end offset of the final fragment, or zero when empty.
func (tl Timeline) End() Ticks {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1].End
}

// Text returns all fragment texts joined with single spaces.
func (tl Timeline) Text() string {
	parts := make([]string, 0, len(tl))
	for _, frag := range tl {
		if text := strings.TrimSpace(frag.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
