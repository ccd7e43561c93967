package subtitles

import (
	"strings"

	"subforge/internal/textutil"
	"subforge/internal/timeline"
)

// GroupWords merges consecutive word fragments into subtitle-sized phrases.
// A running phrase closes at the first condition that holds: the word ends
// with a terminal mark, the run has reached maxPhraseRun words, the word is
// the last fragment, or the word ends with a comma-class mark and the run
// already has minCommaRun words. Greedy, single pass, no backtracking.
func GroupWords(tl timeline.Timeline) timeline.Timeline {
	if len(tl) == 0 {
		return timeline.Timeline{}
	}

	out := make(timeline.Timeline, 0, len(tl))
	var run []string
	var runStart timeline.Ticks
	started := false

	for i, frag := range tl {
		if !started {
			runStart = frag.Start
			started = true
		}
		run = append(run, frag.Text)

		closeRun := textutil.EndsWithTerminal(frag.Text) ||
			len(run) >= maxPhraseRun ||
			i == len(tl)-1 ||
			(textutil.EndsWithPause(frag.Text) && len(run) >= minCommaRun)
		if !closeRun {
			continue
		}

		text := textutil.TightenPunctuation(strings.TrimSpace(strings.Join(run, " ")))
		out = append(out, timeline.Fragment{
			Text:  text,
			Start: runStart,
			End:   frag.End,
		})
		run = run[:0]
		started = false
	}

	return out
}
