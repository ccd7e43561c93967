package subtitles

import (
	"fmt"
	"strings"

	"subforge/internal/textutil"
	"subforge/internal/timeline"
)

// MatchLines re-derives sentence-aligned fragments from possibly
// mis-segmented phrase-level synthesizer output. Fragments accumulate until
// the accumulation matches the next expected sentence unit under one of
// three progressively looser comparisons: exact equality, equality with
// symbols stripped, equality with everything but word characters stripped.
// The emitted fragment spans from the first accumulated fragment's start to
// the matching fragment's end.
//
// Returns ErrReconciliationMismatch when the input is exhausted without a
// match for every unit; the caller recovers with a proportional split.
func MatchLines(tl timeline.Timeline, units []string) (timeline.Timeline, error) {
	out := make(timeline.Timeline, 0, len(units))
	var accumulated strings.Builder
	var runStart timeline.Ticks
	started := false
	next := 0

	for _, frag := range tl {
		if !started {
			runStart = frag.Start
			started = true
		}
		accumulated.WriteString(frag.Text)

		if next >= len(units) {
			continue
		}
		if !lineMatches(accumulated.String(), units[next]) {
			continue
		}

		out = append(out, timeline.Fragment{
			Text:  strings.TrimSpace(units[next]),
			Start: runStart,
			End:   frag.End,
		})
		next++
		accumulated.Reset()
		started = false
	}

	if len(out) != len(units) {
		return nil, fmt.Errorf("%w: matched %d of %d lines", ErrReconciliationMismatch, len(out), len(units))
	}
	return out, nil
}

// lineMatches applies the three comparison tiers in order; first hit wins.
// Looser tiers require non-empty normalized forms so punctuation-only
// accumulations never consume a unit.
func lineMatches(accumulated, unit string) bool {
	if accumulated == unit {
		return true
	}

	strippedAcc := textutil.StripSymbols(accumulated)
	strippedUnit := textutil.StripSymbols(unit)
	if strippedAcc != "" && strippedAcc == strippedUnit {
		return true
	}

	bareAcc := textutil.StripNonWord(accumulated)
	bareUnit := textutil.StripNonWord(unit)
	return bareAcc != "" && bareAcc == bareUnit
}
