package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sentence-terminal punctuation for Latin and CJK scripts. Pause marks are
// weaker boundaries used only when a single sentence must be subdivided.
const (
	terminalMarks = ".!?;。！？；"
	pauseMarks    = ",:，、："
)

// IsTerminalMark reports whether r ends a sentence.
func IsTerminalMark(r rune) bool {
	return strings.ContainsRune(terminalMarks, r)
}

// IsPauseMark reports whether r marks a mid-sentence pause.
func IsPauseMark(r rune) bool {
	return strings.ContainsRune(pauseMarks, r)
}

// EndsWithTerminal reports whether the trimmed text ends with a
// sentence-terminal mark.
func EndsWithTerminal(text string) bool {
	return endsWithAny(text, terminalMarks)
}

// EndsWithPause reports whether the trimmed text ends with a pause mark.
func EndsWithPause(text string) bool {
	return endsWithAny(text, pauseMarks)
}

func endsWithAny(text, marks string) bool {
	trimmed := strings.TrimRight(text, " \t\r\n")
	if trimmed == "" {
		return false
	}
	runes := []rune(trimmed)
	return strings.ContainsRune(marks, runes[len(runes)-1])
}

// SplitSentences splits text into sentence units on terminal punctuation.
// Each unit keeps its closing mark; surrounding whitespace is trimmed and
// empty units are dropped. Input is NFC-normalized first so the same script
// always yields the same units regardless of source encoding quirks.
func SplitSentences(text string) []string {
	return splitOnMarks(norm.NFC.String(text), terminalMarks)
}

// SplitClauses subdivides a single sentence unit at pause marks. Used by the
// chunk planner when one sentence exceeds the chunk budget.
func SplitClauses(unit string) []string {
	return splitOnMarks(unit, pauseMarks)
}

func splitOnMarks(text, marks string) []string {
	var units []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if strings.ContainsRune(marks, r) {
			if unit := strings.TrimSpace(current.String()); unit != "" {
				units = append(units, unit)
			}
			current.Reset()
		}
	}
	if unit := strings.TrimSpace(current.String()); unit != "" {
		units = append(units, unit)
	}
	return units
}
