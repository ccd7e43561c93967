package textutil

import (
	"regexp"
	"strings"
)

var (
	// bracketReplacer blanks bracket characters; synthesizers read them as
	// stage directions and the subtitle track should never show them.
	bracketReplacer = strings.NewReplacer(
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
		"{", " ",
		"}", " ",
	)

	repeatedBangs   = regexp.MustCompile(`!{2,}`)
	repeatedQueries = regexp.MustCompile(`\?{2,}`)
	repeatedStops   = regexp.MustCompile(`\.{2,}`)

	nonWordOrSpace  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	nonWord         = regexp.MustCompile(`[^\p{L}\p{N}_]`)
	spaceBeforeMark = regexp.MustCompile(`\s+([,.!?;:。！？；，、：])`)
)

// FormatScript prepares raw narration text for synthesis and matching:
// brackets are blanked, runs of identical terminal punctuation collapse to a
// single mark, and whitespace is normalized to single spaces.
func FormatScript(text string) string {
	text = bracketReplacer.Replace(text)
	text = repeatedBangs.ReplaceAllString(text, "!")
	text = repeatedQueries.ReplaceAllString(text, "?")
	text = repeatedStops.ReplaceAllString(text, ".")
	return strings.Join(strings.Fields(text), " ")
}

// StripSymbols removes every character that is neither a word character nor
// whitespace. Second matching tier for subtitle reconciliation.
func StripSymbols(text string) string {
	return nonWordOrSpace.ReplaceAllString(text, "")
}

// StripNonWord removes every non-word character including whitespace.
// Loosest matching tier for subtitle reconciliation.
func StripNonWord(text string) string {
	return nonWord.ReplaceAllString(text, "")
}

// TightenPunctuation removes whitespace immediately before punctuation so
// that space-joined word runs read as natural phrases.
func TightenPunctuation(text string) string {
	return spaceBeforeMark.ReplaceAllString(text, "$1")
}
