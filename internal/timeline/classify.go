package timeline

import "unicode/utf8"

// Granularity describes whether a timeline carries word-level or
// phrase-level fragments, which selects the reconciliation strategy.
type Granularity int

const (
	// WordLevel timelines carry one fragment per word boundary.
	WordLevel Granularity = iota
	// PhraseLevel timelines carry one fragment per phrase or sentence.
	PhraseLevel
)

func (g Granularity) String() string {
	switch g {
	case WordLevel:
		return "word"
	case PhraseLevel:
		return "phrase"
	default:
		return "unknown"
	}
}

// wordLengthThreshold is the mean fragment rune length below which a
// timeline is treated as word-level. Typical words stay well under 15
// characters; phrases and sentences rarely do.
const wordLengthThreshold = 15

// Classify inspects mean fragment text length to decide granularity.
// An empty timeline classifies as phrase-level so the matching path
// produces zero entries instead of dividing by zero.
func Classify(tl Timeline) Granularity {
	if len(tl) == 0 {
		return PhraseLevel
	}
	total := 0
	for _, frag := range tl {
		total += utf8.RuneCountInString(frag.Text)
	}
	if float64(total)/float64(len(tl)) < wordLengthThreshold {
		return WordLevel
	}
	return PhraseLevel
}
