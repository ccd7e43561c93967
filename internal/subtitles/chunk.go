package subtitles

import (
	"strings"
	"unicode/utf8"

	"subforge/internal/textutil"
)

// Chunk is a bounded slice of script text synthesized independently.
// Chunks are addressed by index so the stitcher can reassemble results
// deterministically regardless of synthesis completion order.
type Chunk struct {
	Index int
	Text  string
}

// PlanChunks splits text into chunks no longer than maxChars, breaking only
// on sentence boundaries. A sentence that alone exceeds the budget is
// subdivided at pause marks; a clause still too long is emitted as its own
// oversized chunk rather than split mid-word. maxChars <= 0 selects
// DefaultMaxChunkChars.
func PlanChunks(text string, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []Chunk{{Index: 0, Text: text}}
	}

	var pieces []string
	for _, unit := range textutil.SplitSentences(text) {
		if utf8.RuneCountInString(unit) <= maxChars {
			pieces = append(pieces, unit)
			continue
		}
		pieces = append(pieces, textutil.SplitClauses(unit)...)
	}

	var chunks []Chunk
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: current.String()})
		current.Reset()
		currentLen = 0
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+1+pieceLen > maxChars {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(piece)
		currentLen += pieceLen
		// An oversized clause occupies a chunk alone.
		if currentLen > maxChars {
			flush()
		}
	}
	flush()

	return chunks
}
