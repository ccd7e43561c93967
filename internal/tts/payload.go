package tts

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"subforge/internal/timeline"
)

type payloadWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payloadSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []payloadWord `json:"words"`
}

type payload struct {
	AudioPath string           `json:"audio_path"`
	Duration  float64          `json:"duration"`
	Segments  []payloadSegment `json:"segments"`
}

// ParsePayload decodes a synthesizer's JSON output into a Result. Segments
// carrying word alignments contribute one fragment per word; bare segments
// contribute one fragment each. Fragment text is entity-unescaped because
// SSML-based backends report boundary text XML-escaped.
func ParsePayload(data []byte) (Result, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Result{}, fmt.Errorf("parse synthesis payload: %w", err)
	}
	if len(p.Segments) == 0 {
		return Result{}, fmt.Errorf("synthesis payload has no segments")
	}

	var tl timeline.Timeline
	for _, seg := range p.Segments {
		if len(seg.Words) > 0 {
			for _, word := range seg.Words {
				text := html.UnescapeString(strings.TrimSpace(word.Word))
				if text == "" {
					continue
				}
				// Inverted timestamps clamp to a zero-length fragment
				// rather than dropping the word from the subtitle track.
				end := word.End
				if end < word.Start {
					end = word.Start
				}
				tl = append(tl, timeline.Fragment{
					Text:  text,
					Start: timeline.FromSeconds(word.Start),
					End:   timeline.FromSeconds(end),
				})
			}
			continue
		}
		text := html.UnescapeString(strings.TrimSpace(seg.Text))
		if text == "" {
			continue
		}
		tl = append(tl, timeline.Fragment{
			Text:  text,
			Start: timeline.FromSeconds(seg.Start),
			End:   timeline.FromSeconds(seg.End),
		})
	}

	duration := time.Duration(p.Duration * float64(time.Second))
	if duration <= 0 {
		duration = tl.End().Duration()
	}

	return Result{
		Timeline:  tl,
		AudioPath: p.AudioPath,
		Duration:  duration,
	}, nil
}
