package subtitles

import (
	"testing"

	"subforge/internal/timeline"
)

func frag(text string, startSec, endSec float64) timeline.Fragment {
	return timeline.Fragment{
		Text:  text,
		Start: timeline.FromSeconds(startSec),
		End:   timeline.FromSeconds(endSec),
	}
}

func words(texts ...string) timeline.Timeline {
	tl := make(timeline.Timeline, 0, len(texts))
	for i, text := range texts {
		tl = append(tl, frag(text, float64(i), float64(i)+0.8))
	}
	return tl
}

func TestGroupWordsTerminalClosesRun(t *testing.T) {
	tl := words("Hello,", "world.", "Bye.")

	out := GroupWords(tl)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(out), out)
	}
	if out[0].Text != "Hello, world." {
		t.Errorf("unexpected first group text: %q", out[0].Text)
	}
	if out[1].Text != "Bye." {
		t.Errorf("unexpected second group text: %q", out[1].Text)
	}
}

func TestGroupWordsRunCap(t *testing.T) {
	tl := words("the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog")

	out := GroupWords(tl)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(out), out)
	}
	if out[0].Text != "the quick brown fox jumps over the lazy" {
		t.Errorf("unexpected capped group: %q", out[0].Text)
	}
	if out[1].Text != "dog" {
		t.Errorf("unexpected trailing group: %q", out[1].Text)
	}
}

func TestGroupWordsCommaNeedsMinimumRun(t *testing.T) {
	tl := words("one,", "two", "three", "four,", "five")

	out := GroupWords(tl)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(out), out)
	}
	if out[0].Text != "one, two three four," {
		t.Errorf("unexpected comma-closed group: %q", out[0].Text)
	}
	if out[1].Text != "five" {
		t.Errorf("unexpected final group: %q", out[1].Text)
	}
}

func TestGroupWordsTiming(t *testing.T) {
	tl := timeline.Timeline{
		frag("Hello", 0.5, 1.0),
		frag("there.", 1.2, 2.0),
		frag("Bye.", 2.5, 3.0),
	}

	out := GroupWords(tl)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	if out[0].Start != timeline.FromSeconds(0.5) || out[0].End != timeline.FromSeconds(2.0) {
		t.Errorf("first group spans %v-%v", out[0].Start, out[0].End)
	}
	if out[1].Start != timeline.FromSeconds(2.5) || out[1].End != timeline.FromSeconds(3.0) {
		t.Errorf("second group spans %v-%v", out[1].Start, out[1].End)
	}
}

func TestGroupWordsTwoSentenceScenario(t *testing.T) {
	tl := timeline.Timeline{
		{Text: "Hello", Start: 0, End: 20},
		{Text: "world.", Start: 20, End: 40},
		{Text: "This", Start: 40, End: 60},
		{Text: "is", Start: 60, End: 80},
		{Text: "great!", Start: 80, End: 100},
	}

	out := GroupWords(tl)
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %+v", len(out), out)
	}
	if out[0].Text != "Hello world." || out[0].Start != 0 || out[0].End != 40 {
		t.Errorf("first fragment = %+v", out[0])
	}
	if out[1].Text != "This is great!" || out[1].Start != 40 || out[1].End != 100 {
		t.Errorf("second fragment = %+v", out[1])
	}
}

func TestGroupWordsAllTerminatedKeepsCount(t *testing.T) {
	tl := words("One.", "Two.", "Three.")
	out := GroupWords(tl)
	if len(out) != len(tl) {
		t.Fatalf("sentence-terminated tokens should group one-to-one: got %d of %d", len(out), len(tl))
	}
}

func TestGroupWordsNeverIncreasesCount(t *testing.T) {
	cases := [][]string{
		{"one"},
		{"one.", "two.", "three."},
		{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		{"x,", "y,", "z,"},
	}
	for _, texts := range cases {
		tl := words(texts...)
		out := GroupWords(tl)
		if len(out) > len(tl) {
			t.Errorf("grouping %v grew fragment count: %d > %d", texts, len(out), len(tl))
		}
	}
}

func TestGroupWordsEmpty(t *testing.T) {
	out := GroupWords(nil)
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}
