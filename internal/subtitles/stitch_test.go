package subtitles

import (
	"testing"
	"time"

	"subforge/internal/timeline"
)

func TestStitchOffsetsByAudioDuration(t *testing.T) {
	chunks := []ChunkTimeline{
		{
			Timeline: timeline.Timeline{frag("First chunk.", 0, 2.5)},
			Duration: 3 * time.Second,
		},
		{
			Timeline: timeline.Timeline{frag("Second chunk.", 0, 1.5)},
			Duration: 2 * time.Second,
		},
	}

	out, total := Stitch(chunks)
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(out))
	}
	if out[0].Start != 0 || out[0].End != timeline.FromSeconds(2.5) {
		t.Errorf("first fragment spans %v-%v", out[0].Start, out[0].End)
	}
	if out[1].Start != timeline.FromSeconds(3) || out[1].End != timeline.FromSeconds(4.5) {
		t.Errorf("second fragment spans %v-%v", out[1].Start, out[1].End)
	}
	if total != 5*time.Second {
		t.Errorf("expected 5s total, got %v", total)
	}
}

func TestStitchPreservesOrderAcrossChunks(t *testing.T) {
	chunks := []ChunkTimeline{
		{
			Timeline: timeline.Timeline{frag("a.", 0, 1), frag("b.", 1, 2)},
			Duration: 2 * time.Second,
		},
		{
			Timeline: timeline.Timeline{frag("c.", 0, 1)},
			Duration: time.Second,
		},
	}

	out, _ := Stitch(chunks)
	var last timeline.Ticks
	for i, f := range out {
		if f.Start < last {
			t.Fatalf("fragment %d starts before predecessor ended", i)
		}
		last = f.End
	}
}

func TestStitchClampsWhenDurationUndershootsTimeline(t *testing.T) {
	// Chunk 0 reports 3s of audio but its timeline runs to 5s, so chunk 1's
	// shifted fragment would start inside it. The stitched result must stay
	// monotonic, clamping the regression to the previous fragment's end.
	chunks := []ChunkTimeline{
		{
			Timeline: timeline.Timeline{frag("First.", 0, 5)},
			Duration: 3 * time.Second,
		},
		{
			Timeline: timeline.Timeline{frag("Second.", 0, 1)},
			Duration: time.Second,
		},
	}

	out, _ := Stitch(chunks)
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(out))
	}
	if out[1].Start < out[0].End {
		t.Fatalf("second fragment starts at %v, inside the first which ends at %v", out[1].Start, out[0].End)
	}
	if out[1].End < out[1].Start {
		t.Errorf("second fragment ends at %v, before its start %v", out[1].End, out[1].Start)
	}
	if out[1].Text != "Second." {
		t.Errorf("clamping must not drop text: %q", out[1].Text)
	}
}

func TestStitchEmpty(t *testing.T) {
	out, total := Stitch(nil)
	if len(out) != 0 || total != 0 {
		t.Fatalf("expected empty stitch, got %d fragments, %v", len(out), total)
	}
}

func TestStitchSkipsNothingOnEmptyChunkTimeline(t *testing.T) {
	// A chunk reconciled to zero fragments still advances the clock so the
	// following chunk lands at the right offset.
	chunks := []ChunkTimeline{
		{Timeline: nil, Duration: 4 * time.Second},
		{
			Timeline: timeline.Timeline{frag("late.", 0, 1)},
			Duration: time.Second,
		},
	}

	out, total := Stitch(chunks)
	if len(out) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(out))
	}
	if out[0].Start != timeline.FromSeconds(4) {
		t.Errorf("fragment not offset past silent chunk: start %v", out[0].Start)
	}
	if total != 5*time.Second {
		t.Errorf("expected 5s total, got %v", total)
	}
}

func TestProportionalTimelineApportionsByLength(t *testing.T) {
	units := []string{"abcd", "ab", "ab"} // 4:2:2 over 8s
	out := ProportionalTimeline(units, 8*time.Second)

	if len(out) != 3 {
		t.Fatalf("expected one fragment per unit, got %d", len(out))
	}
	if out[0].End != timeline.FromSeconds(4) {
		t.Errorf("first span ends at %v", out[0].End)
	}
	if out[1].Start != timeline.FromSeconds(4) || out[1].End != timeline.FromSeconds(6) {
		t.Errorf("second span %v-%v", out[1].Start, out[1].End)
	}
	if out[2].End != timeline.FromSeconds(8) {
		t.Errorf("final span ends at %v", out[2].End)
	}
}

func TestProportionalTimelineMonotonic(t *testing.T) {
	units := []string{"short", "a much longer sentence unit", "mid one"}
	out := ProportionalTimeline(units, 7*time.Second)

	if len(out) != len(units) {
		t.Fatalf("expected %d fragments, got %d", len(units), len(out))
	}
	var last timeline.Ticks
	for i, f := range out {
		if f.Start != last {
			t.Errorf("fragment %d starts at %v, previous ended at %v", i, f.Start, last)
		}
		if f.End < f.Start {
			t.Errorf("fragment %d ends before it starts", i)
		}
		last = f.End
	}
}

func TestProportionalTimelineEmptyUnits(t *testing.T) {
	if out := ProportionalTimeline(nil, time.Second); len(out) != 0 {
		t.Fatalf("expected empty timeline, got %+v", out)
	}
	if out := ProportionalTimeline([]string{""}, time.Second); len(out) != 0 {
		t.Fatalf("expected empty timeline for blank units, got %+v", out)
	}
}
