package subtitles

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"subforge/internal/config"
	"subforge/internal/services"
	"subforge/internal/synthcache"
	"subforge/internal/timeline"
	"subforge/internal/tts"
)

// fakeSynthesizer returns a word-level timeline echoing the input text, one
// second per word, so reconciliation exercises the grouping path.
type fakeSynthesizer struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) (tts.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.fail {
		return tts.Result{}, errors.New("synthesis exploded")
	}

	var tl timeline.Timeline
	for i, word := range strings.Fields(text) {
		tl = append(tl, timeline.Fragment{
			Text:  word,
			Start: timeline.FromSeconds(float64(i)),
			End:   timeline.FromSeconds(float64(i) + 0.9),
		})
	}
	return tts.Result{
		Timeline:  tl,
		AudioPath: fmt.Sprintf("/tmp/audio-%d.wav", len(text)),
		Duration:  time.Duration(len(strings.Fields(text))) * time.Second,
	}, nil
}

func (f *fakeSynthesizer) Fingerprint() string { return "fake-v1" }

func (f *fakeSynthesizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]synthcache.Entry
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]synthcache.Entry)}
}

func (c *memoryCache) Get(_ context.Context, key string) (synthcache.Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok, nil
}

func (c *memoryCache) Put(_ context.Context, key string, entry synthcache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Subtitles.MaxChunkChars = 60
	cfg.Subtitles.MaxParallelSynthesis = 2
	cfg.Subtitles.ConfidenceThreshold = 0.1
	cfg.Subtitles.ValidateOutput = true
	return cfg
}

func TestServiceGenerate(t *testing.T) {
	synth := &fakeSynthesizer{}
	svc := NewService(testConfig(), nil, synth, nil)
	out := filepath.Join(t.TempDir(), "out.srt")

	result, err := svc.Generate(context.Background(), GenerateRequest{
		ScriptText: "The first narration sentence goes here. The second sentence follows it. A third one closes the script.",
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.RunID == "" {
		t.Error("expected a run id")
	}
	if result.EntryCount == 0 {
		t.Error("expected subtitle entries")
	}
	if len(result.Chunks) < 2 {
		t.Errorf("expected multiple chunks, got %d", len(result.Chunks))
	}
	if len(result.Issues) != 0 {
		t.Errorf("unexpected validation issues: %v", result.Issues)
	}

	entries, err := ParseSRT(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(entries) != result.EntryCount {
		t.Errorf("file has %d entries, result says %d", len(entries), result.EntryCount)
	}
	var last float64
	for _, entry := range entries {
		if entry.Start < last {
			t.Errorf("entry %d regresses in time", entry.Index)
		}
		last = entry.End
	}
}

func TestServiceGenerateEmptyScript(t *testing.T) {
	svc := NewService(testConfig(), nil, &fakeSynthesizer{}, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{ScriptText: "   \n  "})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGenerateSynthesisFailure(t *testing.T) {
	svc := NewService(testConfig(), nil, &fakeSynthesizer{fail: true}, nil)
	out := filepath.Join(t.TempDir(), "out.srt")

	_, err := svc.Generate(context.Background(), GenerateRequest{
		ScriptText: "Hello there.",
		OutputPath: out,
	})
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed, got %v", err)
	}
}

func TestServiceGenerateUsesCache(t *testing.T) {
	cache := newMemoryCache()
	synth := &fakeSynthesizer{}
	svc := NewService(testConfig(), nil, synth, cache)
	dir := t.TempDir()

	script := "A cached sentence lives here. Another one follows it closely."
	req := GenerateRequest{ScriptText: script, OutputPath: filepath.Join(dir, "a.srt")}
	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstCalls := synth.callCount()
	if firstCalls == 0 {
		t.Fatal("expected synthesis calls on first run")
	}

	req.OutputPath = filepath.Join(dir, "b.srt")
	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if synth.callCount() != firstCalls {
		t.Errorf("expected no new synthesis calls, got %d extra", synth.callCount()-firstCalls)
	}
	for _, chunk := range result.Chunks {
		if !chunk.Cached {
			t.Errorf("chunk %d not served from cache", chunk.Index)
		}
	}
}

func TestServiceChunkReportsOrdered(t *testing.T) {
	synth := &fakeSynthesizer{}
	cfg := testConfig()
	cfg.Subtitles.MaxParallelSynthesis = 4
	svc := NewService(cfg, nil, synth, nil)
	out := filepath.Join(t.TempDir(), "out.srt")

	script := strings.TrimSpace(strings.Repeat("Yet another narration sentence sits right here. ", 8))
	result, err := svc.Generate(context.Background(), GenerateRequest{ScriptText: script, OutputPath: out})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i, chunk := range result.Chunks {
		if chunk.Index != i {
			t.Errorf("chunk report %d has index %d", i, chunk.Index)
		}
		if chunk.Source == "" {
			t.Errorf("chunk %d missing reconciliation source", i)
		}
	}
	if len(result.AudioPaths) != len(result.Chunks) {
		t.Errorf("audio path count %d does not match chunk count %d", len(result.AudioPaths), len(result.Chunks))
	}
}

func TestServiceDivergentTimelineFallsBack(t *testing.T) {
	synth := &divergentSynthesizer{}
	svc := NewService(testConfig(), nil, synth, nil)
	out := filepath.Join(t.TempDir(), "out.srt")

	result, err := svc.Generate(context.Background(), GenerateRequest{
		ScriptText: "Completely scripted narration sentence for checking.",
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result.Chunks))
	}
	if result.Chunks[0].Source != SourceProportional {
		t.Errorf("expected proportional fallback, got %q", result.Chunks[0].Source)
	}
}

func TestServiceUnmatchableTimelineFallsBackPerUnit(t *testing.T) {
	// Same vocabulary as the script, so the similarity gate passes, but the
	// words come back in an order no matching tier can align.
	synth := &scrambledSynthesizer{}
	svc := NewService(testConfig(), nil, synth, nil)
	out := filepath.Join(t.TempDir(), "out.srt")

	result, err := svc.Generate(context.Background(), GenerateRequest{
		ScriptText: "Alpha beta gamma. Delta epsilon zeta.",
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result.Chunks))
	}
	if result.Chunks[0].Source != SourceProportional {
		t.Errorf("expected proportional fallback, got %q", result.Chunks[0].Source)
	}
	// The fallback keeps one fragment per sentence unit.
	if result.Chunks[0].Fragments != 2 {
		t.Errorf("expected 2 fallback fragments, got %d", result.Chunks[0].Fragments)
	}
}

type scrambledSynthesizer struct{}

func (scrambledSynthesizer) Synthesize(context.Context, string) (tts.Result, error) {
	return tts.Result{
		Timeline: timeline.Timeline{
			{Text: "gamma beta alpha epsilon delta zeta", Start: 0, End: timeline.FromSeconds(4)},
		},
		Duration: 4 * time.Second,
	}, nil
}

// divergentSynthesizer returns a phrase-level timeline whose text shares no
// vocabulary with the script, tripping the similarity gate.
type divergentSynthesizer struct{}

func (divergentSynthesizer) Synthesize(context.Context, string) (tts.Result, error) {
	return tts.Result{
		Timeline: timeline.Timeline{
			{Text: "unrelated gibberish transcription output here", Start: 0, End: timeline.FromSeconds(3)},
		},
		Duration: 3 * time.Second,
	}, nil
}
