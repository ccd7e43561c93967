package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"subforge/internal/config"
	"subforge/internal/logging"
	"subforge/internal/services"
	"subforge/internal/synthcache"
	"subforge/internal/textutil"
	"subforge/internal/timeline"
	"subforge/internal/tts"
)

// Cache stores per-chunk synthesis results between runs.
type Cache interface {
	Get(ctx context.Context, key string) (synthcache.Entry, bool, error)
	Put(ctx context.Context, key string, entry synthcache.Entry) error
}

// Service runs the full script-to-subtitle pipeline.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	synth  tts.Synthesizer
	cache  Cache
}

// NewService builds a pipeline service. cache may be nil to disable
// synthesis caching; a nil logger is replaced with a no-op logger.
func NewService(cfg *config.Config, logger *slog.Logger, synth tts.Synthesizer, cache Cache) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{cfg: cfg, logger: logger, synth: synth, cache: cache}
}

// GenerateRequest describes the inputs for subtitle generation.
type GenerateRequest struct {
	ScriptText string
	OutputPath string
}

// ChunkReport summarizes how one chunk was reconciled.
type ChunkReport struct {
	Index     int
	Chars     int
	Fragments int
	Source    string
	Cached    bool
	Duration  time.Duration
}

// Chunk reconciliation sources reported in ChunkReport.Source.
const (
	SourceGrouped      = "grouped"
	SourceMatched      = "matched"
	SourceProportional = "proportional"
)

// GenerateResult reports the generated subtitle file and summary stats.
type GenerateResult struct {
	RunID         string
	SubtitlePath  string
	EntryCount    int
	TotalDuration time.Duration
	AudioPaths    []string
	Chunks        []ChunkReport
	Issues        []string
}

type synthOutcome struct {
	result tts.Result
	cached bool
}

// Generate runs the pipeline: plan chunks, synthesize them (concurrently up
// to the configured limit), reconcile each chunk's timeline, stitch, and
// render the SRT file. Any synthesis failure aborts the whole run; partial
// stitching across a missing chunk is never attempted.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	text := textutil.FormatScript(req.ScriptText)
	if text == "" {
		return nil, services.Wrap(services.ErrValidation, "subtitles", "generate", "script text is empty", nil)
	}

	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))

	chunks := PlanChunks(text, s.cfg.Subtitles.MaxChunkChars)
	if len(chunks) == 0 {
		return nil, services.Wrap(services.ErrValidation, "subtitles", "generate", "no synthesis chunks planned", nil)
	}
	logger.Info("planned synthesis chunks",
		slog.Int("chunks", len(chunks)),
		slog.Int("script_chars", utf8.RuneCountInString(text)),
	)

	outcomes, err := s.synthesizeAll(ctx, logger, chunks)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		RunID:        runID,
		SubtitlePath: req.OutputPath,
		Chunks:       make([]ChunkReport, 0, len(chunks)),
		AudioPaths:   make([]string, 0, len(chunks)),
	}

	stitchInput := make([]ChunkTimeline, 0, len(chunks))
	for i, chunk := range chunks {
		reconciled, source := s.reconcileChunk(logger, chunk, outcomes[i].result)
		duration := chunkDuration(outcomes[i].result)
		stitchInput = append(stitchInput, ChunkTimeline{Timeline: reconciled, Duration: duration})
		result.AudioPaths = append(result.AudioPaths, outcomes[i].result.AudioPath)
		result.Chunks = append(result.Chunks, ChunkReport{
			Index:     chunk.Index,
			Chars:     utf8.RuneCountInString(chunk.Text),
			Fragments: len(reconciled),
			Source:    source,
			Cached:    outcomes[i].cached,
			Duration:  duration,
		})
	}

	stitched, totalDuration := Stitch(stitchInput)
	result.TotalDuration = totalDuration

	entryCount, err := WriteSRT(req.OutputPath, stitched)
	if err != nil {
		if errors.Is(err, ErrEmptyTimeline) {
			return nil, services.Wrap(services.ErrValidation, "subtitles", "render", "no subtitle entries produced", err)
		}
		return nil, fmt.Errorf("render subtitles: %w", err)
	}
	result.EntryCount = entryCount

	if s.cfg.Subtitles.ValidateOutput {
		result.Issues = Validate(req.OutputPath, totalDuration.Seconds())
		for _, issue := range result.Issues {
			logger.Warn("subtitle validation issue", slog.String("issue", issue))
		}
	}

	logger.Info("subtitle generation completed",
		slog.String("output", req.OutputPath),
		slog.Int("entries", entryCount),
		slog.Duration("audio", totalDuration),
	)
	return result, nil
}

// synthesizeAll produces a synthesis outcome per chunk, index-addressed so
// completion order never changes stitch order. The first failure cancels
// the remaining work.
func (s *Service) synthesizeAll(ctx context.Context, logger *slog.Logger, chunks []Chunk) ([]synthOutcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.cfg.Subtitles.MaxParallelSynthesis
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]synthOutcome, len(chunks))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk Chunk) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			outcome, err := s.synthesizeChunk(ctx, logger, chunk)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			outcomes[chunk.Index] = outcome
		}(chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Service) synthesizeChunk(ctx context.Context, logger *slog.Logger, chunk Chunk) (synthOutcome, error) {
	key := s.cacheKey(chunk.Text)
	if s.cache != nil && key != "" {
		entry, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", slog.Int("chunk", chunk.Index), logging.Error(err))
		} else if ok {
			logger.Debug("cache hit", slog.Int("chunk", chunk.Index))
			return synthOutcome{
				result: tts.Result{Timeline: entry.Timeline, AudioPath: entry.AudioPath, Duration: entry.Duration},
				cached: true,
			}, nil
		}
	}

	result, err := s.synth.Synthesize(ctx, chunk.Text)
	if err != nil {
		return synthOutcome{}, fmt.Errorf("%w: chunk %d: %w", ErrSynthesisFailed, chunk.Index, err)
	}

	if s.cache != nil && key != "" {
		entry := synthcache.Entry{Timeline: result.Timeline, AudioPath: result.AudioPath, Duration: result.Duration}
		if err := s.cache.Put(ctx, key, entry); err != nil {
			logger.Warn("cache write failed", slog.Int("chunk", chunk.Index), logging.Error(err))
		}
	}
	return synthOutcome{result: result}, nil
}

func (s *Service) cacheKey(text string) string {
	fp, ok := s.synth.(tts.Fingerprint)
	if !ok {
		return ""
	}
	return synthcache.Key(text, fp.Fingerprint())
}

// reconcileChunk turns one chunk's raw synthesis output into whole subtitle
// lines, falling back to the proportional split whenever the timestamps
// cannot be trusted.
func (s *Service) reconcileChunk(logger *slog.Logger, chunk Chunk, raw tts.Result) (timeline.Timeline, string) {
	units := textutil.SplitSentences(chunk.Text)
	duration := chunkDuration(raw)
	tl := raw.Timeline.Sanitize()

	if len(tl) == 0 {
		logger.Warn("chunk timeline empty, using proportional split", slog.Int("chunk", chunk.Index))
		return ProportionalTimeline(units, duration), SourceProportional
	}

	if !s.timelineTrusted(logger, chunk, tl) {
		return ProportionalTimeline(units, duration), SourceProportional
	}

	switch timeline.Classify(tl) {
	case timeline.WordLevel:
		return GroupWords(tl), SourceGrouped
	default:
		matched, err := MatchLines(tl, units)
		if err != nil {
			logger.Warn("line matching failed, using proportional split",
				slog.Int("chunk", chunk.Index),
				logging.Error(err),
			)
			return ProportionalTimeline(units, duration), SourceProportional
		}
		return matched, SourceMatched
	}
}

// timelineTrusted gates transcription-derived timestamps on lexical
// similarity between the chunk text and the timeline text. Fingerprints
// that cannot be built (short or non-Latin tokens) leave the gate open;
// the matcher itself is the arbiter then.
func (s *Service) timelineTrusted(logger *slog.Logger, chunk Chunk, tl timeline.Timeline) bool {
	threshold := s.cfg.Subtitles.ConfidenceThreshold
	if threshold <= 0 {
		return true
	}
	scriptFP := textutil.NewFingerprint(chunk.Text)
	synthFP := textutil.NewFingerprint(tl.Text())
	if scriptFP == nil || synthFP == nil {
		return true
	}
	similarity := textutil.CosineSimilarity(scriptFP, synthFP)
	if similarity < threshold {
		logger.Warn("timeline text diverges from script, using proportional split",
			slog.Int("chunk", chunk.Index),
			slog.Float64("similarity", similarity),
		)
		return false
	}
	return true
}

func chunkDuration(result tts.Result) time.Duration {
	if result.Duration > 0 {
		return result.Duration
	}
	return result.Timeline.End().Duration()
}
