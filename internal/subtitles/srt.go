package subtitles

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"subforge/internal/timeline"
)

// Entry is one rendered subtitle cue. Times are in seconds.
type Entry struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Render serializes a timeline into subtitle entries with dense 1-based
// indices. A timeline with zero fragments is ErrEmptyTimeline so callers
// can distinguish "no speech" from a rendering bug.
func Render(tl timeline.Timeline) ([]Entry, error) {
	if len(tl) == 0 {
		return nil, ErrEmptyTimeline
	}
	entries := make([]Entry, 0, len(tl))
	for i, frag := range tl {
		entries = append(entries, Entry{
			Index: i + 1,
			Start: frag.Start.Seconds(),
			End:   frag.End.Seconds(),
			Text:  strings.TrimSpace(frag.Text),
		})
	}
	return entries, nil
}

// Compose formats entries as SRT file content: blank-line separated records
// of index, timing, and text, millisecond timestamps with comma separators.
func Compose(entries []Entry) string {
	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatTimestamp(entry.Start), FormatTimestamp(entry.End)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteSRT renders a timeline and writes the SRT file. Nothing is written
// when the timeline is empty.
func WriteSRT(path string, tl timeline.Timeline) (int, error) {
	entries, err := Render(tl)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, []byte(Compose(entries)), 0o644); err != nil {
		return 0, fmt.Errorf("write srt: %w", err)
	}
	return len(entries), nil
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	secs := millis / 1000
	millis -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp parses an SRT timestamp into seconds. Periods are accepted
// in place of the standard comma before the milliseconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ParseSRT reads an SRT file back into entries. Malformed blocks are
// skipped rather than failing the whole file.
func ParseSRT(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	var entries []Entry
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}
		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(parts[1])
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}

	return entries, nil
}

// Validate checks a rendered SRT file for format issues. Returns a list of
// issues found; empty slice means validation passed. audioSeconds of zero
// skips the duration alignment check.
func Validate(path string, audioSeconds float64) []string {
	var issues []string

	entries, err := ParseSRT(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("read_error: %v", err))
		return issues
	}
	if len(entries) == 0 {
		issues = append(issues, "empty_subtitle_file")
		return issues
	}

	for i, entry := range entries {
		if entry.Index != i+1 {
			issues = append(issues, fmt.Sprintf("index_gap: entry %d has index %d", i+1, entry.Index))
			break
		}
	}

	var last float64
	for _, entry := range entries {
		if entry.Start < last {
			issues = append(issues, fmt.Sprintf("timestamp_regression: entry %d", entry.Index))
			break
		}
		last = entry.End
	}

	if audioSeconds > 0 {
		final := entries[len(entries)-1].End
		if delta := math.Abs(audioSeconds - final); delta > 5.0 {
			issues = append(issues, fmt.Sprintf("duration_mismatch: delta=%.1fs", delta))
		}
	}

	return issues
}
