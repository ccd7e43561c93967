package tts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"subforge/internal/logging"
	"subforge/internal/services"
)

// CommandSynthesizer drives an external synthesis command. The chunk text is
// written to the command's stdin; the command must print a JSON payload
// (see ParsePayload) on stdout and leave its audio artifact at the path the
// payload names.
type CommandSynthesizer struct {
	Command string
	Args    []string
	Voice   string
	Timeout time.Duration

	logger *slog.Logger
}

// NewCommandSynthesizer builds a command-backed synthesizer. A nil logger is
// replaced with a no-op logger.
func NewCommandSynthesizer(command string, args []string, voice string, timeout time.Duration, logger *slog.Logger) (*CommandSynthesizer, error) {
	if strings.TrimSpace(command) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tts", "new", "tts.command is not configured", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CommandSynthesizer{
		Command: command,
		Args:    args,
		Voice:   voice,
		Timeout: timeout,
		logger:  logger,
	}, nil
}

// Synthesize runs the configured command for one chunk of text.
func (s *CommandSynthesizer) Synthesize(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, services.Wrap(services.ErrValidation, "tts", "synthesize", "empty text", nil)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	args := append([]string(nil), s.Args...)
	if s.Voice != "" {
		args = append(args, "--voice", s.Voice)
	}

	cmd := exec.CommandContext(ctx, s.Command, args...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "synthesis command failed"
		}
		return Result{}, services.Wrap(services.ErrExternalTool, "tts", "synthesize", detail, err)
	}

	result, err := ParsePayload(stdout.Bytes())
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "invalid payload", err)
	}

	s.logger.Debug("synthesis completed",
		slog.Int("chars", len(text)),
		slog.Int("fragments", len(result.Timeline)),
		slog.Duration("audio", result.Duration),
		slog.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// Fingerprint identifies this command configuration for cache keying.
func (s *CommandSynthesizer) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(s.Command))
	for _, arg := range s.Args {
		h.Write([]byte{0})
		h.Write([]byte(arg))
	}
	h.Write([]byte{0})
	h.Write([]byte(s.Voice))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
