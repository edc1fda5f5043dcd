package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/parlo-cli/parlo/internal/audio"
	"github.com/parlo-cli/parlo/internal/chutes"
	"github.com/parlo-cli/parlo/internal/cli"
	"github.com/parlo-cli/parlo/internal/config"
	"github.com/parlo-cli/parlo/internal/console"
	"github.com/parlo-cli/parlo/internal/notify"
	"github.com/parlo-cli/parlo/internal/output"
)

// commandOnce records one utterance, transcribes it, and delivers the result.
func (r Runner) commandOnce(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	term := console.New(r.Stdout)
	errTerm := console.New(r.Stderr)

	if parsed.DisableVAD {
		cfg.VAD.Enabled = false
	}
	if parsed.TempDir != "" {
		cfg.Recording.TempDir = parsed.TempDir
	}

	recorder, err := audio.NewRecorder(cfg.Recording, cfg.VAD, logger)
	if err != nil {
		logger.Error("recorder setup failed", "error", err.Error())
		errTerm.Errorf("%v", err)
		return 1
	}

	notifier := notify.New(cfg.Notifications, logger)

	if cfg.VAD.Enabled {
		term.Status("Recording... (stops after you go quiet)")
	} else {
		term.Status("Recording... (press Ctrl+C to stop)")
	}
	notifier.Send(ctx, "Recording started")

	wavPath, err := recorder.Capture(ctx, parsed.OutputPath)
	if err != nil {
		logger.Error("capture failed", "error", err.Error())
		if errors.Is(err, audio.ErrNoAudioCaptured) {
			errTerm.Errorf("no audio captured")
		} else {
			errTerm.Errorf("recording failed: %v", err)
		}
		return 1
	}
	if parsed.OutputPath == "" {
		defer func() { _ = os.Remove(wavPath) }()
	} else {
		term.Status(fmt.Sprintf("Saved recording to %s", wavPath))
	}

	term.Status("Transcribing audio...")
	notifier.Send(ctx, "Transcribing audio")

	client := chutes.New(cfg.Chutes)
	started := time.Now()
	result, err := client.Transcribe(ctx, wavPath, parsed.Language)
	if err != nil {
		logger.Error("transcription failed", "error", err.Error())
		errTerm.Errorf("transcription failed: %v", err)
		notifier.Send(ctx, "Transcription failed")
		return 1
	}
	elapsed := time.Since(started)

	term.Transcript(result, cfg.UI, elapsed)

	if parsed.AutoCopy || cfg.UI.AutoCopy {
		committer := output.NewCommitter(cfg.Clipboard, logger)
		if err := committer.Commit(ctx, result.Text); err != nil {
			logger.Warn("clipboard commit failed", "error", err.Error())
			errTerm.Warnf("clipboard: %v", err)
		}
	}

	notifier.Send(ctx, "Transcription complete")
	logger.Info("once complete",
		"chars", len(result.Text),
		"segments", len(result.Segments),
		"transcribe_ms", elapsed.Milliseconds(),
	)
	return 0
}
