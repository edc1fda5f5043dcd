// Package output applies transcript delivery side effects (clipboard).
package output

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"

	"github.com/parlo-cli/parlo/internal/config"
)

const commandTimeout = 2 * time.Second

// Committer writes transcripts to the clipboard, either via a configured
// command or the built-in clipboard backend.
type Committer struct {
	cfg    config.ClipboardConfig
	logger *slog.Logger

	// writeAll is the built-in backend, swappable in tests.
	writeAll func(string) error
}

// NewCommitter constructs a clipboard committer from runtime config.
func NewCommitter(cfg config.ClipboardConfig, logger *slog.Logger) *Committer {
	return &Committer{cfg: cfg, logger: logger, writeAll: clipboard.WriteAll}
}

// Commit writes transcript text to the clipboard. Disabled config and empty
// transcripts are no-ops.
func (c *Committer) Commit(ctx context.Context, transcript string) error {
	if !c.cfg.Enabled || transcript == "" {
		return nil
	}

	argv, err := config.ParseCommand(c.cfg.Command)
	if err != nil {
		return fmt.Errorf("clipboard command: %w", err)
	}

	if len(argv) == 0 {
		if err := c.writeAll(transcript); err != nil {
			return fmt.Errorf("set clipboard: %w", err)
		}
		return nil
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if err := runCommandWithInput(cmdCtx, argv, transcript); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}
	return nil
}

// runCommandWithInput executes argv and writes input to stdin.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	return nil
}
