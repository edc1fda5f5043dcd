// Package notify sends desktop notifications around recording and
// transcription milestones.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/parlo-cli/parlo/internal/config"
)

const commandTimeout = 2 * time.Second

// Notifier delivers notifications via a configured command or the built-in
// desktop backend.
type Notifier struct {
	cfg    config.NotificationsConfig
	logger *slog.Logger

	// send is the built-in backend, swappable in tests.
	send func(title, message string) error
}

// New constructs a notifier from runtime config.
func New(cfg config.NotificationsConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: logger,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Send delivers one notification. Failures are logged and swallowed so a
// missing notification daemon never fails the command.
func (n *Notifier) Send(ctx context.Context, message string) {
	if !n.cfg.Enabled {
		return
	}
	if err := n.deliver(ctx, message); err != nil && n.logger != nil {
		n.logger.Warn("notification failed", "message", message, "error", err.Error())
	}
}

func (n *Notifier) deliver(ctx context.Context, message string) error {
	argv, err := config.ParseCommand(n.cfg.Command)
	if err != nil {
		return fmt.Errorf("notification command: %w", err)
	}

	if len(argv) == 0 {
		return n.send(n.cfg.Title, message)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	argv = append(argv, n.cfg.Title, message)
	out, err := exec.CommandContext(cmdCtx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return fmt.Errorf("run %s: %w", argv[0], err)
		}
		return fmt.Errorf("run %s: %w (%s)", argv[0], err, trimmed)
	}
	return nil
}
