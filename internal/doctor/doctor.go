// Package doctor runs runtime readiness diagnostics for config, tools,
// audio, and the transcription API.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/parlo-cli/parlo/internal/audio"
	"github.com/parlo-cli/parlo/internal/config"
	"github.com/parlo-cli/parlo/internal/vad"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// pingAudio probes the Pulse server; swappable in tests.
var pingAudio = audio.Ping

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, loaded config.Loaded) Report {
	cfg := loaded.Config
	checks := []Check{
		{
			Name:    "config",
			Pass:    true,
			Message: fmt.Sprintf("loaded %q", loaded.Path),
		},
		checkAPIKey(cfg.Chutes),
		checkCommand(cfg.Clipboard.Command, "clipboard_cmd"),
		checkCommand(cfg.Notifications.Command, "notify_cmd"),
		checkTempDir(cfg.Recording.TempDir),
		checkAudioServer(ctx),
		checkVAD(cfg.VAD),
	}
	return Report{Checks: checks}
}

// checkAPIKey validates transcription credentials are configured.
func checkAPIKey(cfg config.ChutesConfig) Check {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Check{Name: "chutes.api_key", Pass: false, Message: "API key is not set"}
	}
	return Check{Name: "chutes.api_key", Pass: true, Message: "API key is set"}
}

// checkCommand validates a configured command string resolves to a runnable
// binary. Empty commands select the built-in backend and always pass.
func checkCommand(command, name string) Check {
	argv, err := config.ParseCommand(command)
	if err != nil {
		return Check{Name: name, Pass: false, Message: err.Error()}
	}
	if len(argv) == 0 {
		return Check{Name: name, Pass: true, Message: "using built-in backend"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkTempDir verifies the recording temp dir is creatable and writable.
func checkTempDir(dir string) Check {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Check{Name: "recording.temp_dir", Pass: false, Message: err.Error()}
	}
	probe := filepath.Join(dir, ".parlo-doctor")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return Check{Name: "recording.temp_dir", Pass: false, Message: fmt.Sprintf("not writable: %v", err)}
	}
	_ = os.Remove(probe)
	return Check{Name: "recording.temp_dir", Pass: true, Message: fmt.Sprintf("writable at %s", dir)}
}

// checkAudioServer probes the Pulse server connection.
func checkAudioServer(ctx context.Context) Check {
	if err := pingAudio(ctx); err != nil {
		return Check{Name: "audio.server", Pass: false, Message: err.Error()}
	}
	return Check{Name: "audio.server", Pass: true, Message: "pulse server reachable"}
}

// checkVAD verifies the classifier capability matches the configuration.
func checkVAD(cfg config.VADConfig) Check {
	if !cfg.Enabled {
		return Check{Name: "vad", Pass: true, Message: "disabled"}
	}
	if !vad.Supported() {
		return Check{Name: "vad", Pass: false, Message: "enabled but detector is unavailable in this build"}
	}
	return Check{Name: "vad", Pass: true, Message: fmt.Sprintf("enabled (aggressiveness %d)", cfg.Aggressiveness)}
}
