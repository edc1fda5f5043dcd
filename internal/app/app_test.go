package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parlo-cli/parlo/internal/config"
)

// run executes args against an isolated state dir and returns exit code
// plus captured output.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteHelp(t *testing.T) {
	code, stdout, _ := run(t, "--help")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Usage:")
	require.Contains(t, stdout, "once")
}

func TestExecuteNoArgsShowsHelp(t *testing.T) {
	code, stdout, _ := run(t)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Usage:")
}

func TestExecuteVersion(t *testing.T) {
	code, stdout, _ := run(t, "version")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "parlo ")
}

func TestExecuteUnknownCommand(t *testing.T) {
	code, _, stderr := run(t, "bogus")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unknown command: bogus")
	require.Contains(t, stderr, "Usage:")
}

func TestExecuteUnknownFlag(t *testing.T) {
	code, _, stderr := run(t, "once", "--frequency", "440")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unknown flag: --frequency")
}

func TestConfigShowRendersTOML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, stdout, stderr := run(t, "--config", cfgPath, "config", "show")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "[chutes]")
	require.Contains(t, stdout, "[recording]")
	require.Contains(t, stdout, "sample_rate = 16000")
	require.Contains(t, stderr, "not found; using defaults")
}

func TestConfigPathCreatesDefaultFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	code, stdout, _ := run(t, "--config", cfgPath, "config", "path")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, cfgPath)

	_, err := os.Stat(cfgPath)
	require.NoError(t, err)
}

func TestConfigSetPersistsValue(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, stdout, _ := run(t, "--config", cfgPath, "config", "set", "vad.silence_ms_to_stop", "800")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "updated vad.silence_ms_to_stop")

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, 800, loaded.Config.VAD.SilenceMsToStop)
}

func TestConfigGetPrintsValue(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, stdout, _ := run(t, "--config", cfgPath, "config", "get", "recording.sample_rate")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "16000")
}

func TestConfigGetReadsPersistedValue(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, _, _ := run(t, "--config", cfgPath, "config", "set", "notifications.title", "Dictation")
	require.Equal(t, 0, code)

	code, stdout, _ := run(t, "--config", cfgPath, "config", "get", "notifications.title")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Dictation")
}

func TestConfigGetUnknownKeyListsValidKeys(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, _, stderr := run(t, "--config", cfgPath, "config", "get", "nope.nope")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown config key")
	require.Contains(t, stderr, "valid keys:")
	require.Contains(t, stderr, "vad.aggressiveness")
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, _, stderr := run(t, "--config", cfgPath, "config", "set", "vad.aggressiveness", "9")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "error:")

	_, err := os.Stat(cfgPath)
	require.True(t, os.IsNotExist(err), "invalid set must not write the file")
}

func TestConfigSetUnknownKey(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, _, stderr := run(t, "--config", cfgPath, "config", "set", "nope.nope", "1")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "error:")
}

func TestConfigEditRunsEditorWithPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	marker := filepath.Join(dir, "seen-args")

	editor := filepath.Join(dir, "fake-editor.sh")
	script := "#!/bin/sh\necho \"$@\" > " + marker + "\n"
	require.NoError(t, os.WriteFile(editor, []byte(script), 0o755))

	code, _, stderr := run(t, "--config", cfgPath, "--editor", editor, "config", "edit")
	require.Equal(t, 0, code, stderr)

	seen, err := os.ReadFile(marker)
	require.NoError(t, err)
	require.Contains(t, string(seen), cfgPath)

	// edit ensures the file exists before opening it
	_, err = os.Stat(cfgPath)
	require.NoError(t, err)
}

func TestStatusPrintsConfigSummary(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	code, stdout, _ := run(t, "--config", cfgPath, "status")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "config: "+cfgPath)
	require.Contains(t, stdout, "vad: enabled")
	require.Contains(t, stdout, "endpoint: https://")
	require.Contains(t, stdout, "Ready")
}

func TestTestAPIHitsConfiguredEndpoint(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Chutes.Endpoint = server.URL
	cfg.Chutes.APIKey = "test-key"
	require.NoError(t, config.Save(cfg, cfgPath))

	code, stdout, stderr := run(t, "--config", cfgPath, "test-api")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "reachable")
	require.Equal(t, "Bearer test-key", gotAuth)
}

func TestTestAPIFailureExitsNonZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Chutes.Endpoint = server.URL
	cfg.Chutes.APIKey = "test-key"
	cfg.Chutes.MaxRetries = 0
	require.NoError(t, config.Save(cfg, cfgPath))

	code, _, stderr := run(t, "--config", cfgPath, "test-api")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "error:")
}
