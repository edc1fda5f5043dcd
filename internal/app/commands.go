package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/parlo-cli/parlo/internal/chutes"
	"github.com/parlo-cli/parlo/internal/cli"
	"github.com/parlo-cli/parlo/internal/config"
	"github.com/parlo-cli/parlo/internal/console"
)

func (r Runner) commandConfig(parsed cli.Parsed, loaded config.Loaded) int {
	switch parsed.ConfigAction {
	case cli.ConfigShow:
		rendered, err := config.Render(loaded.Config)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprint(r.Stdout, rendered)
		return 0

	case cli.ConfigGet:
		return r.configGet(parsed, loaded)

	case cli.ConfigPath:
		if err := config.Ensure(loaded.Path); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(r.Stdout, loaded.Path)
		return 0

	case cli.ConfigEdit:
		return r.configEdit(parsed, loaded)

	case cli.ConfigSet:
		return r.configSet(parsed, loaded)

	default:
		fmt.Fprintf(r.Stderr, "error: unsupported config action %q\n", parsed.ConfigAction)
		return 2
	}
}

func (r Runner) configGet(parsed cli.Parsed, loaded config.Loaded) int {
	cfg := loaded.Config
	value, err := config.Get(&cfg, parsed.ConfigKey)
	if err != nil {
		r.reportKeyError(err)
		return 1
	}
	fmt.Fprintf(r.Stdout, "%v\n", value)
	return 0
}

func (r Runner) configSet(parsed cli.Parsed, loaded config.Loaded) int {
	cfg := loaded.Config
	if err := config.Set(&cfg, parsed.ConfigKey, parsed.ConfigValue); err != nil {
		r.reportKeyError(err)
		return 1
	}
	if _, err := config.Validate(cfg); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if err := config.Save(cfg, loaded.Path); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(r.Stdout, "updated %s\n", parsed.ConfigKey)
	return 0
}

// reportKeyError prints the failure and, for unknown keys, the settable keys.
func (r Runner) reportKeyError(err error) {
	fmt.Fprintf(r.Stderr, "error: %v\n", err)
	if errors.Is(err, config.ErrUnknownKey) {
		fmt.Fprintf(r.Stderr, "valid keys:\n  %s\n", strings.Join(config.Keys(), "\n  "))
	}
}

func (r Runner) configEdit(parsed cli.Parsed, loaded config.Loaded) int {
	editor := parsed.Editor
	if editor == "" {
		editor = defaultEditor()
	}
	if editor == "" {
		fmt.Fprintln(r.Stderr, "error: no editor found. Set VISUAL or EDITOR, or pass --editor")
		return 1
	}

	if err := config.Ensure(loaded.Path); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	argv, err := config.ParseCommand(editor)
	if err != nil || len(argv) == 0 {
		fmt.Fprintf(r.Stderr, "error: invalid editor command %q\n", editor)
		return 1
	}
	argv = append(argv, loaded.Path)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(r.Stderr, "error: editor exited: %v\n", err)
		return 1
	}
	return 0
}

// defaultEditor resolves the interactive editor from the environment, then
// from common fallbacks on PATH.
func defaultEditor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			return value
		}
	}
	for _, candidate := range []string{"nano", "vi"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func (r Runner) commandTestAPI(ctx context.Context, cfg config.Config) int {
	term := console.New(r.Stdout)
	term.Status(fmt.Sprintf("Testing connectivity to %s", cfg.Chutes.Endpoint))

	client := chutes.New(cfg.Chutes)
	if err := client.TestConnection(ctx); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	term.Status("API is reachable and accepted the request")
	return 0
}
