// Package cli parses parlo command-line arguments without external deps.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandOnce    Command = "once"
	CommandConfig  Command = "config"
	CommandDoctor  Command = "doctor"
	CommandTestAPI Command = "test-api"
	CommandStatus  Command = "status"
	CommandDevices Command = "devices"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandOnce:    {},
	CommandConfig:  {},
	CommandDoctor:  {},
	CommandTestAPI: {},
	CommandStatus:  {},
	CommandDevices: {},
	CommandVersion: {},
	CommandHelp:    {},
}

// ConfigAction is the sub-action of the config command.
type ConfigAction string

const (
	ConfigShow ConfigAction = "show"
	ConfigGet  ConfigAction = "get"
	ConfigPath ConfigAction = "path"
	ConfigEdit ConfigAction = "edit"
	ConfigSet  ConfigAction = "set"
)

var validConfigActions = map[ConfigAction]struct{}{
	ConfigShow: {},
	ConfigGet:  {},
	ConfigPath: {},
	ConfigEdit: {},
	ConfigSet:  {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	ShowHelp   bool

	// once flags
	Language   string
	TempDir    string
	OutputPath string
	AutoCopy   bool
	DisableVAD bool

	// config sub-action
	ConfigAction ConfigAction
	ConfigKey    string
	ConfigValue  string
	Editor       string
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
			return parsed, nil
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
			return parsed, nil
		case "--config":
			value, next, err := flagValue(args, i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.ConfigPath = value
			i = next
		case "--language":
			value, next, err := flagValue(args, i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Language = value
			i = next
		case "--temp-dir":
			value, next, err := flagValue(args, i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.TempDir = value
			i = next
		case "--output":
			value, next, err := flagValue(args, i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.OutputPath = value
			i = next
		case "--editor":
			value, next, err := flagValue(args, i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Editor = value
			i = next
		case "--auto":
			parsed.AutoCopy = true
		case "--no-vad":
			parsed.DisableVAD = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}
			positionals = append(positionals, arg)
		}
	}

	if len(positionals) == 0 {
		return parsed, nil
	}

	cmd := Command(positionals[0])
	if _, ok := validCommands[cmd]; !ok {
		return Parsed{}, fmt.Errorf("unknown command: %s", positionals[0])
	}
	parsed.Command = cmd
	parsed.ShowHelp = cmd == CommandHelp
	rest := positionals[1:]

	if cmd != CommandConfig {
		if len(rest) > 0 {
			return Parsed{}, fmt.Errorf("unexpected arguments after command %q", cmd)
		}
		return parsed, nil
	}

	return parseConfigAction(parsed, rest)
}

// parseConfigAction validates `config <show|get KEY|path|edit|set KEY VALUE>`.
func parseConfigAction(parsed Parsed, rest []string) (Parsed, error) {
	if len(rest) == 0 {
		return Parsed{}, errors.New("config requires an action: show, get, path, edit, or set")
	}

	action := ConfigAction(rest[0])
	if _, ok := validConfigActions[action]; !ok {
		return Parsed{}, fmt.Errorf("unknown config action: %s", rest[0])
	}
	parsed.ConfigAction = action

	switch action {
	case ConfigSet:
		if len(rest) != 3 {
			return Parsed{}, errors.New("config set requires KEY and VALUE")
		}
		parsed.ConfigKey = rest[1]
		parsed.ConfigValue = rest[2]
	case ConfigGet:
		if len(rest) != 2 {
			return Parsed{}, errors.New("config get requires KEY")
		}
		parsed.ConfigKey = rest[1]
	default:
		if len(rest) > 1 {
			return Parsed{}, fmt.Errorf("unexpected arguments after config %s", action)
		}
	}

	return parsed, nil
}

// flagValue consumes the value following a flag.
func flagValue(args []string, i int, flag string) (string, int, error) {
	if i+1 >= len(args) {
		return "", i, fmt.Errorf("%s requires a value", flag)
	}
	return args[i+1], i + 1, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command>

Commands:
  once      Record until silence is detected, transcribe, and deliver the text
  config    Manage configuration (show | get KEY | path | edit | set KEY VALUE)
  doctor    Run configuration and environment checks
  test-api  Verify transcription API connectivity
  status    Print config location and readiness
  devices   List available input devices
  version   Print version information
  help      Show this help

Flags for once:
  --language LANG   Language hint for transcription
  --temp-dir DIR    Temporary directory override
  --output PATH     Keep the recorded WAV at PATH
  --auto            Copy the transcript to the clipboard
  --no-vad          Disable voice activity detection

Flags:
  --config PATH     Config file path (default: ~/.config/parlo/config.toml)
  --editor CMD      Editor for config edit
  -h, --help        Show help
  --version         Show version
`, binaryName)
}
