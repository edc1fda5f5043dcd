// Package app wires parsed CLI commands to their implementations.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/parlo-cli/parlo/internal/audio"
	"github.com/parlo-cli/parlo/internal/cli"
	"github.com/parlo-cli/parlo/internal/config"
	"github.com/parlo-cli/parlo/internal/console"
	"github.com/parlo-cli/parlo/internal/doctor"
	"github.com/parlo-cli/parlo/internal/logging"
	"github.com/parlo-cli/parlo/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("parlo"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("parlo"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandOnce:
		return r.commandOnce(ctx, parsed, cfgLoaded.Config, logger)
	case cli.CommandConfig:
		return r.commandConfig(parsed, cfgLoaded)
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandTestAPI:
		return r.commandTestAPI(ctx, cfgLoaded.Config)
	case cli.CommandStatus:
		return r.commandStatus(cfgLoaded)
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}
	return 0
}

func (r Runner) commandStatus(loaded config.Loaded) int {
	fmt.Fprintf(r.Stdout, "config: %s\n", loaded.Path)

	vadState := "disabled"
	if loaded.Config.VAD.Enabled {
		vadState = fmt.Sprintf("enabled (stop after %dms silence)", loaded.Config.VAD.SilenceMsToStop)
	}
	fmt.Fprintf(r.Stdout, "recording: %d Hz, %d channel(s), max %ds\n",
		loaded.Config.Recording.SampleRate,
		loaded.Config.Recording.Channels,
		loaded.Config.Recording.MaxSeconds,
	)
	fmt.Fprintf(r.Stdout, "vad: %s\n", vadState)
	fmt.Fprintf(r.Stdout, "endpoint: %s\n", loaded.Config.Chutes.Endpoint)

	console.New(r.Stdout).Status("Ready")
	return 0
}
