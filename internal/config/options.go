package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownKey reports a dotted key with no bound Config field.
var ErrUnknownKey = errors.New("unknown config key")

// option binds a dotted "section.option" key to typed accessors on Config.
type option struct {
	get func(*Config) any
	set func(*Config, string) error
}

var options = map[string]option{
	"chutes.api_key":         stringOption(func(c *Config) *string { return &c.Chutes.APIKey }),
	"chutes.endpoint":        stringOption(func(c *Config) *string { return &c.Chutes.Endpoint }),
	"chutes.timeout_seconds": intOption(func(c *Config) *int { return &c.Chutes.TimeoutSeconds }),
	"chutes.max_retries":     intOption(func(c *Config) *int { return &c.Chutes.MaxRetries }),

	"recording.sample_rate": intOption(func(c *Config) *int { return &c.Recording.SampleRate }),
	"recording.channels":    intOption(func(c *Config) *int { return &c.Recording.Channels }),
	"recording.max_seconds": intOption(func(c *Config) *int { return &c.Recording.MaxSeconds }),
	"recording.format":      stringOption(func(c *Config) *string { return &c.Recording.Format }),
	"recording.temp_dir":    stringOption(func(c *Config) *string { return &c.Recording.TempDir }),
	"recording.device":      stringOption(func(c *Config) *string { return &c.Recording.Device }),

	"vad.enabled":            boolOption(func(c *Config) *bool { return &c.VAD.Enabled }),
	"vad.silence_ms_to_stop": intOption(func(c *Config) *int { return &c.VAD.SilenceMsToStop }),
	"vad.aggressiveness":     intOption(func(c *Config) *int { return &c.VAD.Aggressiveness }),

	"clipboard.enabled": boolOption(func(c *Config) *bool { return &c.Clipboard.Enabled }),
	"clipboard.command": stringOption(func(c *Config) *string { return &c.Clipboard.Command }),

	"notifications.enabled": boolOption(func(c *Config) *bool { return &c.Notifications.Enabled }),
	"notifications.command": stringOption(func(c *Config) *string { return &c.Notifications.Command }),
	"notifications.title":   stringOption(func(c *Config) *string { return &c.Notifications.Title }),

	"ui.show_segments": boolOption(func(c *Config) *bool { return &c.UI.ShowSegments }),
	"ui.show_timing":   boolOption(func(c *Config) *bool { return &c.UI.ShowTiming }),
	"ui.auto_copy":     boolOption(func(c *Config) *bool { return &c.UI.AutoCopy }),
}

// Get reads one configuration value by dotted key.
func Get(cfg *Config, key string) (any, error) {
	opt, ok := options[normalizeKey(key)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return opt.get(cfg), nil
}

// Set coerces value into the field addressed by key.
func Set(cfg *Config, key, value string) error {
	opt, ok := options[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	if err := opt.set(cfg, value); err != nil {
		return fmt.Errorf("set %s: %w", normalizeKey(key), err)
	}
	return nil
}

// Keys returns all settable dotted keys in stable order.
func Keys() []string {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func stringOption(field func(*Config) *string) option {
	return option{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func intOption(field func(*Config) *int) option {
	return option{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v string) error {
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("cannot coerce %q to int", v)
			}
			*field(c) = parsed
			return nil
		},
	}
}

func boolOption(field func(*Config) *bool) option {
	return option{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v string) error {
			parsed, err := parseBool(v)
			if err != nil {
				return err
			}
			*field(c) = parsed
			return nil
		},
	}
}

// parseBool accepts the usual truthy/falsy spellings used in env overrides.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("cannot coerce %q to bool", v)
	}
}
