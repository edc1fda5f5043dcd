package config

import (
	"fmt"
	"strings"
)

const envPrefix = "PARLO_"

// ApplyEnv overlays PARLO_SECTION_OPTION environment variables onto cfg.
//
// Variables that do not map to a known option are ignored; values that fail
// coercion produce warnings rather than errors.
func ApplyEnv(cfg *Config, environ []string) []Warning {
	var warnings []Warning

	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}

		key, ok := envKeyToOption(name)
		if !ok {
			continue
		}

		if err := Set(cfg, key, value); err != nil {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("ignoring %s: %v", name, err),
			})
		}
	}

	return warnings
}

// envKeyToOption maps PARLO_VAD_SILENCE_MS_TO_STOP to "vad.silence_ms_to_stop".
func envKeyToOption(name string) (string, bool) {
	rest := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	section, opt, ok := strings.Cut(rest, "_")
	if !ok || section == "" || opt == "" {
		return "", false
	}
	key := section + "." + opt
	if _, known := options[key]; !known {
		return "", false
	}
	return key, true
}
