package config

import "fmt"

// Validate enforces hard constraints and collects non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	if cfg.Recording.SampleRate <= 0 {
		return nil, fmt.Errorf("recording.sample_rate must be positive, got %d", cfg.Recording.SampleRate)
	}
	if cfg.Recording.Channels <= 0 {
		return nil, fmt.Errorf("recording.channels must be positive, got %d", cfg.Recording.Channels)
	}
	if cfg.Recording.MaxSeconds <= 0 {
		return nil, fmt.Errorf("recording.max_seconds must be positive, got %d", cfg.Recording.MaxSeconds)
	}
	if cfg.Recording.Format != "wav" {
		return nil, fmt.Errorf("recording.format %q is not supported (only \"wav\")", cfg.Recording.Format)
	}
	if cfg.VAD.SilenceMsToStop <= 0 {
		return nil, fmt.Errorf("vad.silence_ms_to_stop must be positive, got %d", cfg.VAD.SilenceMsToStop)
	}
	if cfg.VAD.Aggressiveness < 0 || cfg.VAD.Aggressiveness > 3 {
		return nil, fmt.Errorf("vad.aggressiveness must be in [0,3], got %d", cfg.VAD.Aggressiveness)
	}
	if cfg.Chutes.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("chutes.timeout_seconds must be positive, got %d", cfg.Chutes.TimeoutSeconds)
	}
	if cfg.Chutes.MaxRetries < 0 {
		return nil, fmt.Errorf("chutes.max_retries must not be negative, got %d", cfg.Chutes.MaxRetries)
	}

	var warnings []Warning
	if cfg.Chutes.APIKey == "" {
		warnings = append(warnings, Warning{
			Message: "chutes.api_key is not set; transcription requests will be rejected",
		})
	}
	return warnings, nil
}
