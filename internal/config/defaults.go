package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Chutes: ChutesConfig{
			APIKey:         "",
			Endpoint:       "https://chutes-whisper-large-v3.chutes.ai/transcribe",
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		Recording: RecordingConfig{
			SampleRate: 16000,
			Channels:   1,
			MaxSeconds: 180,
			Format:     "wav",
			TempDir:    "/tmp/parlo",
			Device:     "",
		},
		VAD: VADConfig{
			Enabled:         true,
			SilenceMsToStop: 1200,
			Aggressiveness:  2,
		},
		Clipboard:     ClipboardConfig{Enabled: true},
		Notifications: NotificationsConfig{Enabled: true, Title: "Parlo"},
		UI: UIConfig{
			ShowSegments: false,
			ShowTiming:   false,
			AutoCopy:     true,
		},
	}
}
