// Package config resolves, parses, validates, and defaults parlo configuration.
package config

// Config is the full runtime configuration, mirroring the TOML file layout.
type Config struct {
	Chutes        ChutesConfig        `toml:"chutes"`
	Recording     RecordingConfig     `toml:"recording"`
	VAD           VADConfig           `toml:"vad"`
	Clipboard     ClipboardConfig     `toml:"clipboard"`
	Notifications NotificationsConfig `toml:"notifications"`
	UI            UIConfig            `toml:"ui"`
}

// ChutesConfig addresses the Chutes Whisper transcription endpoint.
type ChutesConfig struct {
	APIKey         string `toml:"api_key"`
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
}

// RecordingConfig shapes the capture stream and its output artifact.
type RecordingConfig struct {
	SampleRate int    `toml:"sample_rate"`
	Channels   int    `toml:"channels"`
	MaxSeconds int    `toml:"max_seconds"`
	Format     string `toml:"format"`
	TempDir    string `toml:"temp_dir"`
	Device     string `toml:"device"`
}

// VADConfig tunes voice-activity-gated capture termination.
type VADConfig struct {
	Enabled         bool `toml:"enabled"`
	SilenceMsToStop int  `toml:"silence_ms_to_stop"`
	Aggressiveness  int  `toml:"aggressiveness"`
}

// ClipboardConfig controls transcript clipboard delivery.
// An empty Command selects the built-in clipboard backend.
type ClipboardConfig struct {
	Enabled bool   `toml:"enabled"`
	Command string `toml:"command"`
}

// NotificationsConfig controls desktop notification delivery.
// An empty Command selects the built-in notification backend.
type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Command string `toml:"command"`
	Title   string `toml:"title"`
}

// UIConfig controls terminal rendering and auto-copy behavior.
type UIConfig struct {
	ShowSegments bool `toml:"show_segments"`
	ShowTiming   bool `toml:"show_timing"`
	AutoCopy     bool `toml:"auto_copy"`
}

// Warning is a non-fatal configuration issue surfaced to the user.
type Warning struct {
	Message string
}
