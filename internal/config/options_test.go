package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAndSetCoerceByFieldType(t *testing.T) {
	cfg := Default()

	require.NoError(t, Set(&cfg, "recording.sample_rate", "48000"))
	require.Equal(t, 48000, cfg.Recording.SampleRate)

	require.NoError(t, Set(&cfg, "vad.enabled", "no"))
	require.False(t, cfg.VAD.Enabled)

	require.NoError(t, Set(&cfg, "notifications.title", "Dictation"))
	value, err := Get(&cfg, "notifications.title")
	require.NoError(t, err)
	require.Equal(t, "Dictation", value)
}

func TestSetRejectsBadCoercions(t *testing.T) {
	cfg := Default()

	err := Set(&cfg, "recording.channels", "stereo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot coerce")

	err = Set(&cfg, "ui.auto_copy", "maybe")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot coerce")
}

func TestSetUnknownKeyFails(t *testing.T) {
	cfg := Default()
	err := Set(&cfg, "recording", "x")
	require.ErrorIs(t, err, ErrUnknownKey)
	require.Contains(t, err.Error(), "unknown config key")

	_, err = Get(&cfg, "vad.missing")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestKeysAreSortedAndComplete(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, len(options))
	require.IsIncreasing(t, keys)
	require.Contains(t, keys, "chutes.api_key")
	require.Contains(t, keys, "vad.silence_ms_to_stop")
}

func TestApplyEnvIgnoresUnknownAndWarnsOnBadValues(t *testing.T) {
	cfg := Default()

	warnings := ApplyEnv(&cfg, []string{
		"PARLO_RECORDING_MAX_SECONDS=90",
		"PARLO_CONFIG_DIR=/somewhere",     // not an option key
		"PARLO_VAD_AGGRESSIVENESS=high",   // bad coercion
		"UNRELATED=1",
	})

	require.Equal(t, 90, cfg.Recording.MaxSeconds)
	require.Equal(t, 2, cfg.VAD.Aggressiveness)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "PARLO_VAD_AGGRESSIVENESS")
}

func TestEnvKeyToOptionHandlesMultiWordOptions(t *testing.T) {
	key, ok := envKeyToOption("PARLO_VAD_SILENCE_MS_TO_STOP")
	require.True(t, ok)
	require.Equal(t, "vad.silence_ms_to_stop", key)

	_, ok = envKeyToOption("PARLO_CHUTES")
	require.False(t, ok)
}
