package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV serializes samples as a canonical single-track 16-bit PCM WAV
// file. Samples are clipped to [-1.0, 1.0] before scaling to avoid
// wraparound.
func writeWAV(path string, samples []float32, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav %q: %w", path, err)
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(pcm16Sample(v))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write wav %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close wav %q: %w", path, err)
	}
	return nil
}
