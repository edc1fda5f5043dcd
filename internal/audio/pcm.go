package audio

import (
	"encoding/binary"
	"math"
)

// clipSample bounds minor float overshoot from audio hardware. Out-of-range
// samples are expected and clipped, never rejected.
func clipSample(v float32) float32 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// pcm16Sample converts one float sample to a truncated 16-bit signed value.
func pcm16Sample(v float32) int16 {
	return int16(clipSample(v) * 32767)
}

// ToPCM16 converts float samples in [-1.0, 1.0] to 16-bit little-endian PCM
// bytes in input order. Always succeeds.
func ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(pcm16Sample(v)))
	}
	return out
}

// monoChannel extracts channel 0 from an interleaved frame. Classification
// only ever sees the first channel; all channels stay in the buffer.
func monoChannel(frame []float32, channels int) []float32 {
	if channels <= 1 {
		return frame
	}
	out := make([]float32, 0, len(frame)/channels)
	for i := 0; i < len(frame); i += channels {
		out = append(out, frame[i])
	}
	return out
}

// decodeFloat32LE reinterprets little-endian float32 bytes as samples.
// len(buf) must be a multiple of 4.
func decodeFloat32LE(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
