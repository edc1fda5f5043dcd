// Package vad classifies fixed-size 16-bit PCM frames as speech or silence.
//
// The classifier is backed by the WebRTC voice activity detector, which only
// accepts frames of exactly 10, 20, or 30 milliseconds. Builds without cgo
// have no detector; New reports ErrUnsupported so callers can fail fast at
// startup instead of inside the capture callback.
package vad

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates the detector capability is absent in this build.
var ErrUnsupported = errors.New("voice activity detection is not available in this build (requires cgo)")

// validFrameDurationsMS are the only frame lengths the detector accepts.
var validFrameDurationsMS = [...]int{10, 20, 30}

// FrameBytes returns the 16-bit mono PCM byte length of a frame of the given
// duration at sampleRate.
func FrameBytes(sampleRate, durationMS int) int {
	return sampleRate * durationMS / 1000 * 2
}

// ValidFrame reports whether byteLen corresponds to a 10/20/30ms 16-bit mono
// frame at sampleRate.
func ValidFrame(sampleRate, byteLen int) bool {
	for _, ms := range validFrameDurationsMS {
		if byteLen == FrameBytes(sampleRate, ms) {
			return true
		}
	}
	return false
}

// checkAggressiveness validates the detector bias shared by all builds.
func checkAggressiveness(aggressiveness int) error {
	if aggressiveness < 0 || aggressiveness > 3 {
		return fmt.Errorf("vad aggressiveness must be in [0,3], got %d", aggressiveness)
	}
	return nil
}
