//go:build cgo

package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// Classifier wraps the WebRTC detector with a fixed aggressiveness.
type Classifier struct {
	inner *webrtcvad.VAD
}

// Supported reports whether this build carries the detector.
func Supported() bool { return true }

// New constructs a classifier with the given aggressiveness bias. Higher
// values classify more frames as silence.
func New(aggressiveness int) (*Classifier, error) {
	if err := checkAggressiveness(aggressiveness); err != nil {
		return nil, err
	}

	inner, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("init webrtc vad: %w", err)
	}
	if err := inner.SetMode(aggressiveness); err != nil {
		return nil, fmt.Errorf("set vad aggressiveness %d: %w", aggressiveness, err)
	}

	return &Classifier{inner: inner}, nil
}

// Classify reports whether a 16-bit little-endian PCM frame contains speech.
// The frame must be exactly 10, 20, or 30ms of mono audio at sampleRate.
func (c *Classifier) Classify(pcm []byte, sampleRate int) (bool, error) {
	if !ValidFrame(sampleRate, len(pcm)) {
		return false, fmt.Errorf("frame of %d bytes is not 10/20/30ms at %d Hz", len(pcm), sampleRate)
	}

	speech, err := c.inner.Process(sampleRate, pcm)
	if err != nil {
		return false, fmt.Errorf("vad process frame: %w", err)
	}
	return speech, nil
}
