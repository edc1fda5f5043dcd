package audio

import (
	"errors"
	"fmt"
)

// ErrNoAudioCaptured indicates the stream closed with zero buffered samples.
var ErrNoAudioCaptured = errors.New("no audio captured")

// DeviceError wraps capture driver failures. Underlying errors are preserved,
// not interpreted; they are fatal to the current invocation and never retried
// here.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
