//go:build !cgo

package vad

// Classifier is a placeholder in builds without the WebRTC detector.
type Classifier struct{}

// Supported reports whether this build carries the detector.
func Supported() bool { return false }

// New always fails: the detector requires cgo.
func New(aggressiveness int) (*Classifier, error) {
	if err := checkAggressiveness(aggressiveness); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

// Classify never runs in this build.
func (c *Classifier) Classify(pcm []byte, sampleRate int) (bool, error) {
	return false, ErrUnsupported
}
