package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parlo-cli/parlo/internal/config"
	"github.com/parlo-cli/parlo/internal/vad"
)

// supervisorPollInterval bounds stop-signal observation latency. Capture is
// not hard-real-time; sub-200ms slack on stop is acceptable.
const supervisorPollInterval = 100 * time.Millisecond

// captureStream is the open record stream lifecycle Capture manages.
type captureStream interface {
	close()
}

// openStream opens the record stream; swappable in tests that drive the
// session directly.
var openStream = func(sess *session, device string) (captureStream, error) {
	return openPulseStream(sess, device)
}

// Recorder captures exactly one recording per Capture invocation.
type Recorder struct {
	recording  config.RecordingConfig
	vadConfig  config.VADConfig
	classifier *vad.Classifier
	logger     *slog.Logger
}

// NewRecorder validates classifier availability up front so a missing VAD
// capability fails here rather than inside the capture callback.
func NewRecorder(recording config.RecordingConfig, vadConfig config.VADConfig, logger *slog.Logger) (*Recorder, error) {
	r := &Recorder{recording: recording, vadConfig: vadConfig, logger: logger}
	if vadConfig.Enabled {
		classifier, err := vad.New(vadConfig.Aggressiveness)
		if err != nil {
			return nil, fmt.Errorf("voice activity detection: %w", err)
		}
		r.classifier = classifier
	}
	return r, nil
}

// Capture records from the configured source until trailing silence (VAD),
// the max-duration ceiling, or ctx cancellation, then serializes the buffered
// audio as a 16-bit PCM WAV file and returns its path.
//
// A cancelled capture with a non-empty buffer still produces an artifact;
// zero buffered samples yield ErrNoAudioCaptured.
func (r *Recorder) Capture(ctx context.Context, outputPath string) (string, error) {
	sess := newSession(
		r.recording.SampleRate,
		r.recording.Channels,
		r.vadConfig.SilenceMsToStop,
		r.classifyFunc(),
		r.logger,
	)

	stream, err := openStream(sess, r.recording.Device)
	if err != nil {
		return "", err
	}

	started := time.Now()
	maxDuration := time.Duration(r.recording.MaxSeconds) * time.Second
	reason := superviseCapture(ctx, sess, maxDuration, supervisorPollInterval)
	stream.close()

	samples := sess.samples()
	if r.logger != nil {
		r.logger.Info("capture stopped",
			"reason", reason.String(),
			"elapsed_ms", time.Since(started).Milliseconds(),
			"samples", len(samples),
		)
	}
	if len(samples) == 0 {
		return "", ErrNoAudioCaptured
	}

	path := outputPath
	if strings.TrimSpace(path) == "" {
		path, err = r.tempOutputPath()
		if err != nil {
			return "", err
		}
	}
	if err := writeWAV(path, samples, r.recording.SampleRate, r.recording.Channels); err != nil {
		return "", err
	}
	return path, nil
}

// classifyFunc binds the classifier to the configured sample rate, or nil
// when VAD is disabled.
func (r *Recorder) classifyFunc() classifyFunc {
	if r.classifier == nil {
		return nil
	}
	rate := r.recording.SampleRate
	return func(pcm []byte) (bool, error) {
		return r.classifier.Classify(pcm, rate)
	}
}

// tempOutputPath creates the temp dir and returns a timestamped WAV path.
func (r *Recorder) tempOutputPath() (string, error) {
	dir := strings.TrimSpace(r.recording.TempDir)
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create temp dir %q: %w", dir, err)
	}
	name := fmt.Sprintf("parlo-%s.wav", time.Now().UTC().Format("20060102T150405"))
	return filepath.Join(dir, name), nil
}

// superviseCapture waits for a frame-context stop, the wall-clock ceiling, or
// caller cancellation. The audio callback runs on the driver's own schedule,
// so this polling loop is the caller's independent wait-until-done point and
// terminates capture correctly even with VAD disabled.
func superviseCapture(ctx context.Context, sess *session, maxDuration, poll time.Duration) stopReason {
	deadline := time.Now().Add(maxDuration)
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		if reason := sess.stopReason(); reason != stopNone {
			return reason
		}
		select {
		case <-ctx.Done():
			sess.signalStop(stopCancel)
			return sess.stopReason()
		case <-ticker.C:
			if !time.Now().Before(deadline) {
				sess.signalStop(stopTimeout)
				return sess.stopReason()
			}
		}
	}
}
