package audio

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// frameDurationMS is the capture frame granularity. The classifier only
// accepts 10/20/30ms frames; 20ms matches its contract at every supported
// sample rate.
const frameDurationMS = 20

// stopReason is the terminal value the frame-delivery context and the
// supervisor agree on. stopNone means the session is still listening.
type stopReason int32

const (
	stopNone stopReason = iota
	stopSilence
	stopTimeout
	stopCancel
)

func (r stopReason) String() string {
	switch r {
	case stopSilence:
		return "silence"
	case stopTimeout:
		return "timeout"
	case stopCancel:
		return "cancel"
	default:
		return "listening"
	}
}

// classifyFunc classifies one 16-bit PCM frame as speech. nil disables VAD.
type classifyFunc func(pcm []byte) (bool, error)

// session owns all mutable state of one recording. Frames are appended only
// from the driver's delivery context; the supervisor polls the atomic stop
// cell and reads the buffer only after a stop is observed.
type session struct {
	sampleRate    int
	channels      int
	frameSamples  int // samples per 20ms frame across all channels
	silenceStopMS int
	classify      classifyFunc
	logger        *slog.Logger

	mu         sync.Mutex
	carry      []byte // partial trailing sample bytes between writes
	pending    []float32
	frames     [][]float32
	silenceMS  int
	speechSeen bool

	stop atomic.Int32
}

func newSession(sampleRate, channels, silenceStopMS int, classify classifyFunc, logger *slog.Logger) *session {
	return &session{
		sampleRate:    sampleRate,
		channels:      channels,
		frameSamples:  sampleRate * frameDurationMS / 1000 * channels,
		silenceStopMS: silenceStopMS,
		classify:      classify,
		logger:        logger,
	}
}

// Write receives raw 32-bit float little-endian bytes from the capture
// driver. It implements io.Writer so it can back a pulse record stream.
// Returning io.EOF after a stop tells the driver to halt delivery.
func (s *session) Write(buf []byte) (int, error) {
	if s.stopReason() != stopNone {
		return 0, io.EOF
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := buf
	if len(s.carry) > 0 {
		data = append(s.carry, buf...)
		s.carry = nil
	}
	whole := len(data) / 4 * 4
	if whole < len(data) {
		s.carry = append([]byte(nil), data[whole:]...)
	}

	s.pending = append(s.pending, decodeFloat32LE(data[:whole])...)
	for len(s.pending) >= s.frameSamples {
		frame := make([]float32, s.frameSamples)
		copy(frame, s.pending[:s.frameSamples])
		s.pending = s.pending[s.frameSamples:]
		s.processFrameLocked(frame)
	}

	return len(buf), nil
}

// processFrameLocked buffers one frame and updates the silence state machine.
// Every delivered frame is buffered before classification, so the emitted
// artifact includes the trailing silence window that triggered the stop.
func (s *session) processFrameLocked(frame []float32) {
	s.frames = append(s.frames, frame)

	if s.classify == nil {
		return
	}

	speech, err := s.classify(ToPCM16(monoChannel(frame, s.channels)))
	if err != nil {
		// Classifier faults never abort the session; the frame simply goes
		// unclassified.
		if s.logger != nil {
			s.logger.Debug("frame classification failed", "error", err.Error())
		}
		return
	}

	if speech {
		s.speechSeen = true
		s.silenceMS = 0
		return
	}

	// Leading silence before the first detected speech never accumulates.
	if !s.speechSeen {
		return
	}

	s.silenceMS += frameDurationMS
	if s.silenceMS >= s.silenceStopMS {
		s.signalStop(stopSilence)
	}
}

// signalStop transitions to a terminal reason exactly once.
func (s *session) signalStop(reason stopReason) bool {
	return s.stop.CompareAndSwap(int32(stopNone), int32(reason))
}

func (s *session) stopReason() stopReason {
	return stopReason(s.stop.Load())
}

// samples concatenates buffered frames in arrival order, plus any residual
// partial frame, for serialization after the stop is observed.
func (s *session) samples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.pending)
	for _, frame := range s.frames {
		total += len(frame)
	}

	out := make([]float32, 0, total)
	for _, frame := range s.frames {
		out = append(out, frame...)
	}
	out = append(out, s.pending...)
	return out
}
