// Package audio owns microphone capture: device discovery, the
// voice-activity-gated capture loop, PCM encoding, and WAV serialization.
package audio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Device describes one Pulse input source surfaced to parlo.
type Device struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// ListDevices returns available Pulse input sources with default/availability metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := newPulseClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, &DeviceError{Op: "read default source", Err: err}
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, &DeviceError{Op: "list sources", Err: err}
	}

	devices := make([]Device, 0, len(sourceInfos))
	for _, source := range sourceInfos {
		if source == nil {
			continue
		}
		devices = append(devices, Device{
			ID:          source.SourceName,
			Description: source.Device,
			State:       sourceStateString(source.State),
			Available:   sourceAvailable(source),
			Muted:       source.Mute,
			Default:     source.SourceName == defaultID,
		})
	}
	return devices, nil
}

// Ping verifies the Pulse server accepts connections.
func Ping(_ context.Context) error {
	client, err := newPulseClient()
	if err != nil {
		return err
	}
	client.Close()
	return nil
}

// pulseStream bundles the client and record stream lifecycle for one capture.
type pulseStream struct {
	client *pulse.Client
	stream *pulse.RecordStream
	once   sync.Once
}

// openPulseStream creates and starts a 32-bit float record stream delivering
// into the session's Write method at 20ms fragment granularity.
func openPulseStream(sess *session, device string) (*pulseStream, error) {
	client, err := newPulseClient()
	if err != nil {
		return nil, err
	}

	source, err := resolveSource(client, device)
	if err != nil {
		client.Close()
		return nil, err
	}

	opts := []pulse.RecordOption{
		pulse.RecordSource(source),
		pulse.RecordSampleRate(sess.sampleRate),
		pulse.RecordBufferFragmentSize(uint32(sess.frameSamples * 4)),
		pulse.RecordMediaName("parlo dictation"),
	}
	switch sess.channels {
	case 1:
		opts = append(opts, pulse.RecordMono)
	case 2:
		opts = append(opts, pulse.RecordStereo)
	default:
		client.Close()
		return nil, &DeviceError{
			Op:  "configure channels",
			Err: fmt.Errorf("unsupported channel count %d", sess.channels),
		}
	}

	writer := pulse.NewWriter(sess, pulseproto.FormatFloat32LE)
	stream, err := client.NewRecord(writer, opts...)
	if err != nil {
		client.Close()
		return nil, &DeviceError{Op: "create record stream", Err: err}
	}

	stream.Start()
	return &pulseStream{client: client, stream: stream}, nil
}

// close halts delivery and releases the stream and client exactly once.
func (p *pulseStream) close() {
	p.once.Do(func() {
		if p.stream != nil {
			p.stream.Stop()
			p.stream.Close()
		}
		if p.client != nil {
			p.client.Close()
		}
	})
}

func newPulseClient() (*pulse.Client, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("parlo"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, &DeviceError{Op: "connect pulse server", Err: err}
	}
	return client, nil
}

// resolveSource maps the configured device name to a Pulse source, defaulting
// to the server's default input.
func resolveSource(client *pulse.Client, device string) (*pulse.Source, error) {
	device = strings.TrimSpace(device)
	if device == "" || strings.EqualFold(device, "default") {
		source, err := client.DefaultSource()
		if err != nil {
			return nil, &DeviceError{Op: "resolve default source", Err: err}
		}
		return source, nil
	}

	source, err := client.SourceByID(device)
	if err != nil {
		return nil, &DeviceError{Op: fmt.Sprintf("resolve source %q", device), Err: err}
	}
	return source, nil
}

// sourceStateString maps Pulse source state constants to human-readable values.
func sourceStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sourceAvailable maps Pulse source port availability to a simple boolean.
func sourceAvailable(source *pulseproto.GetSourceInfoReply) bool {
	if source == nil {
		return false
	}
	if len(source.Ports) == 0 {
		return true
	}
	for _, port := range source.Ports {
		if port.Name != source.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
