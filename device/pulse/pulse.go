// SPDX-License-Identifier: EPL-2.0

// Package pulse is a device backend speaking the PulseAudio protocol through
// github.com/jfreymuth/pulse. It needs no cgo and works against PipeWire's
// pulse server too.
package pulse

import (
	"context"
	"fmt"
	"time"

	"github.com/jfreymuth/pulse"

	"github.com/ik5/keysynth/device"
)

// Options configures the host.
type Options struct {
	// ClientName is shown by the sound server. Defaults to "keysynth".
	ClientName string
	// Latency is the requested playback latency in seconds. Defaults to 20 ms.
	Latency float64
	// Encoding is EncodingF32 (default) or EncodingI16.
	Encoding device.Encoding
}

const pollInterval = 100 * time.Millisecond

// Host connects to the sound server on DefaultOutput.
type Host struct {
	opts Options
}

func NewHost(opts Options) *Host {
	if opts.ClientName == "" {
		opts.ClientName = "keysynth"
	}
	if opts.Latency <= 0 {
		opts.Latency = 0.02
	}
	if opts.Encoding == device.EncodingUnknown {
		opts.Encoding = device.EncodingF32
	}
	return &Host{opts: opts}
}

// DefaultOutput connects to the server and picks its default sink.
func (h *Host) DefaultOutput() (device.Device, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName(h.opts.ClientName))
	if err != nil {
		return nil, fmt.Errorf("%w: pulse: %w", device.ErrNoDevice, err)
	}

	sink, err := client.DefaultSink()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: pulse default sink: %w", device.ErrNoDevice, err)
	}

	return &sinkDevice{opts: h.opts, client: client, sink: sink}, nil
}

type sinkDevice struct {
	opts   Options
	client *pulse.Client
	sink   *pulse.Sink
}

// Close disconnects from the server. Only for a device that was never
// opened; an open stream closes the client itself.
func (d *sinkDevice) Close() error {
	d.client.Close()
	return nil
}

func (d *sinkDevice) Name() string { return "pulse:" + d.sink.Name() }

// DefaultFormat follows the sink's rate. Playback is limited to mono or
// stereo.
func (d *sinkDevice) DefaultFormat() (device.Format, error) {
	return sinkFormat(d.sink.SampleRate(), len(d.sink.Channels()), d.opts.Encoding), nil
}

func sinkFormat(rate, channels int, enc device.Encoding) device.Format {
	return device.Format{
		SampleRate: rate,
		Channels:   min(max(channels, 1), 2),
		Encoding:   enc,
	}
}

func (d *sinkDevice) Open(f device.Format, cb device.Callback) (device.Stream, error) {
	r, err := newReader(f.Encoding, cb)
	if err != nil {
		return nil, err
	}

	opts := []pulse.PlaybackOption{
		pulse.PlaybackSink(d.sink),
		pulse.PlaybackSampleRate(f.SampleRate),
		pulse.PlaybackLatency(d.opts.Latency),
	}
	switch f.Channels {
	case 1:
		opts = append(opts, pulse.PlaybackMono)
	case 2:
		opts = append(opts, pulse.PlaybackStereo)
	default:
		return nil, fmt.Errorf("%w: pulse backend plays 1 or 2 channels, not %d", device.ErrInvalidFormat, f.Channels)
	}

	playback, err := d.client.NewPlayback(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("pulse playback: %w", err)
	}

	return &stream{client: d.client, playback: playback}, nil
}

// newReader wraps cb in the typed pulse reader for enc. pulse hands out
// its own slices, so the callback writes into them directly.
func newReader(enc device.Encoding, cb device.Callback) (pulse.Reader, error) {
	switch enc {
	case device.EncodingF32:
		return pulse.Float32Reader(func(out []float32) (int, error) {
			cb(device.Buffer{Encoding: device.EncodingF32, F32: out})
			return len(out), nil
		}), nil
	case device.EncodingI16:
		return pulse.Int16Reader(func(out []int16) (int, error) {
			cb(device.Buffer{Encoding: device.EncodingI16, I16: out})
			return len(out), nil
		}), nil
	}
	return nil, fmt.Errorf("%w: pulse backend cannot play %s", device.ErrUnsupportedEncoding, enc)
}

type stream struct {
	client   *pulse.Client
	playback *pulse.PlaybackStream
}

func (s *stream) Run(ctx context.Context) error {
	s.playback.Start()
	defer s.playback.Stop()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := s.playback.Error(); err != nil {
				return fmt.Errorf("pulse playback: %w", err)
			}
			if !s.playback.Running() {
				return nil
			}
		}
	}
}

func (s *stream) Close() error {
	s.playback.Close()
	s.client.Close()
	return nil
}
