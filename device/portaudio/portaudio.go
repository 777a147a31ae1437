// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package portaudio

import (
	"context"
	"fmt"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"github.com/ik5/keysynth/device"
)

// Host initialises PortAudio on DefaultOutput and terminates it when the
// stream is closed.
type Host struct {
	opts Options
}

func NewHost(opts Options) *Host { return &Host{opts: opts.withDefaults()} }

func (h *Host) DefaultOutput() (device.Device, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: portaudio: %w", device.ErrNoDevice, err)
	}

	info, err := pa.DefaultOutputDevice()
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("%w: portaudio: %w", device.ErrNoDevice, err)
	}

	return &outputDevice{opts: h.opts, info: info}, nil
}

type outputDevice struct {
	opts Options
	info *pa.DeviceInfo
}

// Close terminates PortAudio for a device that was never opened.
func (d *outputDevice) Close() error {
	if err := pa.Terminate(); err != nil {
		return fmt.Errorf("portaudio terminate: %w", err)
	}
	return nil
}

func (d *outputDevice) Name() string { return "portaudio:" + d.info.Name }

func (d *outputDevice) DefaultFormat() (device.Format, error) {
	return device.Format{
		SampleRate: int(d.info.DefaultSampleRate),
		Channels:   min(d.info.MaxOutputChannels, d.opts.Channels),
		Encoding:   d.opts.Encoding,
	}, nil
}

func (d *outputDevice) Open(f device.Format, cb device.Callback) (device.Stream, error) {
	callback, err := typedCallback(f.Encoding, cb)
	if err != nil {
		return nil, err
	}

	s, err := pa.OpenDefaultStream(0, f.Channels, float64(f.SampleRate), d.opts.FramesPerBuffer, callback)
	if err != nil {
		return nil, fmt.Errorf("portaudio stream: %w", err)
	}
	return &stream{s: s}, nil
}

// typedCallback returns the interleaved callback type PortAudio maps to enc.
func typedCallback(enc device.Encoding, cb device.Callback) (any, error) {
	switch enc {
	case device.EncodingF32:
		return func(out []float32) {
			cb(device.Buffer{Encoding: device.EncodingF32, F32: out})
		}, nil
	case device.EncodingI16:
		return func(out []int16) {
			cb(device.Buffer{Encoding: device.EncodingI16, I16: out})
		}, nil
	case device.EncodingU8:
		return func(out []uint8) {
			cb(device.Buffer{Encoding: device.EncodingU8, U8: out})
		}, nil
	}
	return nil, fmt.Errorf("%w: portaudio backend cannot play %s", device.ErrUnsupportedEncoding, enc)
}

type stream struct {
	s         *pa.Stream
	closeOnce sync.Once
	closeErr  error
}

// Run starts the stream; PortAudio calls back on its own thread until ctx is
// done.
func (s *stream) Run(ctx context.Context) error {
	if err := s.s.Start(); err != nil {
		return fmt.Errorf("portaudio start: %w", err)
	}
	<-ctx.Done()

	if err := s.s.Stop(); err != nil {
		return fmt.Errorf("portaudio stop: %w", err)
	}
	return nil
}

func (s *stream) Close() error {
	s.closeOnce.Do(func() {
		if err := s.s.Close(); err != nil {
			s.closeErr = fmt.Errorf("%w", err)
		}
		if err := pa.Terminate(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("%w", err)
		}
	})
	return s.closeErr
}
