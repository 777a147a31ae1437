// SPDX-License-Identifier: EPL-2.0

// Package wavfile is an offline output device: the stream renders a fixed
// length of audio into a WAV file, as fast as possible or paced to real time.
//
// It is meant for headless runs and for checking what the engine produces.
// Encodings: EncodingU8 (8-bit WAV) and EncodingI16 (16-bit WAV). Samples are
// written exactly as the callback produced them.
package wavfile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/formats/wav"
)

// Options configures the host.
type Options struct {
	// Path of the file to create.
	Path string
	// Format defaults to 44100 Hz, mono, EncodingI16.
	Format device.Format
	// Duration of audio to render. Defaults to one second.
	Duration time.Duration
	// BufferFrames is the size of each callback. Defaults to 512.
	BufferFrames int
	// Paced waits one buffer period between callbacks, like a sound card.
	Paced bool
}

var defaultFormat = device.Format{SampleRate: 44100, Channels: 1, Encoding: device.EncodingI16}

// Host hands out a single file device.
type Host struct {
	opts Options
}

func NewHost(opts Options) *Host {
	opts.Format = opts.Format.Merge(defaultFormat)
	if opts.Duration <= 0 {
		opts.Duration = time.Second
	}
	if opts.BufferFrames <= 0 {
		opts.BufferFrames = 512
	}
	return &Host{opts: opts}
}

func (h *Host) DefaultOutput() (device.Device, error) {
	if h.opts.Path == "" {
		return nil, fmt.Errorf("%w: wavfile: no output path", device.ErrNoDevice)
	}
	return &fileDevice{opts: h.opts}, nil
}

type fileDevice struct {
	opts Options
}

func (d *fileDevice) Name() string { return "wav:" + d.opts.Path }

func (d *fileDevice) DefaultFormat() (device.Format, error) { return d.opts.Format, nil }

func (d *fileDevice) Open(f device.Format, cb device.Callback) (device.Stream, error) {
	var bitDepth int
	switch f.Encoding {
	case device.EncodingU8:
		bitDepth = 8
	case device.EncodingI16:
		bitDepth = 16
	default:
		return nil, fmt.Errorf("%w: wavfile cannot write %s", device.ErrUnsupportedEncoding, f.Encoding)
	}

	file, err := os.Create(d.opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	w, err := wav.NewWriter(file, f.SampleRate, f.Channels, bitDepth)
	if err != nil {
		file.Close()
		return nil, err
	}

	samples := d.opts.BufferFrames * f.Channels
	return &stream{
		file:   file,
		w:      w,
		cb:     cb,
		format: f,
		total:  int(d.opts.Duration.Seconds() * float64(f.SampleRate)),
		chunk:  d.opts.BufferFrames,
		paced:  d.opts.Paced,
		buf:    device.NewBuffer(f.Encoding, samples),
		ints:   make([]int, samples),
	}, nil
}

type stream struct {
	file   *os.File
	w      *wav.Writer
	cb     device.Callback
	format device.Format
	total  int // frames
	chunk  int // frames per callback
	paced  bool

	buf  device.Buffer
	ints []int

	finishOnce sync.Once
	finishErr  error
}

// Run renders until the configured duration is written or ctx is done. The
// file is finalised either way.
func (s *stream) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if s.paced {
		period := time.Duration(float64(s.chunk) / float64(s.format.SampleRate) * float64(time.Second))
		t := time.NewTicker(period)
		defer t.Stop()
		tick = t.C
	}

	err := s.render(ctx, tick)
	if ferr := s.finish(); err == nil {
		err = ferr
	}
	return err
}

func (s *stream) render(ctx context.Context, tick <-chan time.Time) error {
	for done := 0; done < s.total; {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		frames := min(s.chunk, s.total-done)
		n := frames * s.format.Channels
		buf := s.buf.Slice(n)
		s.cb(buf)

		ints := s.ints[:n]
		switch buf.Encoding {
		case device.EncodingU8:
			for i, v := range buf.U8 {
				ints[i] = int(v)
			}
		case device.EncodingI16:
			for i, v := range buf.I16 {
				ints[i] = int(v)
			}
		}
		if err := s.w.WriteInts(ints); err != nil {
			return fmt.Errorf("writing %s: %w", s.file.Name(), err)
		}
		done += frames
	}
	return nil
}

func (s *stream) finish() error {
	s.finishOnce.Do(func() {
		if err := s.w.Close(); err != nil {
			s.finishErr = err
		}
		if err := s.file.Close(); err != nil && s.finishErr == nil {
			s.finishErr = fmt.Errorf("%w", err)
		}
	})
	return s.finishErr
}

// Close finalises the file if Run never did.
func (s *stream) Close() error {
	return s.finish()
}
