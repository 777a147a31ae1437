// SPDX-License-Identifier: EPL-2.0

// Package oto is a device backend over github.com/ebitengine/oto/v3.
//
// oto pulls audio from an io.Reader on its own goroutine. The stream's reader
// renders straight into a pre-allocated typed buffer and encodes it
// little-endian into oto's byte slice, so nothing is allocated per period.
//
// oto allows a single context per process; a Host therefore opens at most one
// stream.
package oto

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/keysynth/device"
)

// Options configures the host. Zero fields take the defaults.
type Options struct {
	Format device.Format
	// BufferSize is oto's buffer duration. Smaller means lower latency and a
	// higher risk of underruns.
	BufferSize time.Duration
}

var defaultFormat = device.Format{SampleRate: 48000, Channels: 2, Encoding: device.EncodingF32}

const (
	defaultBufferSize = 40 * time.Millisecond
	pollInterval      = 100 * time.Millisecond
)

// Host is a device.Host backed by the system output oto selects.
type Host struct {
	opts Options

	mu  sync.Mutex
	ctx *oto.Context
}

func NewHost(opts Options) *Host {
	opts.Format = opts.Format.Merge(defaultFormat)
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	return &Host{opts: opts}
}

func (h *Host) DefaultOutput() (device.Device, error) {
	return &outputDevice{host: h}, nil
}

type outputDevice struct {
	host *Host
}

func (d *outputDevice) Name() string { return "oto" }

func (d *outputDevice) DefaultFormat() (device.Format, error) {
	return d.host.opts.Format, nil
}

func (d *outputDevice) Open(f device.Format, cb device.Callback) (device.Stream, error) {
	otoFormat, err := sampleFormat(f.Encoding)
	if err != nil {
		return nil, err
	}

	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx != nil {
		return nil, ErrContextInUse
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       otoFormat,
		BufferSize:   h.opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready
	h.ctx = ctx

	r := newReader(f, cb)
	return &stream{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

func sampleFormat(enc device.Encoding) (oto.Format, error) {
	switch enc {
	case device.EncodingU8:
		return oto.FormatUnsignedInt8, nil
	case device.EncodingI16:
		return oto.FormatSignedInt16LE, nil
	case device.EncodingF32:
		return oto.FormatFloat32LE, nil
	}
	return 0, fmt.Errorf("%w: oto cannot play %s", device.ErrUnsupportedEncoding, enc)
}

type stream struct {
	ctx    *oto.Context
	player *oto.Player
}

// Run plays until ctx is done or oto reports an error.
func (s *stream) Run(ctx context.Context) error {
	s.player.Play()
	defer s.player.Pause()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := s.player.Err(); err != nil {
				return fmt.Errorf("oto player: %w", err)
			}
			if err := s.ctx.Err(); err != nil {
				return fmt.Errorf("oto context: %w", err)
			}
		}
	}
}

func (s *stream) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// reader adapts a device.Callback to the io.Reader oto pulls from. oto may
// ask for byte counts that end inside a frame; the rest of that frame is
// kept and handed out first on the next Read so channels never shift.
type reader struct {
	cb       device.Callback
	buf      device.Buffer
	width    int // bytes per sample
	channels int
	frames   int // capacity of buf in frames

	frame   []byte // one encoded frame
	pending []byte // unread tail of frame
}

func newReader(f device.Format, cb device.Callback) *reader {
	width := 4
	switch f.Encoding {
	case device.EncodingU8:
		width = 1
	case device.EncodingI16:
		width = 2
	}

	// Roughly 100 ms, enough for any oto read; grown if ever too small.
	frames := max(f.SampleRate/10, 1)
	return &reader{
		cb:       cb,
		buf:      device.NewBuffer(f.Encoding, frames*f.Channels),
		width:    width,
		channels: f.Channels,
		frames:   frames,
		frame:    make([]byte, width*f.Channels),
	}
}

func (r *reader) Read(p []byte) (int, error) {
	total := len(p)

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	p = p[n:]

	frameBytes := len(r.frame)
	if frames := len(p) / frameBytes; frames > 0 {
		r.render(p[:frames*frameBytes], frames)
		p = p[frames*frameBytes:]
	}

	if len(p) > 0 {
		r.render(r.frame, 1)
		n := copy(p, r.frame)
		r.pending = r.frame[n:]
	}

	return total, nil
}

// render runs the callback for frames frames and encodes them into dst.
func (r *reader) render(dst []byte, frames int) {
	if frames > r.frames {
		r.buf = device.NewBuffer(r.buf.Encoding, frames*r.channels)
		r.frames = frames
	}

	buf := r.buf.Slice(frames * r.channels)
	r.cb(buf)

	switch buf.Encoding {
	case device.EncodingU8:
		copy(dst, buf.U8)
	case device.EncodingI16:
		for i, v := range buf.I16 {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
		}
	case device.EncodingF32:
		for i, v := range buf.F32 {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
		}
	}
}
