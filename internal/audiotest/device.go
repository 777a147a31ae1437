// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"sync"

	"github.com/ik5/keysynth/device"
)

// Host is a device.Host that hands out one Device, or fails with Err.
type Host struct {
	Device *Device
	Err    error
}

func (h *Host) DefaultOutput() (device.Device, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	if h.Device == nil {
		return nil, device.ErrNoDevice
	}
	return h.Device, nil
}

// Device is a manually clocked output device. Tests request buffers with
// Tick; the callback runs on the stream's Run goroutine, the same way a real
// backend calls it from its audio thread.
type Device struct {
	Format    device.Format
	FormatErr error
	OpenErr   error
	RunErr    error

	mu       sync.Mutex
	opened   device.Format
	cb       device.Callback
	closed   bool
	released bool

	requests chan device.Buffer
	replies  chan device.Buffer
	end      chan struct{}
	endOnce  sync.Once
	done     chan struct{}
}

// NewDevice returns a Device whose default format is f.
func NewDevice(f device.Format) *Device {
	return &Device{
		Format:   f,
		requests: make(chan device.Buffer),
		replies:  make(chan device.Buffer),
		end:      make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (d *Device) Name() string { return "audiotest" }

func (d *Device) DefaultFormat() (device.Format, error) {
	if d.FormatErr != nil {
		return device.Format{}, d.FormatErr
	}
	return d.Format, nil
}

func (d *Device) Open(f device.Format, cb device.Callback) (device.Stream, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = f
	d.cb = cb

	return &stream{d: d}, nil
}

// Close releases a device that was never opened.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
	return nil
}

// Released reports whether Close was called on the device itself.
func (d *Device) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Opened returns the format the stream was opened with.
func (d *Device) Opened() device.Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}

// Closed reports whether the stream was closed.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Tick requests one buffer of frames frames in the opened encoding and
// returns it once the callback filled it. It returns false when the stream is
// no longer running.
func (d *Device) Tick(frames int) (device.Buffer, bool) {
	f := d.Opened()
	return d.TickBuffer(device.NewBuffer(f.Encoding, frames*f.Channels))
}

// TickBuffer passes buf through the callback on the stream goroutine.
func (d *Device) TickBuffer(buf device.Buffer) (device.Buffer, bool) {
	select {
	case d.requests <- buf:
	case <-d.done:
		return device.Buffer{}, false
	}
	return <-d.replies, true
}

// End makes Run return RunErr, as if the device stopped on its own.
func (d *Device) End() {
	d.endOnce.Do(func() { close(d.end) })
}

// Done is closed when Run has returned.
func (d *Device) Done() <-chan struct{} { return d.done }

type stream struct {
	d *Device
}

func (s *stream) Run(ctx context.Context) error {
	defer close(s.d.done)

	s.d.mu.Lock()
	cb := s.d.cb
	s.d.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.d.end:
			return s.d.RunErr
		case buf := <-s.d.requests:
			cb(buf)
			s.d.replies <- buf
		}
	}
}

func (s *stream) Close() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.closed = true
	return nil
}
