// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"fmt"
)

// Encoding is the native sample representation of an output stream.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	// EncodingU8 is unsigned 8-bit PCM.
	EncodingU8
	// EncodingU16 is unsigned 16-bit PCM.
	EncodingU16
	// EncodingI16 is signed 16-bit PCM.
	EncodingI16
	// EncodingF32 is 32-bit float PCM.
	EncodingF32
	// EncodingRaw is any other packed layout, exposed as bytes in Buffer.Raw.
	EncodingRaw
)

func (e Encoding) String() string {
	switch e {
	case EncodingU8:
		return "u8"
	case EncodingU16:
		return "u16"
	case EncodingI16:
		return "i16"
	case EncodingF32:
		return "f32"
	case EncodingRaw:
		return "raw"
	}
	return "unknown"
}

// ParseEncoding is the inverse of Encoding.String.
func ParseEncoding(s string) (Encoding, error) {
	for e := EncodingU8; e <= EncodingRaw; e++ {
		if e.String() == s {
			return e, nil
		}
	}
	return EncodingUnknown, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// Format describes an output stream. It is fixed for the stream's lifetime.
type Format struct {
	SampleRate int
	Channels   int
	Encoding   Encoding
}

// Validate reports whether f can drive a stream at all.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	}
	return nil
}

// Merge returns f with every zero field replaced by the one from def.
func (f Format) Merge(def Format) Format {
	if f.SampleRate == 0 {
		f.SampleRate = def.SampleRate
	}
	if f.Channels == 0 {
		f.Channels = def.Channels
	}
	if f.Encoding == EncodingUnknown {
		f.Encoding = def.Encoding
	}
	return f
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %s", f.SampleRate, f.Channels, f.Encoding)
}

// Buffer is one block of interleaved output samples requested by a device.
// Only the slice selected by Encoding is meaningful.
//
// Buffer is a plain struct so a backend can hand it to a Callback on every
// period without allocating.
type Buffer struct {
	Encoding Encoding
	U8       []uint8
	U16      []uint16
	I16      []int16
	F32      []float32
	Raw      []byte
}

// NewBuffer allocates a Buffer holding samples values of encoding enc.
func NewBuffer(enc Encoding, samples int) Buffer {
	b := Buffer{Encoding: enc}
	switch enc {
	case EncodingU8:
		b.U8 = make([]uint8, samples)
	case EncodingU16:
		b.U16 = make([]uint16, samples)
	case EncodingI16:
		b.I16 = make([]int16, samples)
	case EncodingF32:
		b.F32 = make([]float32, samples)
	default:
		b.Raw = make([]byte, samples)
	}
	return b
}

// Len returns the number of samples (not frames) in the active slice.
func (b Buffer) Len() int {
	switch b.Encoding {
	case EncodingU8:
		return len(b.U8)
	case EncodingU16:
		return len(b.U16)
	case EncodingI16:
		return len(b.I16)
	case EncodingF32:
		return len(b.F32)
	}
	return len(b.Raw)
}

// Slice returns b limited to its first n samples.
func (b Buffer) Slice(n int) Buffer {
	switch b.Encoding {
	case EncodingU8:
		b.U8 = b.U8[:n]
	case EncodingU16:
		b.U16 = b.U16[:n]
	case EncodingI16:
		b.I16 = b.I16[:n]
	case EncodingF32:
		b.F32 = b.F32[:n]
	default:
		b.Raw = b.Raw[:n]
	}
	return b
}

// Frames returns how many whole frames of channels samples b holds.
func (b Buffer) Frames(channels int) int {
	if channels <= 0 {
		return 0
	}
	return b.Len() / channels
}

// Callback fills one Buffer. Streams call it from their own goroutine, on
// the device's schedule, one call at a time.
type Callback func(Buffer)

// Stream is an opened output stream.
type Stream interface {
	// Run starts playback and keeps invoking the callback until ctx is done,
	// the stream ends on its own, or the device fails. It blocks.
	Run(ctx context.Context) error
	// Close releases the stream. It is safe to call after Run returned.
	Close() error
}

// Device is an output device. A Device that holds resources before Open,
// such as a server connection, also implements io.Closer; callers close it
// when they give up before a stream exists. Once Open succeeds the stream
// owns those resources.
type Device interface {
	Name() string
	// DefaultFormat reports the format the device prefers.
	DefaultFormat() (Format, error)
	// Open prepares a stream of format f that will feed buffers to cb.
	Open(f Format, cb Callback) (Stream, error)
}

// Host is an audio subsystem able to provide an output device.
type Host interface {
	DefaultOutput() (Device, error)
}
