// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer streams integer PCM into a WAV container. The header sizes are
// patched on Close, so the destination must be seekable.
type Writer struct {
	enc      *wav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	samples  int
	started  bool
}

// NewWriter starts a WAV stream on ws. bitDepth is 8 or 16.
func NewWriter(ws io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidParams, sampleRate, channels)
	}
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d-bit", ErrInvalidParams, bitDepth)
	}

	return &Writer{
		enc:      wav.NewEncoder(ws, sampleRate, bitDepth, channels, formatPCM),
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteInts appends interleaved samples already in the container's range:
// 0..255 for 8-bit, signed for 16-bit.
func (w *Writer) WriteInts(samples []int) error {
	// The encoder emits the header on its first write.
	w.buf.Data = samples
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.started = true
	w.samples += len(samples)
	return nil
}

// Frames returns how many frames were written so far.
func (w *Writer) Frames() int { return w.samples / w.channels }

// Close finalises the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if !w.started {
		if err := w.WriteInts(nil); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Encode writes a complete 16-bit WAV with the given interleaved samples.
func Encode(ws io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	w, err := NewWriter(ws, sampleRate, channels, 16)
	if err != nil {
		return err
	}

	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}
	if err := w.WriteInts(ints); err != nil {
		return err
	}
	return w.Close()
}
