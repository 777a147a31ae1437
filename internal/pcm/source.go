// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders (WAV, AIFF) to audio.Source.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalises integer PCM from a Reader into float32 samples.
type Source struct {
	dec      Reader
	rate     int
	channels int
	scale    float32
	offset   int
	buf      *goaudio.IntBuffer
}

// NewSource wraps dec. bitDepth selects the full-scale value; unsigned8 marks
// 8-bit data stored with a 128 offset, as WAV does.
func NewSource(dec Reader, bitDepth int, unsigned8 bool) (*Source, error) {
	f := dec.Format()
	if f == nil || f.SampleRate <= 0 || f.NumChannels <= 0 {
		return nil, ErrInvalidFormat
	}

	s := &Source{
		dec:      dec,
		rate:     f.SampleRate,
		channels: f.NumChannels,
	}

	switch bitDepth {
	case 8:
		s.scale = 1 << 7
		if unsigned8 {
			s.offset = 128
		}
	case 16:
		s.scale = 1 << 15
	case 24:
		s.scale = 1 << 23
	case 32:
		s.scale = 1 << 31
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.offset) / s.scale
	}

	if err == io.EOF {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}
