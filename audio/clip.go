// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/keysynth/utils"
)

// MaxClipSeconds bounds how much audio LoadClip keeps in memory.
const MaxClipSeconds = 30

// Clip is a fully decoded mono sample at a fixed rate, ready for playback
// from a real-time callback.
type Clip struct {
	SampleRate int
	Samples    []float32
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// At returns the clip value at the fractional sample position pos using
// cubic interpolation. Positions outside the clip are silent.
func (c *Clip) At(pos float64) float64 {
	n := len(c.Samples)
	if pos < 0 || n == 0 || pos > float64(n-1) {
		return 0
	}

	i := int(pos)
	x := pos - float64(i)
	y1 := float64(c.Samples[i])
	y0, y2, y3 := y1, y1, y1
	if i > 0 {
		y0 = float64(c.Samples[i-1])
	}
	if i+1 < n {
		y2 = float64(c.Samples[i+1])
		y3 = y2
	}
	if i+2 < n {
		y3 = float64(c.Samples[i+2])
	}

	return utils.CubicInterpolate(y0, y1, y2, y3, x)
}

// LoadClip reads src to the end, mixes it down to mono and resamples it to
// rate. src is closed before returning.
func LoadClip(src Source, rate int) (*Clip, error) {
	defer src.Close()

	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	channels := src.Channels()
	if channels <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidSource, src.SampleRate(), channels)
	}

	limit := MaxClipSeconds * src.SampleRate() * channels
	interleaved, err := readAll(src, channels, limit)
	if err != nil {
		return nil, err
	}

	mono := downmix(interleaved, channels)
	if len(mono) == 0 {
		return nil, ErrEmptySource
	}

	return &Clip{
		SampleRate: rate,
		Samples:    resample(mono, src.SampleRate(), rate),
	}, nil
}

func readAll(src Source, channels, limit int) ([]float32, error) {
	buf := make([]float32, 4096-4096%channels)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if len(out)+n > limit {
				return nil, fmt.Errorf("%w: longer than %d seconds", ErrClipTooLong, MaxClipSeconds)
			}
			out = append(out, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// A source that makes no progress without error is done.
			return out, nil
		}
	}
}

// downmix averages interleaved frames into a mono signal. A trailing partial
// frame is dropped.
func downmix(interleaved []float32, channels int) []float32 {
	if channels == 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	mono := make([]float32, frames)
	inv := 1 / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			mono[f] = (interleaved[2*f] + interleaved[2*f+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			for _, v := range interleaved[f*channels : (f+1)*channels] {
				sum += v
			}
			mono[f] = sum * inv
		}
	}

	return mono
}

// resample converts a mono signal between rates with cubic interpolation.
// Downsampling runs a one-pole low-pass first to tame aliasing.
func resample(in []float32, from, to int) []float32 {
	if from == to {
		return in
	}

	ratio := float64(from) / float64(to)
	if ratio > 1 {
		in = lowPass(in, 0.5)
	}

	src := &Clip{SampleRate: from, Samples: in}
	n := int(float64(len(in)-1)/ratio) + 1
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(src.At(float64(i) * ratio))
	}

	return out
}

func lowPass(in []float32, alpha float32) []float32 {
	out := make([]float32, len(in))
	state := in[0]
	for i, x := range in {
		state = alpha*x + (1-alpha)*state
		out[i] = state
	}
	return out
}
