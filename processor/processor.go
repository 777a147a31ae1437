// SPDX-License-Identifier: EPL-2.0

// Package processor holds synthesis functions: the per-sample callables the
// engine swaps at runtime.
//
// A Func is called once per output frame with the elapsed session time, the
// sample period and the active note. It returns one sample, nominally in
// [-1, 1]. A Func may keep state in its closure: the engine moves it into the
// render goroutine and only ever calls it from there.
package processor

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ik5/keysynth/keys"
)

// Func computes one sample.
type Func func(elapsed, period float64, note keys.Note) float64

// DefaultFrequency is the pitch of Default, A4.
const DefaultFrequency = 440.0

// Default is a free-running 440 Hz sine that ignores the active note. The
// engine plays it until a caller installs something else.
func Default(elapsed, _ float64, _ keys.Note) float64 {
	return math.Sin(elapsed * DefaultFrequency * 2 * math.Pi)
}

// NoteFrequency returns the equal-tempered frequency of key using MIDI
// numbering (69 = A4 = 440 Hz).
func NoteFrequency(key int32) float64 {
	return DefaultFrequency * math.Exp2(float64(key-69)/12)
}

// Waveform maps a phase in cycles, [0, 1), to a sample in [-1, 1].
type Waveform func(phase float64) float64

func Sine(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

func Square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

func Saw(phase float64) float64 { return 2*phase - 1 }

func Triangle(phase float64) float64 { return 1 - 4*math.Abs(phase-0.5) }

// Tone plays w at the pitch of the active note and is silent when no note is
// held.
func Tone(w Waveform) Func {
	return func(elapsed, _ float64, note keys.Note) float64 {
		key, ok := note.Get()
		if !ok {
			return 0
		}
		_, phase := math.Modf(elapsed * NoteFrequency(key))
		return w(phase)
	}
}

// Fixed plays w at freq regardless of the active note.
func Fixed(w Waveform, freq float64) Func {
	return func(elapsed, _ float64, _ keys.Note) float64 {
		_, phase := math.Modf(elapsed * freq)
		return w(phase)
	}
}

// Noise is white noise while a note is held. seed makes it reproducible.
func Noise(seed uint64) Func {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func(_, _ float64, note keys.Note) float64 {
		if !note.Held {
			return 0
		}
		return rng.Float64()*2 - 1
	}
}

// Gain scales the output of f by g.
func Gain(f Func, g float64) Func {
	return func(elapsed, period float64, note keys.Note) float64 {
		return g * f(elapsed, period, note)
	}
}

// Mix sums fs and divides by their count.
func Mix(fs ...Func) Func {
	fs = slices.Clone(fs)
	inv := 1 / float64(max(len(fs), 1))
	return func(elapsed, period float64, note keys.Note) float64 {
		var sum float64
		for _, f := range fs {
			sum += f(elapsed, period, note)
		}
		return sum * inv
	}
}

var waveforms = map[string]Waveform{
	"sine":     Sine,
	"square":   Square,
	"saw":      Saw,
	"triangle": Triangle,
}

// Names lists what ByName accepts.
func Names() []string {
	names := []string{"default", "noise"}
	for k := range waveforms {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// ByName returns a fresh Func for one of Names. Waveform names yield a
// note-following Tone.
func ByName(name string) (Func, error) {
	switch name {
	case "default":
		return Default, nil
	case "noise":
		return Noise(1), nil
	}
	if w, ok := waveforms[name]; ok {
		return Tone(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
}
