// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/keysynth/audio"
	"github.com/ik5/keysynth/keys"
)

// Sampler plays clip once from its start every time a new note begins,
// transposed by the distance between the note and rootKey in semitones.
// It is silent while no note is held and after the clip ends.
//
// The clip may be at any rate: playback advances in seconds, interpolating
// between clip samples.
//
// The sampler only sees the net note of each buffer. A release and a press
// of the same key that arrive within one buffer leave the note unchanged,
// so the clip keeps playing instead of starting over.
func Sampler(clip *audio.Clip, rootKey int32) Func {
	var (
		playing bool
		key     int32
		start   float64
		step    float64 // clip samples per second of output
	)

	return func(elapsed, _ float64, note keys.Note) float64 {
		k, ok := note.Get()
		if !ok {
			playing = false
			return 0
		}
		if !playing || k != key {
			playing, key, start = true, k, elapsed
			step = float64(clip.SampleRate) * math.Exp2(float64(k-rootKey)/12)
		}
		return clip.At((elapsed - start) * step)
	}
}
