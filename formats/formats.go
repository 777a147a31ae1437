// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/keysynth/audio"
	"github.com/ik5/keysynth/formats/aiff"
	"github.com/ik5/keysynth/formats/mp3"
	"github.com/ik5/keysynth/formats/vorbis"
	"github.com/ik5/keysynth/formats/wav"
)

// NewRegistry returns a registry keyed by file extension for wav, aiff, mp3
// and ogg files.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})

	return r
}
