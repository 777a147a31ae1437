// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM of 8, 16, 24 and 32 bits is accepted, with any channel count
// and sample rate. Samples come out of the returned audio.Source as float32
// in [-1, 1]. AIFF is big-endian and stores its rate as an 80-bit float; the
// go-audio decoder deals with both.
//
// AIFF files can be used as sampler clips:
//
//	f, _ := os.Open("piano.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	clip, err := audio.LoadClip(src, 48000)
package aiff
