// SPDX-License-Identifier: EPL-2.0

// Package audio reads decoded audio into memory for playback.
//
// A Source streams interleaved float32 samples in [-1, 1] and returns io.EOF
// once it is exhausted. Decoders for concrete file formats live under
// formats/ and are looked up by file extension through a Registry:
//
//	src, err := formats.NewRegistry().DecodeFile("kick.wav")
//	if err != nil {
//	    return err
//	}
//	clip, err := audio.LoadClip(src, 48000)
//
// LoadClip reads the whole source, averages its channels down to mono and
// resamples it with cubic interpolation, so a Clip always plays at the
// device rate. Clip.At reads it at a fractional position and never
// allocates, which makes it safe to call from the render callback.
package audio
