// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF WAVE files on top of
// github.com/go-audio/wav.
//
// Decoder turns integer PCM (8, 16, 24 or 32 bit, any channel count) into an
// audio.Source of float32 samples in [-1, 1]. 8-bit data is unsigned in WAV
// and is re-centred on zero.
//
// Writer streams 8 or 16-bit PCM into a seekable destination; the RIFF sizes
// are patched when it is closed:
//
//	f, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(f, 44100, 1, 16)
//	_ = w.WriteInts(samples)
//	_ = w.Close()
//	_ = f.Close()
//
// Encode is the one-shot form for a complete 16-bit buffer.
package wav
