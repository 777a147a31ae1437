// SPDX-License-Identifier: EPL-2.0

// Package device defines what the synthesizer needs from an audio output.
//
// The contract mirrors how audio APIs hand out work:
//
//	host.DefaultOutput()        -> Device
//	device.DefaultFormat()      -> Format{SampleRate, Channels, Encoding}
//	device.Open(format, cb)     -> Stream
//	stream.Run(ctx)             // calls cb(Buffer) once per device period
//
// Backends live in subpackages:
//   - device/oto: github.com/ebitengine/oto/v3
//   - device/pulse: github.com/jfreymuth/pulse (PulseAudio, pure Go)
//   - device/portaudio: github.com/gordonklaus/portaudio (cgo, build tag "portaudio")
//   - device/wavfile: offline rendering into a WAV file
//
// # Buffers
//
// A Buffer carries interleaved samples in one of the supported encodings
// (U8, U16, I16, F32). Anything else arrives as EncodingRaw bytes and is left
// for the callback to ignore. Backends allocate their buffers once with
// NewBuffer and reuse them for every callback.
package device
