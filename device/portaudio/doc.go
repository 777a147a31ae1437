// SPDX-License-Identifier: EPL-2.0

// Package portaudio is a device backend over github.com/gordonklaus/portaudio.
//
// PortAudio is a cgo binding, so the real backend is only compiled with the
// "portaudio" build tag:
//
//	go build -tags portaudio ./cmd/keysynth
//
// Without the tag, NewHost returns a host whose DefaultOutput fails with
// ErrNotCompiled.
package portaudio
