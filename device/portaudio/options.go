// SPDX-License-Identifier: EPL-2.0

package portaudio

import "github.com/ik5/keysynth/device"

// Options configures the host.
type Options struct {
	// Encoding is EncodingF32 (default), EncodingI16 or EncodingU8.
	Encoding device.Encoding
	// FramesPerBuffer is the callback size. Zero lets PortAudio choose.
	FramesPerBuffer int
	// Channels caps the output channels. Defaults to 2.
	Channels int
}

func (o Options) withDefaults() Options {
	if o.Encoding == device.EncodingUnknown {
		o.Encoding = device.EncodingF32
	}
	if o.Channels <= 0 {
		o.Channels = 2
	}
	return o
}
