// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/device/oto"
	"github.com/ik5/keysynth/device/portaudio"
	"github.com/ik5/keysynth/device/pulse"
	"github.com/ik5/keysynth/device/wavfile"
)

func newHost(cfg config, format device.Format, paced bool) (device.Host, error) {
	switch cfg.backend {
	case "oto":
		return oto.NewHost(oto.Options{Format: format}), nil
	case "pulse":
		return pulse.NewHost(pulse.Options{Encoding: format.Encoding}), nil
	case "portaudio":
		return portaudio.NewHost(portaudio.Options{Encoding: format.Encoding, Channels: format.Channels}), nil
	case "wav":
		return wavfile.NewHost(wavfile.Options{
			Path:     cfg.out,
			Format:   format,
			Duration: cfg.duration,
			Paced:    paced,
		}), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.backend)
}
