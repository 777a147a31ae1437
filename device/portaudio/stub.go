// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package portaudio

import "github.com/ik5/keysynth/device"

// Host is unavailable in this build.
type Host struct {
	opts Options
}

func NewHost(opts Options) *Host { return &Host{opts: opts.withDefaults()} }

func (*Host) DefaultOutput() (device.Device, error) {
	return nil, ErrNotCompiled
}
