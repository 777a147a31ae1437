// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrNotPCM               = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrInvalidParams        = errors.New("invalid WAV parameters")
)
