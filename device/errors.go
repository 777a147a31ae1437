// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrInvalidFormat indicates a format that cannot drive a stream.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrUnknownEncoding indicates an encoding name ParseEncoding does not know.
	ErrUnknownEncoding = errors.New("unknown sample encoding")

	// ErrUnsupportedEncoding indicates a backend cannot produce an encoding.
	ErrUnsupportedEncoding = errors.New("encoding not supported by backend")

	// ErrNoDevice indicates the host has no output device.
	ErrNoDevice = errors.New("no output device")
)
