// SPDX-License-Identifier: EPL-2.0

package keysynth

import (
	"errors"

	"github.com/ik5/keysynth/queue"
)

var (
	// ErrDisconnected is returned by the Controller's send methods once the
	// render loop has stopped.
	ErrDisconnected = queue.ErrDisconnected

	// ErrNilProcessor is returned when a nil synthesis function is sent.
	ErrNilProcessor = errors.New("nil processor function")

	// ErrNoOutputDevice indicates the host could not provide an output device.
	ErrNoOutputDevice = errors.New("no output device available")

	// ErrUnusableFormat indicates the device format cannot drive a stream.
	ErrUnusableFormat = errors.New("device cannot produce a usable format")
)
