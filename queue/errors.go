// SPDX-License-Identifier: EPL-2.0

package queue

import "errors"

var (
	// ErrDisconnected is returned by Send after the receiving end was closed.
	ErrDisconnected = errors.New("queue: receiver disconnected")
)
