// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidFormat       = errors.New("decoder reported no usable format")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)
