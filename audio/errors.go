// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder registered for format")
	ErrInvalidRate   = errors.New("target sample rate must be positive")
	ErrInvalidSource = errors.New("source reports an invalid rate or channel count")
	ErrEmptySource   = errors.New("source produced no samples")
	ErrClipTooLong   = errors.New("clip too long")
)
