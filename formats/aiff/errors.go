// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input has no FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout covers unreadable chunks and unsupported bit
	// depths.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
