// SPDX-License-Identifier: EPL-2.0

package processor

import "errors"

var (
	ErrUnknownProcessor = errors.New("unknown processor")
)
