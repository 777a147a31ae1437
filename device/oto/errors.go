// SPDX-License-Identifier: EPL-2.0

package oto

import "errors"

// ErrContextInUse is returned when a second stream is opened: oto supports
// one context per process.
var ErrContextInUse = errors.New("oto context already open")
