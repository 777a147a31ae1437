// SPDX-License-Identifier: EPL-2.0

package portaudio

import "errors"

// ErrNotCompiled is returned when the binary was built without the portaudio
// tag.
var ErrNotCompiled = errors.New("portaudio backend not compiled in (build with -tags portaudio)")
