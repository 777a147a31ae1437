// SPDX-License-Identifier: EPL-2.0

package keysynth

import "sync/atomic"

// Stats counts what the render loop did so far.
type Stats struct {
	// Buffers is the number of buffers filled.
	Buffers uint64
	// Frames is the number of frames rendered across those buffers.
	Frames uint64
	// Skipped is the number of buffers left untouched because their encoding
	// is not supported.
	Skipped uint64
}

type counters struct {
	buffers atomic.Uint64
	frames  atomic.Uint64
	skipped atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Buffers: c.buffers.Load(),
		Frames:  c.frames.Load(),
		Skipped: c.skipped.Load(),
	}
}
