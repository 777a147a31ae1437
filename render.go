// SPDX-License-Identifier: EPL-2.0

package keysynth

import (
	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/keys"
	"github.com/ik5/keysynth/processor"
	"github.com/ik5/keysynth/queue"
	"github.com/ik5/keysynth/utils"
)

// renderer is the state owned by the device callback. Nothing in it is
// touched from any other goroutine except the counters.
type renderer struct {
	processors *queue.Receiver[processor.Func]
	actions    *queue.Receiver[keys.Action]

	fn    processor.Func
	state *keys.State
	note  keys.Note

	channels int
	period   float64
	frame    uint64 // frames rendered since start; elapsed = frame * period

	// Bound once so draining does not build a method value per buffer.
	onProcessor func(processor.Func)
	onAction    func(keys.Action)

	counters *counters
}

func newRenderer(
	f device.Format,
	processors *queue.Receiver[processor.Func],
	actions *queue.Receiver[keys.Action],
	fn processor.Func,
) *renderer {
	r := &renderer{
		processors: processors,
		actions:    actions,
		fn:         fn,
		state:      keys.NewState(),
		channels:   f.Channels,
		period:     1 / float64(f.SampleRate),
		counters:   &counters{},
	}
	r.onProcessor = r.setProcessor
	r.onAction = r.applyAction

	return r
}

func (r *renderer) setProcessor(fn processor.Func) { r.fn = fn }

func (r *renderer) applyAction(a keys.Action) { r.note = r.state.Apply(a) }

// render is the device.Callback.
func (r *renderer) render(buf device.Buffer) {
	// The last function sent wins; earlier ones are simply dropped.
	r.processors.Drain(r.onProcessor)
	r.actions.Drain(r.onAction)

	var frames int
	switch buf.Encoding {
	case device.EncodingU8:
		frames = fill(r, buf.U8, utils.Float64ToUint8)
	case device.EncodingU16:
		frames = fill(r, buf.U16, utils.Float64ToUint16)
	case device.EncodingI16:
		frames = fill(r, buf.I16, utils.Float64ToInt16)
	case device.EncodingF32:
		frames = fill(r, buf.F32, utils.Float64ToFloat32)
	default:
		r.counters.skipped.Add(1)
		return
	}

	r.counters.buffers.Add(1)
	r.counters.frames.Add(uint64(frames))
}

// next computes the sample for the current frame and advances time.
func (r *renderer) next() float64 {
	v := r.fn(float64(r.frame)*r.period, r.period, r.note)
	r.frame++
	return v
}

// fill writes one converted sample per frame into every channel slot of out.
// A trailing partial frame gets a sample of its own.
func fill[S any](r *renderer, out []S, conv func(float64) S) int {
	frames := 0
	for i := 0; i < len(out); i += r.channels {
		s := conv(r.next())
		for j := i; j < min(i+r.channels, len(out)); j++ {
			out[j] = s
		}
		frames++
	}
	return frames
}

// close disconnects both queues so the Controller's sends start failing.
func (r *renderer) close() {
	r.processors.Close()
	r.actions.Close()
}
