// SPDX-License-Identifier: EPL-2.0

// Package keysynth is a real-time synthesizer core: key actions go in, a
// continuous signal comes out of an output device, and the synthesis function
// can be replaced while audio is playing.
//
// Start opens the default output device of a host and returns a Controller.
// The Controller owns the producing ends of two queues, one for key actions
// and one for replacement synthesis functions. The device calls the render
// loop on its own goroutine; on every buffer the loop drains both queues
// without waiting, then calls the current processor.Func once per frame and
// writes the converted sample to every channel of that frame.
//
//	c, err := keysynth.Start(ctx, oto.NewHost(oto.Options{}))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	_ = c.SetProcessorFunction(processor.Tone(processor.Saw))
//	_ = c.KeyAction(keys.Press(60))
//
// # Real-time rules
//
// The render path never takes a lock, never blocks on the caller and does not
// allocate once running. Anything that may block (logging included) happens
// on the caller's goroutine or after the stream stopped.
//
// # Sample conversion
//
// The synthesis output v, clamped to [-1, 1], is written as:
//
//	u8:  uint8((v*0.5+0.5) * 255)
//	u16: uint16((v*0.5+0.5) * 65535)
//	i16: int16((v*0.5+0.5) * 32767)
//	f32: float32(v)
//
// Buffers in any other encoding are left untouched and counted in
// Stats.Skipped.
package keysynth
