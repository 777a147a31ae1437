// SPDX-License-Identifier: EPL-2.0

// Package keys tracks which key is currently sounding.
//
// A State consumes a stream of Action values (key id + press/release) and
// derives the single active Note from it. The engine is monophonic, so at
// most one note is active at any time.
//
// # Overlap Policy
//
// The most recently pressed key that is still held is the active note:
//
//   - Pressing a key makes it the active note, even if it was already held.
//   - Releasing the active key falls back to the previously pressed key that
//     is still held, or to no note when nothing is held.
//   - Releasing a key that is held but not active changes nothing audible;
//     the key is only forgotten for later fallbacks.
//   - Releasing a key that is not held is a no-op.
//
// A State remembers up to MaxHeld keys. Pressing one more key drops the
// oldest held key from memory.
//
// # Example
//
//	st := keys.NewState()
//	st.Apply(keys.Press(60))   // Some(60)
//	st.Apply(keys.Press(64))   // Some(64)
//	st.Apply(keys.Release(64)) // Some(60)
//	st.Apply(keys.Release(60)) // None
//
// Apply does not allocate, so a State can live inside a real-time audio
// callback.
package keys
