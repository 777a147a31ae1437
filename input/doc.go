// SPDX-License-Identifier: EPL-2.0

// Package input turns a computer keyboard into a note source.
//
// A Layout maps typed characters to key ids. A Keyboard converts hits into
// keys.Action values and synthesizes releases, since a terminal only reports
// key-down and auto-repeat. Listen reads the terminal with
// github.com/eiannone/keyboard:
//
//	kb := input.NewKeyboard(input.PianoLayout(), input.DefaultHold, c.KeyAction)
//	err := input.Listen(ctx, kb, nil)
package input
