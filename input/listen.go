// SPDX-License-Identifier: EPL-2.0

package input

import (
	"context"
	"fmt"

	"github.com/eiannone/keyboard"
)

// CommandFunc receives terminal events that are not mapped to a key. It
// returns false to stop listening.
type CommandFunc func(ev keyboard.KeyEvent) bool

// Listen puts the terminal in raw mode and feeds typed keys to kb until ctx
// is done, Esc or Ctrl+C is pressed, or commands returns false. Held keys are
// released on return.
func Listen(ctx context.Context, kb *Keyboard, commands CommandFunc) error {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer keyboard.Close()

	return listen(ctx, events, kb, commands)
}

func listen(ctx context.Context, events <-chan keyboard.KeyEvent, kb *Keyboard, commands CommandFunc) (err error) {
	defer func() {
		if rerr := kb.ReleaseAll(); err == nil {
			err = rerr
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("reading keyboard: %w", ev.Err)
			}

			switch ev.Key {
			case keyboard.KeyEsc, keyboard.KeyCtrlC:
				return nil
			}

			if ev.Rune != 0 {
				mapped, err := kb.Hit(ev.Rune)
				if err != nil {
					return err
				}
				if mapped {
					continue
				}
			}

			if commands != nil && !commands(ev) {
				return nil
			}
		}
	}
}
