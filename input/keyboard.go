// SPDX-License-Identifier: EPL-2.0

package input

import (
	"slices"
	"sync"
	"time"

	"github.com/ik5/keysynth/keys"
)

// DefaultHold is how long a key sounds after its last repeat.
const DefaultHold = 300 * time.Millisecond

// SendFunc delivers an action, usually Controller.KeyAction.
type SendFunc func(keys.Action) error

// Keyboard turns key hits into press and release actions. Terminals report
// no key-up events, so a key is released once it has not been hit again for
// the hold duration. Auto-repeat keeps it held.
type Keyboard struct {
	layout Layout
	hold   time.Duration
	send   SendFunc

	mu   sync.Mutex
	held map[int32]*heldKey
}

type heldKey struct {
	timer *time.Timer
}

func NewKeyboard(layout Layout, hold time.Duration, send SendFunc) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{
		layout: layout,
		hold:   hold,
		send:   send,
		held:   make(map[int32]*heldKey),
	}
}

// Hit handles one typed rune. It reports whether the rune is mapped to a key.
func (k *Keyboard) Hit(r rune) (bool, error) {
	key, ok := k.layout.Key(r)
	if !ok {
		return false, nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if h, ok := k.held[key]; ok && h.timer.Stop() {
		h.timer.Reset(k.hold)
		return true, nil
	}

	// Either not held, or its release is already firing: that release sees a
	// different heldKey and backs off.
	h := &heldKey{}
	h.timer = time.AfterFunc(k.hold, func() { k.expire(key, h) })
	k.held[key] = h

	return true, k.send(keys.Press(key))
}

func (k *Keyboard) expire(key int32, h *heldKey) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.held[key] != h {
		return
	}
	delete(k.held, key)
	// Nothing to report to from a timer; a failed send means the engine is
	// gone and Listen will notice on its next hit.
	_ = k.send(keys.Release(key))
}

// Held returns the keys currently held, lowest first.
func (k *Keyboard) Held() []int32 {
	k.mu.Lock()
	defer k.mu.Unlock()

	out := make([]int32, 0, len(k.held))
	for key := range k.held {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// ReleaseAll releases every held key now, lowest first.
func (k *Keyboard) ReleaseAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := make([]int32, 0, len(k.held))
	for key, h := range k.held {
		h.timer.Stop()
		held = append(held, key)
	}
	slices.Sort(held)
	clear(k.held)

	for _, key := range held {
		if err := k.send(keys.Release(key)); err != nil {
			return err
		}
	}
	return nil
}
