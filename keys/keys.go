// SPDX-License-Identifier: EPL-2.0

package keys

import "fmt"

// MaxHeld is the number of simultaneously held keys a State remembers.
const MaxHeld = 16

// Action is a single key event.
type Action struct {
	Key     int32
	Pressed bool
}

// Press returns a key-down Action for key.
func Press(key int32) Action { return Action{Key: key, Pressed: true} }

// Release returns a key-up Action for key.
func Release(key int32) Action { return Action{Key: key} }

func (a Action) String() string {
	if a.Pressed {
		return fmt.Sprintf("press(%d)", a.Key)
	}
	return fmt.Sprintf("release(%d)", a.Key)
}

// Note is the active note, or no note when Held is false.
// The zero value is None.
type Note struct {
	Key  int32
	Held bool
}

// None means no key is held.
var None = Note{}

// Some returns a held Note for key.
func Some(key int32) Note { return Note{Key: key, Held: true} }

// Get unpacks the note the way a map lookup does.
func (n Note) Get() (int32, bool) { return n.Key, n.Held }

func (n Note) String() string {
	if !n.Held {
		return "none"
	}
	return fmt.Sprintf("some(%d)", n.Key)
}

// State derives the active note from a history of actions.
// It is not safe for concurrent use; the render loop owns it.
type State struct {
	held [MaxHeld]int32 // oldest first
	n    int
}

// NewState returns a State with no key held.
func NewState() *State {
	return &State{}
}

// Apply folds a into the state and returns the resulting active note.
func (s *State) Apply(a Action) Note {
	s.remove(a.Key)
	if a.Pressed {
		if s.n == MaxHeld {
			copy(s.held[:], s.held[1:])
			s.n--
		}
		s.held[s.n] = a.Key
		s.n++
	}
	return s.Active()
}

// Active returns the current note without changing the state.
func (s *State) Active() Note {
	if s.n == 0 {
		return None
	}
	return Some(s.held[s.n-1])
}

// Held returns how many keys are currently held.
func (s *State) Held() int { return s.n }

// Reset releases every key.
func (s *State) Reset() { s.n = 0 }

func (s *State) remove(key int32) {
	for i := 0; i < s.n; i++ {
		if s.held[i] == key {
			copy(s.held[i:s.n], s.held[i+1:s.n])
			s.n--
			return
		}
	}
}
