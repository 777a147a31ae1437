// SPDX-License-Identifier: EPL-2.0

package keys

import (
	"math/rand/v2"
	"testing"
)

const (
	keyA int32 = 60
	keyB int32 = 64
)

func TestState_Fresh(t *testing.T) {
	t.Parallel()

	st := NewState()
	if got := st.Active(); got != None {
		t.Errorf("Active() = %v, want %v", got, None)
	}
	if st.Held() != 0 {
		t.Errorf("Held() = %d, want 0", st.Held())
	}
}

func TestState_PressRelease(t *testing.T) {
	t.Parallel()

	st := NewState()
	if got := st.Apply(Press(keyA)); got != Some(keyA) {
		t.Fatalf("after press: %v, want %v", got, Some(keyA))
	}
	if got := st.Apply(Release(keyA)); got != None {
		t.Fatalf("after release: %v, want %v", got, None)
	}
	if st.Held() != 0 {
		t.Errorf("Held() = %d, want 0", st.Held())
	}
}

// TestState_TwoKeyOverlap walks every ordering of two keys that are each
// pressed once and released once.
func TestState_TwoKeyOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actions []Action
		want    []Note
	}{
		{
			name:    "A B, release B then A",
			actions: []Action{Press(keyA), Press(keyB), Release(keyB), Release(keyA)},
			want:    []Note{Some(keyA), Some(keyB), Some(keyA), None},
		},
		{
			name:    "A B, release A then B",
			actions: []Action{Press(keyA), Press(keyB), Release(keyA), Release(keyB)},
			want:    []Note{Some(keyA), Some(keyB), Some(keyB), None},
		},
		{
			name:    "A then B, no overlap",
			actions: []Action{Press(keyA), Release(keyA), Press(keyB), Release(keyB)},
			want:    []Note{Some(keyA), None, Some(keyB), None},
		},
		{
			name:    "B A, release A then B",
			actions: []Action{Press(keyB), Press(keyA), Release(keyA), Release(keyB)},
			want:    []Note{Some(keyB), Some(keyA), Some(keyB), None},
		},
		{
			name:    "B A, release B then A",
			actions: []Action{Press(keyB), Press(keyA), Release(keyB), Release(keyA)},
			want:    []Note{Some(keyB), Some(keyA), Some(keyA), None},
		},
		{
			name:    "B then A, no overlap",
			actions: []Action{Press(keyB), Release(keyB), Press(keyA), Release(keyA)},
			want:    []Note{Some(keyB), None, Some(keyA), None},
		},
		{
			name:    "re-press of a held key makes it active again",
			actions: []Action{Press(keyA), Press(keyB), Press(keyA), Release(keyA)},
			want:    []Note{Some(keyA), Some(keyB), Some(keyA), Some(keyB)},
		},
		{
			name:    "double press needs a single release",
			actions: []Action{Press(keyA), Press(keyA), Release(keyA)},
			want:    []Note{Some(keyA), Some(keyA), None},
		},
		{
			name:    "release of a key never pressed",
			actions: []Action{Release(keyA), Press(keyB), Release(keyA)},
			want:    []Note{None, Some(keyB), Some(keyB)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := NewState()
			for i, a := range tt.actions {
				if got := st.Apply(a); got != tt.want[i] {
					t.Errorf("step %d %v: got %v, want %v", i, a, got, tt.want[i])
				}
			}
		})
	}
}

func TestState_Overflow(t *testing.T) {
	t.Parallel()

	st := NewState()
	for k := range int32(MaxHeld + 1) {
		st.Apply(Press(k))
	}
	if st.Held() != MaxHeld {
		t.Fatalf("Held() = %d, want %d", st.Held(), MaxHeld)
	}
	if got := st.Active(); got != Some(MaxHeld) {
		t.Fatalf("Active() = %v, want %v", got, Some(MaxHeld))
	}

	// Key 0 was forgotten, so releasing 16..1 ends with nothing held.
	for k := int32(MaxHeld); k >= 1; k-- {
		got := st.Apply(Release(k))
		want := Some(k - 1)
		if k == 1 {
			want = None
		}
		if got != want {
			t.Fatalf("release %d: got %v, want %v", k, got, want)
		}
	}
}

func TestState_Reset(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Apply(Press(keyA))
	st.Apply(Press(keyB))
	st.Reset()

	if got := st.Active(); got != None {
		t.Errorf("Active() after Reset = %v, want %v", got, None)
	}
	if got := st.Apply(Release(keyB)); got != None {
		t.Errorf("release after Reset = %v, want %v", got, None)
	}
}

// TestState_Deterministic replays the same random history on two fresh
// states and expects identical results at every step.
func TestState_Deterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	actions := make([]Action, 2000)
	for i := range actions {
		actions[i] = Action{Key: int32(rng.IntN(24)), Pressed: rng.IntN(2) == 0}
	}

	first, second := NewState(), NewState()
	for i, a := range actions {
		x, y := first.Apply(a), second.Apply(a)
		if x != y {
			t.Fatalf("step %d %v: %v != %v", i, a, x, y)
		}
	}
}

func TestNote_Get(t *testing.T) {
	t.Parallel()

	if k, ok := Some(60).Get(); !ok || k != 60 {
		t.Errorf("Some(60).Get() = (%d, %v), want (60, true)", k, ok)
	}
	if _, ok := None.Get(); ok {
		t.Error("None.Get() reported a held note")
	}
	if (Note{}) != None {
		t.Error("zero Note is not None")
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	if got := Press(60).String(); got != "press(60)" {
		t.Errorf("Press(60).String() = %q", got)
	}
	if got := Release(61).String(); got != "release(61)" {
		t.Errorf("Release(61).String() = %q", got)
	}
	if got := None.String(); got != "none" {
		t.Errorf("None.String() = %q", got)
	}
}

func TestState_Apply_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	st := NewState()
	allocs := testing.AllocsPerRun(1000, func() {
		st.Apply(Press(keyA))
		st.Apply(Press(keyB))
		st.Apply(Release(keyA))
		st.Apply(Release(keyB))
	})

	if allocs > 0 {
		t.Errorf("Apply allocated %v times, want 0", allocs)
	}
}

func BenchmarkState_Apply(b *testing.B) {
	st := NewState()

	b.ReportAllocs()

	for i := range b.N {
		st.Apply(Action{Key: int32(i % 12), Pressed: i%3 != 0})
	}
}
