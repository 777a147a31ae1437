// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/keysynth/audio"
	"github.com/ik5/keysynth/keys"
)

const tolerance = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestDefault(t *testing.T) {
	t.Parallel()

	const rate = 44100.0
	for i := range 64 {
		elapsed := float64(i) / rate
		want := math.Sin(elapsed * 440 * 2 * math.Pi)

		// The default ignores the note entirely.
		for _, note := range []keys.Note{keys.None, keys.Some(60)} {
			if got := Default(elapsed, 1/rate, note); got != want {
				t.Fatalf("Default(%v, %v) = %v, want %v", elapsed, note, got, want)
			}
		}
	}
}

func TestNoteFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  int32
		want float64
	}{
		{key: 69, want: 440},
		{key: 81, want: 880},
		{key: 57, want: 220},
		{key: 60, want: 261.6255653005986},
	}

	for _, tt := range tests {
		if got := NoteFrequency(tt.key); !near(got, tt.want, 1e-9) {
			t.Errorf("NoteFrequency(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestWaveforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		wave  Waveform
		phase float64
		want  float64
	}{
		{"sine zero", Sine, 0, 0},
		{"sine quarter", Sine, 0.25, 1},
		{"square first half", Square, 0.1, 1},
		{"square second half", Square, 0.6, -1},
		{"saw start", Saw, 0, -1},
		{"saw middle", Saw, 0.5, 0},
		{"triangle start", Triangle, 0, -1},
		{"triangle peak", Triangle, 0.5, 1},
		{"triangle quarter", Triangle, 0.25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.wave(tt.phase); !near(got, tt.want, tolerance) {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.phase, got, tt.want)
			}
		})
	}
}

func TestTone(t *testing.T) {
	t.Parallel()

	f := Tone(Sine)

	if got := f(0.123, 0, keys.None); got != 0 {
		t.Errorf("Tone without note = %v, want 0", got)
	}

	// A quarter period of A4 is the sine peak.
	if got := f(1.0/(4*440), 0, keys.Some(69)); !near(got, 1, 1e-9) {
		t.Errorf("Tone(A4) at quarter period = %v, want 1", got)
	}
	// The same instant an octave up is half a period: a zero crossing.
	if got := f(1.0/(4*440), 0, keys.Some(81)); !near(got, 0, 1e-9) {
		t.Errorf("Tone(A5) at quarter A4 period = %v, want 0", got)
	}
}

func TestFixed(t *testing.T) {
	t.Parallel()

	f := Fixed(Square, 100)
	if got := f(0.001, 0, keys.None); got != 1 {
		t.Errorf("Fixed square first half = %v, want 1", got)
	}
	if got := f(0.006, 0, keys.Some(1)); got != -1 {
		t.Errorf("Fixed square second half = %v, want -1", got)
	}
}

func TestNoise(t *testing.T) {
	t.Parallel()

	a, b := Noise(42), Noise(42)
	for i := range 1000 {
		x := a(0, 0, keys.Some(60))
		if x < -1 || x >= 1 {
			t.Fatalf("sample %d = %v out of range", i, x)
		}
		if y := b(0, 0, keys.Some(60)); x != y {
			t.Fatalf("sample %d differs between equal seeds: %v != %v", i, x, y)
		}
	}
	if got := a(0, 0, keys.None); got != 0 {
		t.Errorf("Noise without note = %v, want 0", got)
	}
}

func TestGainAndMix(t *testing.T) {
	t.Parallel()

	one := Func(func(float64, float64, keys.Note) float64 { return 1 })
	neg := Func(func(float64, float64, keys.Note) float64 { return -0.5 })

	if got := Gain(one, 0.25)(0, 0, keys.None); got != 0.25 {
		t.Errorf("Gain = %v, want 0.25", got)
	}
	if got := Mix(one, neg)(0, 0, keys.None); got != 0.25 {
		t.Errorf("Mix = %v, want 0.25", got)
	}
	if got := Mix()(0, 0, keys.None); got != 0 {
		t.Errorf("empty Mix = %v, want 0", got)
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		f, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%q) error = %v", name, err)
			continue
		}
		if f == nil {
			t.Errorf("ByName(%q) returned nil", name)
		}
	}

	if _, err := ByName("theremin"); !errors.Is(err, ErrUnknownProcessor) {
		t.Errorf("ByName(theremin) error = %v, want %v", err, ErrUnknownProcessor)
	}

	want := []string{"default", "noise", "saw", "sine", "square", "triangle"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func rampClip() *audio.Clip {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = float32(i) / 100
	}
	return &audio.Clip{SampleRate: 100, Samples: samples}
}

func TestSampler_RestartsOnNewNote(t *testing.T) {
	t.Parallel()

	f := Sampler(rampClip(), 60)

	if got := f(0, 0.01, keys.None); got != 0 {
		t.Fatalf("no note = %v, want 0", got)
	}

	// Note starts at t=0.5; the clip starts at its first sample.
	if got := f(0.5, 0.01, keys.Some(60)); !near(got, 0, 1e-6) {
		t.Errorf("note on = %v, want 0", got)
	}
	if got := f(0.7, 0.01, keys.Some(60)); !near(got, 0.2, 1e-6) {
		t.Errorf("0.2 s into note = %v, want 0.2", got)
	}

	// A different note restarts the clip.
	if got := f(0.8, 0.01, keys.Some(60+12)); !near(got, 0, 1e-6) {
		t.Errorf("new note = %v, want 0", got)
	}
	// An octave up plays twice as fast.
	if got := f(0.9, 0.01, keys.Some(60+12)); !near(got, 0.2, 1e-6) {
		t.Errorf("0.1 s into octave-up note = %v, want 0.2", got)
	}

	// Release and press the same key again restarts too.
	f(1.0, 0.01, keys.None)
	if got := f(1.1, 0.01, keys.Some(60+12)); !near(got, 0, 1e-6) {
		t.Errorf("re-pressed note = %v, want 0", got)
	}
}

func TestSampler_AnyClipRate(t *testing.T) {
	t.Parallel()

	// The same ramp at 50 Hz takes twice as long to reach the same value.
	clip := rampClip()
	clip.SampleRate = 50
	f := Sampler(clip, 60)

	f(0, 1.0/48000, keys.Some(60))
	if got := f(0.4, 1.0/48000, keys.Some(60)); !near(got, 0.2, 1e-6) {
		t.Errorf("0.4 s into a 50 Hz clip = %v, want 0.2", got)
	}
}

func TestSampler_SameNoteKeepsPlaying(t *testing.T) {
	t.Parallel()

	f := Sampler(rampClip(), 60)
	f(0, 0.01, keys.Some(60))

	// A release and re-press inside one buffer never reach the sampler:
	// it sees the note held throughout.
	if got := f(0.3, 0.01, keys.Some(60)); !near(got, 0.3, 1e-6) {
		t.Errorf("held note = %v, want 0.3", got)
	}
}

func TestSampler_SilentAfterEnd(t *testing.T) {
	t.Parallel()

	f := Sampler(rampClip(), 60)
	f(0, 0.01, keys.Some(60))

	if got := f(5, 0.01, keys.Some(60)); got != 0 {
		t.Errorf("after clip end = %v, want 0", got)
	}
}

func TestFuncs_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	fs := []Func{Default, Tone(Saw), Noise(3), Gain(Tone(Sine), 0.5), Sampler(rampClip(), 60)}
	var sum float64

	for _, f := range fs {
		allocs := testing.AllocsPerRun(100, func() {
			for i := range 256 {
				sum += f(float64(i)/44100, 1.0/44100, keys.Some(62))
			}
		})
		if allocs > 0 {
			t.Errorf("processor allocated %v times per buffer, want 0", allocs)
		}
	}
	_ = sum
}

func BenchmarkTone(b *testing.B) {
	f := Tone(Triangle)
	var sum float64

	b.ReportAllocs()

	for i := range b.N {
		sum += f(float64(i)/48000, 1.0/48000, keys.Some(60))
	}
	_ = sum
}
