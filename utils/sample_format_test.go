// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat64ToUint16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  uint16
	}{
		{name: "minimum", input: -1.0, want: 0},
		{name: "zero", input: 0.0, want: 32767}, // 0.5 * 65535 = 32767.5, truncated
		{name: "maximum", input: 1.0, want: math.MaxUint16},
		{name: "half positive", input: 0.5, want: 49151}, // 0.75 * 65535 = 49151.25
		{name: "half negative", input: -0.5, want: 16383}, // 0.25 * 65535 = 16383.75
		{name: "clamp over max", input: 1.5, want: math.MaxUint16},
		{name: "clamp under min", input: -7, want: 0},
		{name: "not a number", input: math.NaN(), want: 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float64ToUint16(tt.input); got != tt.want {
				t.Errorf("Float64ToUint16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat64ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "minimum", input: -1.0, want: 0},
		{name: "zero", input: 0.0, want: 16383}, // 0.5 * 32767 = 16383.5
		{name: "maximum", input: 1.0, want: math.MaxInt16},
		{name: "clamp over max", input: 2, want: math.MaxInt16},
		{name: "clamp under min", input: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float64ToInt16(tt.input); got != tt.want {
				t.Errorf("Float64ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat64ToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input float64
		want  uint8
	}{
		{input: -1.0, want: 0},
		{input: 0.0, want: 127}, // 127.5 truncated
		{input: 1.0, want: math.MaxUint8},
		{input: 3.0, want: math.MaxUint8},
	}

	for _, tt := range tests {
		if got := Float64ToUint8(tt.input); got != tt.want {
			t.Errorf("Float64ToUint8(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFloat64ToFloat32(t *testing.T) {
	t.Parallel()

	// Floating output is a plain cast: no scaling, no clamping.
	for _, v := range []float64{-1.5, -1, -0.25, 0, 0.25, 1, 1.5} {
		if got := Float64ToFloat32(v); got != float32(v) {
			t.Errorf("Float64ToFloat32(%v) = %v, want %v", v, got, float32(v))
		}
	}
}

// TestIntegerConversions_Monotonic checks that every integer mapping preserves
// ordering across the whole unit range.
func TestIntegerConversions_Monotonic(t *testing.T) {
	t.Parallel()

	prevU8, prevU16, prevI16 := Float64ToUint8(-1), Float64ToUint16(-1), Float64ToInt16(-1)

	for f := -0.999; f <= 1.0; f += 0.001 {
		u8, u16, i16 := Float64ToUint8(f), Float64ToUint16(f), Float64ToInt16(f)
		if u8 < prevU8 || u16 < prevU16 || i16 < prevI16 {
			t.Fatalf("not monotonic at %v: u8 %d<%d u16 %d<%d i16 %d<%d",
				f, u8, prevU8, u16, prevU16, i16, prevI16)
		}
		prevU8, prevU16, prevI16 = u8, u16, i16
	}
}

func BenchmarkFloat64ToUint16(b *testing.B) {
	var result uint16
	input := 0.5

	b.ReportAllocs()

	for range b.N {
		result = Float64ToUint16(input)
	}

	_ = result
}

// TestConversions_ZeroAllocs verifies no heap allocations
func TestConversions_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	buf := make([]float64, 1024)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.1)
	}

	var (
		u8  uint8
		u16 uint16
		i16 int16
		f32 float32
	)
	allocs := testing.AllocsPerRun(100, func() {
		for _, v := range buf {
			u8 = Float64ToUint8(v)
			u16 = Float64ToUint16(v)
			i16 = Float64ToInt16(v)
			f32 = Float64ToFloat32(v)
		}
	})

	if allocs > 0 {
		t.Errorf("conversions allocated %v times, want 0", allocs)
	}
	_, _, _, _ = u8, u16, i16, f32
}
