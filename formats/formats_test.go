// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/keysynth/audio"
	"github.com/ik5/keysynth/formats/wav"
)

func TestNewRegistry_Formats(t *testing.T) {
	t.Parallel()

	got := NewRegistry().Formats()
	slices.Sort(got)

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestNewRegistry_DecodeFileToClip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Kick.WAV")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]int16, 800)
	for i := range samples {
		samples[i] = int16(i * 40)
	}
	if err := wav.Encode(f, 8000, 1, samples); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := NewRegistry().DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	clip, err := audio.LoadClip(src, 16000)
	if err != nil {
		t.Fatalf("LoadClip() error = %v", err)
	}
	if clip.SampleRate != 16000 {
		t.Errorf("clip rate = %d, want 16000", clip.SampleRate)
	}
	// 800 samples at 8 kHz upsampled to 16 kHz: (800-1)*2+1.
	if len(clip.Samples) != 1599 {
		t.Errorf("clip length = %d, want 1599", len(clip.Samples))
	}
}
