// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// build8kAIFF assembles a minimal 16-bit AIFF at 8000 Hz.
func build8kAIFF(channels int, samples []int16) []byte {
	data := new(bytes.Buffer)
	for _, s := range samples {
		_ = binary.Write(data, binary.BigEndian, s)
	}

	comm := new(bytes.Buffer)
	_ = binary.Write(comm, binary.BigEndian, int16(channels))
	_ = binary.Write(comm, binary.BigEndian, uint32(len(samples)/channels))
	_ = binary.Write(comm, binary.BigEndian, int16(16))
	// 8000 as an 80-bit IEEE extended float.
	comm.Write([]byte{0x40, 0x0B, 0xFA, 0, 0, 0, 0, 0, 0, 0})

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	_ = binary.Write(out, binary.BigEndian, uint32(4+8+comm.Len()+8+8+data.Len()))
	out.WriteString("AIFF")

	out.WriteString("COMM")
	_ = binary.Write(out, binary.BigEndian, uint32(comm.Len()))
	out.Write(comm.Bytes())

	out.WriteString("SSND")
	_ = binary.Write(out, binary.BigEndian, uint32(8+data.Len()))
	_ = binary.Write(out, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(out, binary.BigEndian, uint32(0)) // block size
	out.Write(data.Bytes())

	return out.Bytes()
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, -16384, -32768}
	src, err := Decoder{}.Decode(bytes.NewReader(build8kAIFF(2, in)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	var got []float32
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0, 0.5, -0.5, -1}
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", nil},
		{"wav magic", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotAiffFile)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := build8kAIFF(1, []int16{1, 2, 3, 4})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	if errors.Is(ErrNotAiffFile, ErrUnsupportedAiffLayout) {
		t.Error("ErrNotAiffFile matches ErrUnsupportedAiffLayout")
	}
}

func BenchmarkDecoder_ReadSamples(b *testing.B) {
	data := build8kAIFF(2, make([]int16, 16000))
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
