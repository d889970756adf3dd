// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/sndpool/audio"
)

// extended44100 is 44100 as an 80-bit IEEE 754 extended float, the way the
// COMM chunk stores the sample rate.
var extended44100 = [10]byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}

// buildAIFF assembles a minimal FORM/AIFF file with COMM and SSND chunks.
func buildAIFF(channels, bitDepth int, samples []int16) []byte {
	var comm bytes.Buffer
	binary.Write(&comm, binary.BigEndian, uint16(channels))
	binary.Write(&comm, binary.BigEndian, uint32(len(samples)/channels))
	binary.Write(&comm, binary.BigEndian, uint16(bitDepth))
	comm.Write(extended44100[:])

	var ssnd bytes.Buffer
	binary.Write(&ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(&ssnd, binary.BigEndian, uint32(0)) // block size
	for _, s := range samples {
		binary.Write(&ssnd, binary.BigEndian, s)
	}

	var body bytes.Buffer
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(&body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(&body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	var file bytes.Buffer
	file.WriteString("FORM")
	binary.Write(&file, binary.BigEndian, uint32(body.Len()))
	file.Write(body.Bytes())
	return file.Bytes()
}

type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 8192}

	for _, seekable := range []bool{true, false} {
		var r io.Reader = bytes.NewReader(buildAIFF(2, 16, samples))
		if !seekable {
			r = onlyReader{r}
		}

		src, err := Decoder{}.Decode(r)
		if err != nil {
			t.Fatalf("Decode(seekable=%v) error = %v", seekable, err)
		}
		if src.SampleRate() != 44100 || src.Channels() != 2 {
			t.Errorf("format = %d Hz / %d ch, want 44100 / 2", src.SampleRate(), src.Channels())
		}
		if sized, ok := src.(audio.Sized); !ok || sized.TotalFrames() != 3 {
			t.Errorf("length hint missing or wrong: %v", src)
		}

		got, err := audio.ReadAll(src, 64)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != len(samples) {
			t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
		}
		for i, s := range samples {
			if want := float32(s) / 32768; got[i] != want {
				t.Errorf("sample %d = %v, want %v", i, got[i], want)
			}
		}
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "text", data: []byte("This is not AIFF data")},
		{name: "riff", data: []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}
