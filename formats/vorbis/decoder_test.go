// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/sndpool/audio"
)

// sliceReader mimics oggvorbis.Reader: it returns whole frames, counts
// values and reports io.EOF once drained.
type sliceReader struct {
	channels int
	data     []float32
	err      error
}

func (r *sliceReader) Read(p []float32) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p)%r.channels != 0 {
		return 0, errors.New("buffer is not a whole number of frames")
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4, 0.5, -0.5}
	src := &source{dec: &sliceReader{channels: 2, data: data}, sampleRate: 44100, channels: 2, frames: 5}

	got, err := audio.ReadAll(src, 4)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("decoded %d values, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestSource_TrimsPartialFrames(t *testing.T) {
	t.Parallel()

	src := &source{dec: &sliceReader{channels: 3, data: make([]float32, 30)}, sampleRate: 8000, channels: 3}

	n, err := src.ReadSamples(make([]float32, 7))
	if err != nil || n != 6 {
		t.Errorf("ReadSamples(7) = (%d, %v), want (6, nil)", n, err)
	}

	n, err = src.ReadSamples(make([]float32, 2))
	if err != nil || n != 0 {
		t.Errorf("ReadSamples(2) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := &source{dec: &sliceReader{channels: 1, err: boom}, sampleRate: 8000, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &sliceReader{channels: 1}, sampleRate: 48000, channels: 1, frames: -1}
	if src.SampleRate() != 48000 || src.Channels() != 1 || src.TotalFrames() != -1 {
		t.Errorf("metadata = %d Hz / %d ch / %d frames", src.SampleRate(), src.Channels(), src.TotalFrames())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg Vorbis data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want failure", data)
		}
	}
}
