// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/sndpool/internal/audiotest"
)

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     Source
		bufSize int
		wantLen int
	}{
		{name: "mono", src: audiotest.NewConstantSource(8000, 1, 1000, 0.5), bufSize: 64, wantLen: 1000},
		{name: "stereo sized", src: audiotest.NewConstantSource(8000, 2, 1000, 0.5).Sized(), bufSize: 64, wantLen: 2000},
		{name: "buffer not a frame multiple", src: audiotest.NewConstantSource(8000, 3, 100, 0.5), bufSize: 10, wantLen: 300},
		{name: "zero buffer", src: audiotest.NewConstantSource(8000, 2, 5000, 0.5), bufSize: 0, wantLen: 10000},
		{name: "empty", src: audiotest.NewSilentSource(8000, 1, 0), bufSize: 64, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadAll(tt.src, tt.bufSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  Source
		want error
	}{
		{name: "source failure", src: audiotest.NewFailingSource(8000, 1, 100), want: audiotest.ErrSourceFailed},
		{name: "no channels", src: audiotest.NewSilentSource(8000, 0, 10), want: ErrNoChannels},
		{name: "stalled", src: stalledSource{}, want: io.ErrNoProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadAll(tt.src, 32)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadAll() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("ReadAll() returned %d samples on error", len(got))
			}
		})
	}
}

func TestReadAll_PreallocatesSizedSources(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 4096).Sized()
	got, err := ReadAll(src, 512)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if cap(got) != len(got) {
		t.Errorf("cap = %d, len = %d; want a single exact allocation", cap(got), len(got))
	}
}

// lyingSource reports a length far beyond what it produces.
type lyingSource struct {
	*audiotest.MockSource
	frames int64
}

func (l lyingSource) TotalFrames() int64 { return l.frames }

func TestReadAll_HugeLengthHint(t *testing.T) {
	t.Parallel()

	for _, frames := range []int64{math.MaxInt64, math.MaxInt64 / 2, 1 << 40} {
		src := lyingSource{MockSource: audiotest.NewConstantSource(8000, 2, 100, 0.5), frames: frames}

		got, err := ReadAll(src, 64)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != 200 {
			t.Errorf("hint %d: len = %d, want 200", frames, len(got))
		}
		if cap(got) > maxPreallocFrames*2 {
			t.Errorf("hint %d: cap = %d, want at most %d", frames, cap(got), maxPreallocFrames*2)
		}
	}
}

func TestReadAll_GrowsPastPreallocation(t *testing.T) {
	t.Parallel()

	src := lyingSource{MockSource: audiotest.NewSilentSource(8000, 1, 3000), frames: 10}
	got, err := ReadAll(src, 512)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 3000 {
		t.Errorf("len = %d, want 3000", len(got))
	}
}
