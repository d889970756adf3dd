// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/sndpool/internal/audiotest"
)

// stalledSource never produces samples and never ends.
type stalledSource struct{}

func (stalledSource) SampleRate() int                    { return 22050 }
func (stalledSource) Channels() int                      { return 1 }
func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }
func (stalledSource) BufSize() int                       { return 1024 }
func (stalledSource) Close() error                       { return nil }

func drain(t testing.TB, src Source, bufSize int) []float32 {
	t.Helper()

	samples, err := ReadAll(src, bufSize)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return samples
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 1000)
	r := NewResampler(src, 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if r.BufSize() != src.BufSize() {
		t.Errorf("BufSize() = %d, want %d", r.BufSize(), src.BufSize())
	}
}

func TestResampler_SameRatePassesThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 100, func(i, _ int) float32 { return float32(i) / 100 })
	samples := drain(t, NewResampler(src, 8000), 64)

	if len(samples) != 100 {
		t.Fatalf("len = %d, want 100", len(samples))
	}
	for i, v := range samples {
		if v != float32(i)/100 {
			t.Fatalf("samples[%d] = %v, want %v", i, v, float32(i)/100)
		}
	}
}

func TestResampler_FrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		srcRate, dstRate int
		channels, frames int
		want             int
	}{
		{name: "44.1k to 16k", srcRate: 44100, dstRate: 16000, channels: 1, frames: 44100, want: 16000},
		{name: "44.1k to 8k", srcRate: 44100, dstRate: 8000, channels: 1, frames: 44100, want: 8000},
		{name: "8k to 16k", srcRate: 8000, dstRate: 16000, channels: 1, frames: 100, want: 200},
		{name: "22.05k to 44.1k stereo", srcRate: 22050, dstRate: 44100, channels: 2, frames: 22050, want: 44100},
		{name: "48k to 44.1k", srcRate: 48000, dstRate: 44100, channels: 2, frames: 48000, want: 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			samples := drain(t, NewResampler(src, tt.dstRate), 4096)

			if got := len(samples) / tt.channels; got != tt.want {
				t.Errorf("frames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResampler_ConstantSignalIsPreserved(t *testing.T) {
	t.Parallel()

	for _, dstRate := range []int{8000, 22050, 96000} {
		src := audiotest.NewMockSource(44100, 2, 4410, func(_, ch int) float32 {
			if ch == 0 {
				return 0.25
			}
			return -0.5
		})

		samples := drain(t, NewResampler(src, dstRate), 1024)
		for i, v := range samples {
			want := float32(0.25)
			if i%2 == 1 {
				want = -0.5
			}
			if math.Abs(float64(v-want)) > 1e-5 {
				t.Fatalf("dstRate %d: samples[%d] = %v, want %v", dstRate, i, v, want)
			}
		}
	}
}

func TestResampler_SineKeepsAmplitude(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 1, 44100, 440)
	samples := drain(t, NewResampler(src, 16000), 4096)

	var peak float64
	for _, v := range samples {
		peak = max(peak, math.Abs(float64(v)))
	}
	if peak < 0.8 || peak > 1.05 {
		t.Errorf("peak = %v, want close to 1", peak)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 16000)
	buf := make([]float32, 64)

	for range 2 {
		n, err := r.ReadSamples(buf)
		if n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
		}
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1, 0.75)
	samples := drain(t, NewResampler(src, 16000), 16)

	if len(samples) != 2 {
		t.Fatalf("len = %d, want 2", len(samples))
	}
	for i, v := range samples {
		if math.Abs(float64(v-0.75)) > 1e-6 {
			t.Errorf("samples[%d] = %v, want 0.75", i, v)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewFailingSource(44100, 1, 500)
	_, err := ReadAll(NewResampler(src, 16000), 256)
	if !errors.Is(err, audiotest.ErrSourceFailed) {
		t.Errorf("ReadAll() error = %v, want ErrSourceFailed", err)
	}
}

func TestResampler_NoProgress(t *testing.T) {
	t.Parallel()

	r := NewResampler(stalledSource{}, 44100)
	if _, err := r.ReadSamples(make([]float32, 16)); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadSamples() error = %v, want io.ErrNoProgress", err)
	}
}

func TestResampler_TotalFrames(t *testing.T) {
	t.Parallel()

	sized := NewResampler(audiotest.NewSilentSource(44100, 1, 44100).Sized(), 16000)
	if got := sized.TotalFrames(); got != 16000 {
		t.Errorf("TotalFrames() = %d, want 16000", got)
	}

	unsized := NewResampler(audiotest.NewSilentSource(44100, 1, 44100), 16000)
	if got := unsized.TotalFrames(); got != -1 {
		t.Errorf("TotalFrames() = %d, want -1", got)
	}
}

func TestResampler_CloseForwards(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 10)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("source was not closed")
	}
}

func TestResampler_SteadyStateAllocs(t *testing.T) {
	src := audiotest.NewSineSource(44100, 2, math.MaxInt32, 440)
	r := NewResampler(src, 16000)
	buf := make([]float32, 2048)

	allocs := testing.AllocsPerRun(100, func() {
		if _, err := r.ReadSamples(buf); err != nil {
			t.Fatal(err)
		}
	})
	if allocs > 0 {
		t.Errorf("ReadSamples allocates %v times per call", allocs)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.NewSineSource(48000, 2, math.MaxInt32, 440)
	r := NewResampler(src, 22050)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		r.ReadSamples(buf)
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	src := audiotest.NewSineSource(22050, 2, math.MaxInt32, 440)
	r := NewResampler(src, 48000)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		r.ReadSamples(buf)
	}
}

func TestResampler_TotalFramesOverflow(t *testing.T) {
	t.Parallel()

	src := lyingSource{MockSource: audiotest.NewSilentSource(8000, 1, 10), frames: math.MaxInt64 / 3}
	if got := NewResampler(src, 48000).TotalFrames(); got != -1 {
		t.Errorf("TotalFrames() = %d, want -1 when scaling overflows", got)
	}
	if got := NewResampler(src, 8000).TotalFrames(); got != math.MaxInt64/3 {
		t.Errorf("pass-through TotalFrames() = %d, want the hint", got)
	}
}
