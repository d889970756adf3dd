// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/sndpool/audio"
	"github.com/ik5/sndpool/internal/audiotest"
)

func ExampleNewResampler() {
	// One second of a 440 Hz tone at 44.1 kHz.
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	resampler := audio.NewResampler(source, 16000)

	buf := make([]float32, 4096)
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Printf("%d Hz, %d samples\n", resampler.SampleRate(), total)
	// Output:
	// 16000 Hz, 16000 samples
}

func ExampleNewStereoMixer() {
	mono := audiotest.NewConstantSource(22050, 1, 4, 0.5)
	stereo := audio.NewStereoMixer(mono)

	buf := make([]float32, 8)
	n, _ := stereo.ReadSamples(buf)

	fmt.Println(stereo.Channels(), buf[:n])
	// Output:
	// 2 [0.5 0.5 0.5 0.5 0.5 0.5 0.5 0.5]
}

func ExampleReadAll() {
	// Quarter of a second of 22.05 kHz mono, ready for a 48 kHz stereo mixer.
	source := audiotest.NewSineSource(22050, 1, 22050/4, 440.0).Sized()
	pipeline := audio.NewStereoMixer(audio.NewResampler(source, 48000))

	samples, err := audio.ReadAll(pipeline, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(samples)/2, "frames")
	// Output:
	// 12000 frames
}

type silentDecoder struct{}

func (silentDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(8000, 1, 8000), nil
}

func ExampleRegistry() {
	reg := audio.NewRegistry()
	reg.Register("wav", silentDecoder{})
	reg.Register(".AIFF", silentDecoder{})

	fmt.Println(reg.Formats())

	if _, err := reg.Lookup("sounds/Laser.WAV"); err == nil {
		fmt.Println("wav: ok")
	}
	if _, err := reg.Lookup("theme.flac"); err != nil {
		fmt.Println("flac:", err)
	}
	// Output:
	// [aiff wav]
	// wav: ok
	// flac: no decoder registered for format
}
