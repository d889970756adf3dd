// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming primitives every decoded sound passes
// through before it reaches the mixer.
//
// A Source yields interleaved float32 samples in [-1, 1]. Decoders in the
// formats packages produce Sources; Resampler and StereoMixer wrap them; and
// ReadAll drains the result into memory:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	pcm := audio.NewStereoMixer(audio.NewResampler(src, 48000))
//	samples, err := audio.ReadAll(pcm, 4096)
//
// # Length hints
//
// Sources that know their length up front implement Sized. The wrappers in
// this package forward the hint, scaled for the new rate, so ReadAll can
// allocate once.
//
// # Format registry
//
// A Registry maps file extensions to decoders. Keys are case-insensitive
// and ignore a leading dot:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.Lookup("sounds/Laser.WAV")
//
// # End of stream
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly along
// with the final samples. Any other error is a failure of the source.
package audio
