// SPDX-License-Identifier: EPL-2.0

// Package sndpool plays many short sounds on a small, fixed set of mixer
// channels.
//
// Requests are assigned to channels round-robin by the scheduler package.
// When the next channel is still busy the request is dropped and any
// low-priority copies of the same sound are cut, so a burst of identical
// effects never floods the mix.
//
// The root package ties the pieces together:
//
//	cfg, _ := config.Load("sndpool.yaml")
//	sys, _ := sndpool.NewSystem(ctx, cfg)
//	defer sys.Close()
//
//	out, _ := device.Open(sys.Mixer(), cfg.Mixer.BufferMS, nil)
//	defer out.Close()
//
//	sys.Trigger("laser")
//	for sys.Playing() {
//		time.Sleep(10 * time.Millisecond)
//		sys.Tick()
//	}
//
// # Formats
//
// NewRegistry knows WAV and AIFF (go-audio), MP3 (go-mp3) and Ogg Vorbis
// (oggvorbis). Every sound is decoded once, resampled to the mixer rate and
// folded to stereo before it is played.
package sndpool
