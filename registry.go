// SPDX-License-Identifier: EPL-2.0

package sndpool

import (
	"github.com/ik5/sndpool/audio"
	"github.com/ik5/sndpool/formats/aiff"
	"github.com/ik5/sndpool/formats/mp3"
	"github.com/ik5/sndpool/formats/vorbis"
	"github.com/ik5/sndpool/formats/wav"
	"github.com/ik5/sndpool/sound"
)

// NewRegistry returns a registry with every built-in decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

// LoadSound decodes the file at path into a stereo sound at rate.
func LoadSound(path string, rate int) (*sound.Sound, error) {
	return sound.Open(NewRegistry(), path, rate)
}
