// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Samples come out as float32 already, so no conversion takes place. Music
// tracks are usually shipped in this format.
//
//	f, _ := os.Open("theme.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
