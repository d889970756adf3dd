// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files and writes 16-bit ones.
//
// Decoding goes through github.com/go-audio/wav and accepts 8, 16, 24 and
// 32-bit integer data in any channel layout. Floating-point and compressed
// files are rejected with ErrUnsupportedEncoding.
//
//	src, err := wav.Decoder{}.Decode(f)
//
// WriteWAV16 and WriteFloat32 produce a canonical 44-byte header followed
// by the samples. They only need an io.Writer, so the output can go to a
// pipe.
package wav
