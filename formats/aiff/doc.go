// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Signed integer samples of 8, 16, 24 and 32 bits are supported in any
// channel layout. The sample-frame count from the COMM chunk is exposed
// through audio.Sized so loaders can allocate once.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another decoder
//	}
package aiff
