// SPDX-License-Identifier: EPL-2.0

// Command sndpool inspects sound files and plays configured sound pools,
// either live on the audio device or rendered offline to a WAV file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sndpool:", err)
		os.Exit(1)
	}
}
