// SPDX-License-Identifier: EPL-2.0

// Package device plays a stereo audio.Source on the system output through
// oto. Build with the headless tag to drop the dependency on a sound
// server; Open then returns ErrNoDevice.
package device
