// SPDX-License-Identifier: EPL-2.0

package scheduler

import (
	"errors"
	"testing"
)

func TestPan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		x, width    float64
		left, right float64
		wantErr     error
	}{
		{name: "left edge", x: 0, width: 800, left: 1, right: 0},
		{name: "quarter", x: 200, width: 800, left: 0.75, right: 0.25},
		{name: "center", x: 400, width: 800, left: 0.5, right: 0.5},
		{name: "right edge", x: 800, width: 800, left: 0, right: 1},
		{name: "off screen left", x: -50, width: 800, left: 1, right: 0},
		{name: "off screen right", x: 801, width: 800, left: 0, right: 1},
		{name: "zero width", x: 10, width: 0, wantErr: ErrInvalidWidth},
		{name: "negative width", x: 10, width: -1, wantErr: ErrInvalidWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			left, right, err := Pan(tt.x, tt.width)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pan(%v, %v) error = %v, want %v", tt.x, tt.width, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if left != tt.left || right != tt.right {
				t.Errorf("Pan(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.width, left, right, tt.left, tt.right)
			}
		})
	}
}

func TestNormalizeVolume(t *testing.T) {
	t.Parallel()

	tests := map[float64]float64{
		-0.5: 1,
		0:    0,
		0.25: 0.25,
		1:    1,
		1.5:  1,
	}
	for in, want := range tests {
		if got := normalizeVolume(in); got != want {
			t.Errorf("normalizeVolume(%v) = %v, want %v", in, got, want)
		}
	}
}
