// SPDX-License-Identifier: EPL-2.0

package scheduler

// Pan splits a horizontal position into left and right gains relative to
// width. Positions left of the screen play fully left and positions right
// of it fully right; in between the split is linear.
func Pan(x, width float64) (left, right float64, err error) {
	if width <= 0 {
		return 0, 0, ErrInvalidWidth
	}

	switch {
	case x < 0:
		return 1, 0, nil
	case x > width:
		return 0, 1, nil
	}

	right = x / width
	return 1 - right, right, nil
}
