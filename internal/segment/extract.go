package segment

import (
	"errors"
	"fmt"
)

// ErrWorklistExhausted is returned by Extract when a flood fill needs more
// pending pixels than the configured limit.
var ErrWorklistExhausted = errors.New("flood fill worklist exhausted")

// Extract groups the foreground pixels of img into 8-connected components.
//
// Seeds are taken column by column: x ascending, then y ascending within each
// column. Each seed starts a flood fill driven by an explicit stack. A pixel is
// erased to Black as soon as it is discovered and appended to the current
// component at the same moment, so erasure doubles as the visited mark and no
// pixel is pushed twice. Components are returned in seed order.
//
// Extract consumes img: on success no foreground pixel remains. maxWorklist
// bounds the stack length (0 disables the bound); when a fill would exceed it,
// Extract returns ErrWorklistExhausted and img is left partially consumed.
func Extract(img *Image, threshold uint8, maxWorklist int) (ComponentSet, error) {
	set := ComponentSet{}
	if img.Empty() {
		return set, nil
	}

	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			if !img.IsForeground(x, y, threshold) {
				continue
			}
			c, err := floodFill(img, Point{X: x, Y: y}, threshold, maxWorklist)
			if err != nil {
				return nil, fmt.Errorf("component %d seeded at (%d,%d): %w", len(set), x, y, err)
			}
			set = append(set, c)
		}
	}
	return set, nil
}

// floodFill consumes the component containing seed, which must be foreground.
func floodFill(img *Image, seed Point, threshold uint8, maxWorklist int) (Component, error) {
	points := []Point{seed}
	img.Set(seed.X, seed.Y, Black)
	stack := []Point{seed}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighborOffsets {
			n := Point{X: p.X + d.X, Y: p.Y + d.Y}
			if !img.IsForeground(n.X, n.Y, threshold) {
				continue
			}
			if maxWorklist > 0 && len(stack) >= maxWorklist {
				return Component{}, ErrWorklistExhausted
			}
			img.Set(n.X, n.Y, Black)
			points = append(points, n)
			stack = append(stack, n)
		}
	}
	return Component{Points: points}, nil
}
