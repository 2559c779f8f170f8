package ui

import (
	"math"

	"github.com/ingyamilmolinar/nodeseq/core/geom"
)

// gridStep is the spacing of the faint grid; bar lines are drawn every
// pixels-per-bar on top of it.
const gridStep = 50

// visibleWorldRect returns the world-space bounds of a screenW×screenH view
// at camera.
func visibleWorldRect(camera geom.Point, screenW, screenH int) (minX, maxX, minY, maxY float64) {
	return camera.X, camera.X + float64(screenW), camera.Y, camera.Y + float64(screenH)
}

// gridLines returns the multiples of step in [lo, hi].
func gridLines(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return nil
	}
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}
