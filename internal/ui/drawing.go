package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ingyamilmolinar/nodeseq/core/geom"
)

// drawLine draws a segment in screen space. It is a variable so tests can
// capture draw calls.
var drawLine = func(dst *ebiten.Image, a, b geom.Point, width float64, c color.Color) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

// drawCircle draws a filled or outlined circle in screen space.
var drawCircle = func(dst *ebiten.Image, center geom.Point, r float64, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(r), c, true)
	} else {
		vector.StrokeCircle(dst, float32(center.X), float32(center.Y), float32(r), 2, c, true)
	}
}

const arrowSize = 8

// drawArrow draws a segment from a to b that stops at the rim of the target
// node, with a head at the tip.
func drawArrow(dst *ebiten.Image, a, b geom.Point, nodeRadius float64, c color.Color) {
	d := r2.Sub(b, a)
	length := math.Sqrt(r2.Norm2(d))
	if length <= 2*nodeRadius {
		drawLine(dst, a, b, 2, c)
		return
	}
	dir := r2.Scale(1/length, d)
	start := r2.Add(a, r2.Scale(nodeRadius, dir))
	tip := r2.Sub(b, r2.Scale(nodeRadius, dir))
	drawLine(dst, start, tip, 2, c)

	back := r2.Sub(tip, r2.Scale(arrowSize, dir))
	side := r2.Scale(arrowSize/2, r2.Vec{X: -dir.Y, Y: dir.X})
	drawLine(dst, tip, r2.Add(back, side), 2, c)
	drawLine(dst, tip, r2.Sub(back, side), 2, c)
}

// drawArc strokes the part of a circle from the top, clockwise, covering
// frac of the full turn.
func drawArc(dst *ebiten.Image, center geom.Point, r, frac float64, c color.Color) {
	frac = geom.Clamp(frac, 0, 1)
	steps := int(math.Ceil(32 * frac))
	if steps == 0 {
		return
	}
	at := func(i int) geom.Point {
		angle := -math.Pi/2 + 2*math.Pi*frac*float64(i)/float64(steps)
		return r2.Add(center, r2.Scale(r, geom.FromAngle(angle)))
	}
	prev := at(0)
	for i := 1; i <= steps; i++ {
		next := at(i)
		drawLine(dst, prev, next, 3, c)
		prev = next
	}
}
