package ui

import "image/color"

var (
	colBackground = color.RGBA{20, 20, 30, 255}
	colGridLine   = color.RGBA{45, 45, 60, 255}
	colBarLine    = color.RGBA{70, 70, 95, 255}

	colEdge     = color.RGBA{170, 170, 190, 255}
	colEdgeBack = color.RGBA{120, 60, 60, 255} // leftward edges stall signals

	colNodeDefault = color.RGBA{200, 200, 200, 255}
	colNodeSpawner = color.RGBA{40, 200, 40, 255}
	colNodeSample  = color.RGBA{0, 200, 255, 255}
	colNodeBorder  = color.RGBA{240, 240, 240, 255}
	colSpawnerArc  = color.RGBA{255, 255, 0, 255}

	colSignal   = color.RGBA{255, 255, 0, 255}
	colParticle = color.RGBA{255, 200, 80, 200}

	colHover  = color.RGBA{0, 255, 0, 255}
	colDelete = color.RGBA{230, 40, 40, 255}
	colGhost  = color.RGBA{255, 255, 255, 90}
)

// sampleColors tints sample nodes by index.
var sampleColors = []color.RGBA{
	{0, 200, 255, 255},
	{255, 120, 40, 255},
	{200, 80, 255, 255},
	{255, 220, 0, 255},
	{255, 80, 150, 255},
}
