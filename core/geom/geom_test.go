package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistSq(t *testing.T) {
	require.Equal(t, 25.0, DistSq(Pt(0, 0), Pt(3, 4)))
	require.Equal(t, 0.0, DistSq(Pt(7, -2), Pt(7, -2)))
}

func TestSegmentDistSqPerpendicular(t *testing.T) {
	// Point straight above the middle of a horizontal segment.
	d := SegmentDistSq(Pt(50, 10), Pt(0, 0), Pt(100, 0), 0)
	require.InDelta(t, 100.0, d, 1e-9)
}

func TestSegmentDistSqClampsToEndpoint(t *testing.T) {
	d := SegmentDistSq(Pt(-10, 0), Pt(0, 0), Pt(100, 0), 0)
	require.InDelta(t, 100.0, d, 1e-9)
}

func TestSegmentDistSqMarginPullsAwayFromEndpoints(t *testing.T) {
	// With margin 0.5 the nearest admissible point is at t=0.25, i.e. x=25.
	d := SegmentDistSq(Pt(0, 0), Pt(0, 0), Pt(100, 0), 0.5)
	require.InDelta(t, 625.0, d, 1e-9)

	d = SegmentDistSq(Pt(100, 0), Pt(0, 0), Pt(100, 0), 0.5)
	require.InDelta(t, 625.0, d, 1e-9)

	// Interior points are unaffected.
	d = SegmentDistSq(Pt(50, 3), Pt(0, 0), Pt(100, 0), 0.5)
	require.InDelta(t, 9.0, d, 1e-9)
}

func TestSegmentDistSqDegenerate(t *testing.T) {
	d := SegmentDistSq(Pt(3, 4), Pt(0, 0), Pt(0, 0), 0.5)
	require.Equal(t, 25.0, d)
}

type marker struct{ at Point }

func (m marker) Position() Point { return m.at }

func TestTranslate(t *testing.T) {
	tr := Translate(marker{at: Pt(10, 20)}, Pt(4, 5))
	require.Equal(t, Pt(6, 15), tr.Pos)
	require.Equal(t, Pt(10, 20), tr.Inner.at)
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi / 2)
	require.InDelta(t, 0.0, v.X, 1e-12)
	require.InDelta(t, 1.0, v.Y, 1e-12)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Pt(-30, 12.5)
	p := Pt(7, 9)
	require.Equal(t, p, ToWorld(ToCamera(p, cam), cam))
	require.Equal(t, Pt(-23, 21.5), ToWorld(p, cam))
}
