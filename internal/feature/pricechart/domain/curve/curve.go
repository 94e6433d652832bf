// Package curve derives cubic bezier segments that pass smoothly through a
// sequence of points (Catmull-Rom style control points).
package curve

import "math"

// DefaultTension is the fraction of the neighbour chord used for control points.
const DefaultTension = 0.2

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Segment is one piece of the curve from Start to End.
// When Straight is set the control points are meaningless and the segment
// must be drawn as a line.
type Segment struct {
	Start, C1, C2, End Point
	Straight           bool
}

// ControlPoints returns the control points on either side of p1 for the
// triple (p0, p1, p2). before belongs to the segment ending at p1, after to
// the segment starting at p1. Coincident points yield NaN coordinates.
func ControlPoints(p0, p1, p2 Point, t float64) (before, after Point) {
	d1 := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
	d2 := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	fa := t * d1 / (d1 + d2)
	fb := t * d2 / (d1 + d2)

	dx, dy := p2.X-p0.X, p2.Y-p0.Y
	before = Point{X: p1.X - fa*dx, Y: p1.Y - fa*dy}
	after = Point{X: p1.X + fb*dx, Y: p1.Y + fb*dy}
	return before, after
}

// Smooth returns len(pts)-1 segments joining consecutive points.
// Neighbours past either end are clamped to the end point.
func Smooth(pts []Point, t float64) []Segment {
	if len(pts) < 2 {
		return nil
	}
	last := len(pts) - 1
	out := make([]Segment, 0, last)
	for i := 0; i < last; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, last)]

		_, c1 := ControlPoints(p0, p1, p2, t)
		c2, _ := ControlPoints(p1, p2, p3, t)

		out = append(out, Segment{
			Start:    p1,
			C1:       c1,
			C2:       c2,
			End:      p2,
			Straight: !c1.finite() || !c2.finite(),
		})
	}
	return out
}
