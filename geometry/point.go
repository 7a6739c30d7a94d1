// Package geometry provides the point, quadrilateral and projective
// transform types used to model a photographed rectangle seen under
// perspective, and the solver that recovers the transform from four
// point correspondences.
package geometry

import "math"

// Point is a position in source-image pixel space.
type Point struct {
	X, Y float64
}

// Quad is an ordered quadrilateral: clockwise from the vertex nearest the
// source image's top-left corner, so index 0 is top-left, 1 top-right,
// 2 bottom-right and 3 bottom-left.
type Quad [4]Point

// Area returns the interior area of the quad via the shoelace formula.
func (q Quad) Area() float64 {
	var sum float64
	for i := range q {
		j := (i + 1) % 4
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return math.Abs(sum) / 2
}

// Cross returns the z component of (a-o) x (b-o). Its magnitude is twice
// the area of the triangle o-a-b; zero means the three points are collinear.
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
