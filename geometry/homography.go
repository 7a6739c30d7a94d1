package geometry

import (
	"errors"
	"math"
)

// ErrIllConditioned is returned when the four correspondences do not
// determine a usable projective transform: the linear system is singular
// or the resulting matrix is numerically degenerate.
var ErrIllConditioned = errors.New("homography system is ill-conditioned")

// pivotEps is the smallest pivot magnitude accepted during elimination.
const pivotEps = 1e-10

// Transform is a 3x3 projective matrix in row-major order acting on
// homogeneous coordinates, normalized so the bottom-right element is 1.
type Transform [9]float64

// Apply maps (x, y) through the transform: homogeneous multiply followed
// by division by the homogeneous component. A vanishing denominator maps
// to coordinates far outside any image, which downstream sampling clamps.
func (t Transform) Apply(x, y float64) (float64, float64) {
	d := t[6]*x + t[7]*y + t[8]
	if d == 0 {
		return -1e12, -1e12
	}
	return (t[0]*x + t[1]*y + t[2]) / d, (t[3]*x + t[4]*y + t[5]) / d
}

// QuadToQuad computes the transform mapping p[i] to q[i] for the four
// correspondences. With the bottom-right entry fixed to 1 the remaining
// eight unknowns follow from an 8x8 linear system, two equations per
// correspondence, solved by Gaussian elimination with partial pivoting.
func QuadToQuad(p, q Quad) (Transform, error) {
	var a [8][9]float64 // augmented system [A | b]
	for i := 0; i < 4; i++ {
		sx, sy := p[i].X, p[i].Y
		dx, dy := q[i].X, q[i].Y
		r := 2 * i
		// dx = (h0 sx + h1 sy + h2) / (h6 sx + h7 sy + 1)
		a[r] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		// dy = (h3 sx + h4 sy + h5) / (h6 sx + h7 sy + 1)
		a[r+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	h, ok := solve(a)
	if !ok {
		return Transform{}, ErrIllConditioned
	}

	t := Transform{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}
	// The linear part must not collapse: a vanishing 2x2 determinant means
	// the transform squashes the plane onto a line.
	if math.Abs(t[0]*t[4]-t[1]*t[3]) < pivotEps {
		return Transform{}, ErrIllConditioned
	}
	return t, nil
}

// RectToQuad computes the transform mapping the corners of the w x h
// output rectangle, (0,0), (w,0), (w,h), (0,h), onto the quad corners in
// matching order. This is the inverse map the rectifier consumes: output
// coordinates in, source coordinates out.
func RectToQuad(q Quad, w, h int) (Transform, error) {
	fw, fh := float64(w), float64(h)
	rect := Quad{{0, 0}, {fw, 0}, {fw, fh}, {0, fh}}
	return QuadToQuad(rect, q)
}

// solve reduces the augmented system to the identity by Gauss-Jordan
// elimination with partial pivoting. Reports failure if any pivot falls
// below pivotEps.
func solve(a [8][9]float64) ([8]float64, bool) {
	var x [8]float64
	for col := 0; col < 8; col++ {
		// Pick the row with the largest magnitude in this column.
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < pivotEps {
			return x, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		div := a[col][col]
		for c := col; c < 9; c++ {
			a[col][c] /= div
		}
		for r := 0; r < 8; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for c := col; c < 9; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	for i := 0; i < 8; i++ {
		x[i] = a[i][8]
	}
	return x, true
}
