package detect

import (
	"errors"
	"fmt"

	"unframe/geometry"
)

// ErrDegenerateQuad is returned when the four transition points do not
// form a usable quadrilateral.
var ErrDegenerateQuad = errors.New("degenerate quadrilateral")

// collinearRatio scales the collinearity tolerance with image area: a
// corner triple whose triangle spans less than this fraction of the image
// counts as collinear.
const collinearRatio = 1e-6

// Estimator assembles the four corner transition points into a quad and
// validates it against the image geometry.
type Estimator struct {
	// MinAreaRatio rejects quads whose interior covers less than this
	// fraction of the image area.
	MinAreaRatio float64
	// Slack is how many pixels a point may fall outside the image
	// rectangle before it is rejected.
	Slack float64
}

// Estimate builds a Quad from the four transition points, which arrive in
// quad vertex order because the scanner emits one point per corner. Fails
// when any point falls outside the slack-extended image rectangle, when
// three points are collinear, or when the interior area is too small.
func (e Estimator) Estimate(pts [4]geometry.Point, width, height int) (geometry.Quad, error) {
	var q geometry.Quad
	fw, fh := float64(width), float64(height)

	for i, p := range pts {
		if p.X < -e.Slack || p.X > fw-1+e.Slack || p.Y < -e.Slack || p.Y > fh-1+e.Slack {
			return q, fmt.Errorf("%s point (%.1f, %.1f) outside image: %w",
				Corner(i), p.X, p.Y, ErrDegenerateQuad)
		}
	}

	imgArea := fw * fh
	collinearTol := collinearRatio * imgArea
	for i := range pts {
		o, a, b := pts[i], pts[(i+1)%4], pts[(i+2)%4]
		cr := geometry.Cross(o, a, b)
		if cr < 0 {
			cr = -cr
		}
		if cr <= collinearTol {
			return q, fmt.Errorf("points %s, %s, %s collinear: %w",
				Corner(i), Corner((i+1)%4), Corner((i+2)%4), ErrDegenerateQuad)
		}
	}

	q = geometry.Quad(pts)
	if q.Area() < e.MinAreaRatio*imgArea {
		return q, fmt.Errorf("quad area %.1f below %.0f%% of image: %w",
			q.Area(), e.MinAreaRatio*100, ErrDegenerateQuad)
	}
	return q, nil
}
