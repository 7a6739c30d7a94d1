// Package detect locates the border-to-content boundary of a photograph.
// The border is assumed near-uniform; near each image corner a scan along
// the corner-to-center diagonal finds the first pixel that differs sharply
// from its predecessor, and the four hits form the perspective quad.
package detect

import (
	"errors"
	"fmt"
	"image"

	"unframe/geometry"
)

// ErrNoTransition is returned when a corner scan exhausts its search bound
// without crossing a border-to-content transition.
var ErrNoTransition = errors.New("no border transition found")

// Corner identifies one of the four image corners.
type Corner int

// The four corners in quad vertex order, clockwise from top-left.
const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// scanSteps holds the inward diagonal direction for each corner. The scan
// start position follows from the signs: negative components start at the
// far edge.
var scanSteps = [4]struct{ dx, dy int }{
	TopLeft:     {1, 1},
	TopRight:    {-1, 1},
	BottomRight: {-1, -1},
	BottomLeft:  {1, -1},
}

// start returns the corner's pixel position in an image of the given size.
func (c Corner) start(w, h int) (int, int) {
	x, y := 0, 0
	if scanSteps[c].dx < 0 {
		x = w - 1
	}
	if scanSteps[c].dy < 0 {
		y = h - 1
	}
	return x, y
}

// Scanner finds the content transition point near each image corner.
type Scanner struct {
	// Threshold is the sum of per-channel absolute differences between
	// consecutive scan pixels that counts as a transition.
	Threshold int
	// SearchFraction bounds the scan depth to this fraction of the
	// smaller image dimension.
	SearchFraction float64
}

// Scan returns one transition point per corner, in quad vertex order.
func (s Scanner) Scan(img *image.NRGBA) ([4]geometry.Point, error) {
	var pts [4]geometry.Point
	for c := TopLeft; c <= BottomLeft; c++ {
		p, err := s.ScanCorner(img, c)
		if err != nil {
			return pts, err
		}
		pts[c] = p
	}
	return pts, nil
}

// ScanCorner walks inward along the corner's diagonal and returns the
// position of the first pixel whose difference from its predecessor
// exceeds the threshold.
func (s Scanner) ScanCorner(img *image.NRGBA, c Corner) (geometry.Point, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	limit := int(s.SearchFraction * float64(min(w, h)))
	if limit > min(w, h)-1 {
		limit = min(w, h) - 1
	}

	step := scanSteps[c]
	x, y := c.start(w, h)
	pr, pg, pb := rgbAt(img, x, y)
	for i := 1; i <= limit; i++ {
		x += step.dx
		y += step.dy
		r, g, bl := rgbAt(img, x, y)
		if absDiff(r, pr)+absDiff(g, pg)+absDiff(bl, pb) > s.Threshold {
			return geometry.Point{X: float64(x), Y: float64(y)}, nil
		}
		pr, pg, pb = r, g, bl
	}
	return geometry.Point{}, fmt.Errorf("%s corner: %w", c, ErrNoTransition)
}

func rgbAt(img *image.NRGBA, x, y int) (int, int, int) {
	o := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	return int(img.Pix[o]), int(img.Pix[o+1]), int(img.Pix[o+2])
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
