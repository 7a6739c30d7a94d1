package detect

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unframe/geometry"
)

// borderImage builds a w x h image with a uniform border of the given
// width around an interior painted by the fill function.
func borderImage(w, h, border int, borderColor color.NRGBA, fill func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(borderColor), image.Point{}, draw.Src)
	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	return img
}

func white(x, y int) color.NRGBA { return color.NRGBA{255, 255, 255, 255} }

// checker alternates two interior colors so content shape differs from a
// solid fill while every content pixel still contrasts with the border.
func checker(x, y int) color.NRGBA {
	if (x/4+y/4)%2 == 0 {
		return color.NRGBA{255, 255, 255, 255}
	}
	return color.NRGBA{200, 80, 40, 255}
}

func TestScanFindsExactTransitions(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	s := Scanner{Threshold: 32, SearchFraction: 0.5}

	tests := []struct {
		name string
		fill func(x, y int) color.NRGBA
	}{
		{name: "solid interior", fill: white},
		{name: "patterned interior", fill: checker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := borderImage(100, 100, 10, black, tt.fill)
			pts, err := s.Scan(img)
			require.NoError(t, err)

			want := [4]geometry.Point{
				TopLeft:     {X: 10, Y: 10},
				TopRight:    {X: 89, Y: 10},
				BottomRight: {X: 89, Y: 89},
				BottomLeft:  {X: 10, Y: 89},
			}
			assert.Equal(t, want, pts)
		})
	}
}

func TestScanCornerAsymmetricBorder(t *testing.T) {
	// Border is 10px except near the bottom-left where the content edge
	// sits 15px deeper along the diagonal.
	black := color.NRGBA{0, 0, 0, 255}
	img := borderImage(200, 200, 10, black, white)
	for y := 140; y < 200; y++ {
		for x := 0; x < 60; x++ {
			if x+(199-y) < 50 { // carve a black wedge into the corner
				img.SetNRGBA(x, y, black)
			}
		}
	}

	s := Scanner{Threshold: 32, SearchFraction: 0.5}
	p, err := s.ScanCorner(img, BottomLeft)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 25, Y: 174}, p)
}

func TestScanNoTransition(t *testing.T) {
	gray := color.NRGBA{128, 128, 128, 255}
	img := borderImage(64, 64, 0, gray, func(x, y int) color.NRGBA { return gray })

	s := Scanner{Threshold: 32, SearchFraction: 0.5}
	_, err := s.Scan(img)
	assert.ErrorIs(t, err, ErrNoTransition)
}

func TestScanThresholdRespected(t *testing.T) {
	// Border and interior differ by 20 per channel, 60 summed.
	border := color.NRGBA{100, 100, 100, 255}
	interior := color.NRGBA{120, 120, 120, 255}
	img := borderImage(80, 80, 8, border, func(x, y int) color.NRGBA { return interior })

	low := Scanner{Threshold: 50, SearchFraction: 0.5}
	p, err := low.ScanCorner(img, TopLeft)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 8, Y: 8}, p)

	high := Scanner{Threshold: 61, SearchFraction: 0.5}
	_, err = high.ScanCorner(img, TopLeft)
	assert.ErrorIs(t, err, ErrNoTransition)
}

func TestScanSearchFractionBound(t *testing.T) {
	// Transition at depth 30 is out of reach when the fraction caps the
	// scan at 0.25 * 100 = 25 steps.
	black := color.NRGBA{0, 0, 0, 255}
	img := borderImage(100, 100, 30, black, white)

	s := Scanner{Threshold: 32, SearchFraction: 0.25}
	_, err := s.ScanCorner(img, TopLeft)
	assert.ErrorIs(t, err, ErrNoTransition)

	s.SearchFraction = 0.5
	p, err := s.ScanCorner(img, TopLeft)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 30, Y: 30}, p)
}

func TestCornerString(t *testing.T) {
	assert.Equal(t, "top-left", TopLeft.String())
	assert.Equal(t, "bottom-right", BottomRight.String())
}
