package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectToQuadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		quad Quad
		w, h int
	}{
		{
			name: "axis aligned crop",
			quad: Quad{{10, 10}, {89, 10}, {89, 89}, {10, 89}},
			w:    80, h: 80,
		},
		{
			name: "keystoned",
			quad: Quad{{20, 20}, {179, 20}, {179, 179}, {35, 164}},
			w:    160, h: 160,
		},
		{
			name: "rotated",
			quad: Quad{{30, 10}, {190, 40}, {170, 180}, {10, 150}},
			w:    320, h: 180,
		},
		{
			name: "non square output",
			quad: Quad{{5.5, 3.25}, {100.75, 8}, {98, 60.5}, {2, 55}},
			w:    1280, h: 720,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := RectToQuad(tt.quad, tt.w, tt.h)
			require.NoError(t, err)

			corners := [4][2]float64{
				{0, 0},
				{float64(tt.w), 0},
				{float64(tt.w), float64(tt.h)},
				{0, float64(tt.h)},
			}
			for i, c := range corners {
				x, y := tr.Apply(c[0], c[1])
				assert.InDelta(t, tt.quad[i].X, x, 1e-6)
				assert.InDelta(t, tt.quad[i].Y, y, 1e-6)
			}
		})
	}
}

func TestQuadToQuadIdentity(t *testing.T) {
	q := Quad{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	tr, err := QuadToQuad(q, q)
	require.NoError(t, err)

	x, y := tr.Apply(33.5, 21.25)
	assert.InDelta(t, 33.5, x, 1e-9)
	assert.InDelta(t, 21.25, y, 1e-9)
}

func TestQuadToQuadDegenerate(t *testing.T) {
	tests := []struct {
		name string
		quad Quad
	}{
		{
			name: "all points collinear",
			quad: Quad{{0, 0}, {10, 10}, {20, 20}, {30, 30}},
		},
		{
			name: "coincident points",
			quad: Quad{{5, 5}, {5, 5}, {50, 50}, {0, 50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RectToQuad(tt.quad, 100, 100)
			assert.ErrorIs(t, err, ErrIllConditioned)
		})
	}
}

func TestTransformApplyVanishingDenominator(t *testing.T) {
	tr := Transform{1, 0, 0, 0, 1, 0, 1, 0, 0} // denominator is x
	x, y := tr.Apply(0, 5)
	// Far outside any image, never NaN.
	assert.Less(t, x, -1e9)
	assert.Less(t, y, -1e9)
}

func TestQuadArea(t *testing.T) {
	q := Quad{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.InDelta(t, 100.0, q.Area(), 1e-12)

	skewed := Quad{{0, 0}, {10, 0}, {12, 10}, {2, 10}}
	assert.InDelta(t, 100.0, skewed.Area(), 1e-12)
}

func TestCross(t *testing.T) {
	assert.Zero(t, Cross(Point{0, 0}, Point{1, 1}, Point{2, 2}))
	assert.Positive(t, Cross(Point{0, 0}, Point{1, 0}, Point{0, 1}))
}
