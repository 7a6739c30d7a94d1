package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unframe/geometry"
)

func TestEstimateValidQuad(t *testing.T) {
	e := Estimator{MinAreaRatio: 0.01, Slack: 2}
	pts := [4]geometry.Point{
		{X: 10, Y: 10},
		{X: 89, Y: 10},
		{X: 89, Y: 89},
		{X: 10, Y: 89},
	}
	q, err := e.Estimate(pts, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, geometry.Quad(pts), q)
}

func TestEstimateDegenerate(t *testing.T) {
	e := Estimator{MinAreaRatio: 0.01, Slack: 2}

	tests := []struct {
		name string
		pts  [4]geometry.Point
	}{
		{
			name: "three collinear points",
			pts: [4]geometry.Point{
				{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 90, Y: 10}, {X: 10, Y: 90},
			},
		},
		{
			name: "area too small",
			pts: [4]geometry.Point{
				{X: 48, Y: 48}, {X: 52, Y: 48}, {X: 52, Y: 52}, {X: 48, Y: 52},
			},
		},
		{
			name: "point outside slack margin",
			pts: [4]geometry.Point{
				{X: -20, Y: 10}, {X: 89, Y: 10}, {X: 89, Y: 89}, {X: 10, Y: 89},
			},
		},
		{
			name: "coincident points",
			pts: [4]geometry.Point{
				{X: 10, Y: 10}, {X: 10, Y: 10}, {X: 89, Y: 89}, {X: 10, Y: 89},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Estimate(tt.pts, 100, 100)
			assert.ErrorIs(t, err, ErrDegenerateQuad)
		})
	}
}

func TestEstimateSlackAllowsNearBoundaryPoints(t *testing.T) {
	e := Estimator{MinAreaRatio: 0.01, Slack: 2}
	pts := [4]geometry.Point{
		{X: -1.5, Y: -1.5}, {X: 100.5, Y: -1}, {X: 100, Y: 100.5}, {X: -1, Y: 100},
	}
	_, err := e.Estimate(pts, 100, 100)
	assert.NoError(t, err)
}
