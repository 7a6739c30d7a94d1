// Package pipeline wires the per-image flow, decode -> border scan ->
// corner estimate -> projection solve -> rectify -> encode, and runs
// batches of images across a bounded worker pool.
package pipeline

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"unframe/config"
	"unframe/detect"
	"unframe/geometry"
	"unframe/rectify"
)

// Process runs the geometric pipeline on one decoded image: find the
// border-to-content transition near each corner, assemble and validate
// the quad, solve the projection onto the output rectangle, and resample.
// The image is consumed exactly once; the output buffer is fresh.
func Process(cfg config.Config, src image.Image) (*image.NRGBA, error) {
	img := imaging.Clone(src)
	b := img.Bounds()

	scanner := detect.Scanner{
		Threshold:      cfg.Detection.Threshold,
		SearchFraction: cfg.Detection.SearchFraction,
	}
	pts, err := scanner.Scan(img)
	if err != nil {
		return nil, fmt.Errorf("scanning border: %w", err)
	}

	estimator := detect.Estimator{
		MinAreaRatio: cfg.Detection.MinAreaRatio,
		Slack:        cfg.Detection.Slack,
	}
	quad, err := estimator.Estimate(pts, b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("estimating corners: %w", err)
	}

	w, h := OutputSize(quad, cfg.Output)
	tr, err := geometry.RectToQuad(quad, w, h)
	if err != nil {
		return nil, fmt.Errorf("solving projection: %w", err)
	}

	r := rectify.Rectifier{
		Policy: rectify.Policy{Filter: rectify.ParseFilter(cfg.Sampling.Filter)},
	}
	return r.Rectify(img, tr, w, h), nil
}
