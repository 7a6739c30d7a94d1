// Package rectify resamples a source image through a projective transform
// so the detected content quad fills the output frame edge-to-edge.
package rectify

import (
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"unframe/geometry"
)

// Filter selects the pixel interpolation rule.
type Filter int

const (
	// Bilinear blends the four nearest source pixels.
	Bilinear Filter = iota
	// Nearest picks the closest source pixel.
	Nearest
)

// ParseFilter maps a config string to a Filter, defaulting to Bilinear.
func ParseFilter(name string) Filter {
	if name == "nearest" {
		return Nearest
	}
	return Bilinear
}

// Policy selects the interpolation rule. Out-of-bounds sampling always
// clamps to the nearest in-bounds pixel: detection slack puts output edge
// pixels at most fractionally outside the source, and clamping keeps those
// from failing the whole image.
type Policy struct {
	Filter Filter
}

// Rectifier inverse-maps every output pixel through a transform and
// samples the source image.
type Rectifier struct {
	Policy  Policy
	Workers int // parallel row bands; 0 means GOMAXPROCS
}

// Rectify produces a w x h image where each output pixel center
// (u+0.5, v+0.5) is mapped through tr to a source coordinate and sampled
// under the policy. The source and transform are only read; row bands of
// the output are written by independent goroutines, no two of which touch
// the same row, so the result is deterministic for identical inputs.
func (r Rectifier) Rectify(src *image.NRGBA, tr geometry.Transform, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := (h + workers - 1) / workers
	if band < 1 {
		band = 1
	}

	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += band {
		y0 := y0
		y1 := y0 + band
		if y1 > h {
			y1 = h
		}
		g.Go(func() error {
			r.rows(src, dst, tr, w, y0, y1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return dst
}

func (r Rectifier) rows(src, dst *image.NRGBA, tr geometry.Transform, w, y0, y1 int) {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	for v := y0; v < y1; v++ {
		o := dst.PixOffset(0, v)
		for u := 0; u < w; u++ {
			sx, sy := tr.Apply(float64(u)+0.5, float64(v)+0.5)
			var px [4]uint8
			if r.Policy.Filter == Nearest {
				px = nearestSample(src, sw, sh, sx, sy)
			} else {
				px = bilinearSample(src, sw, sh, sx, sy)
			}
			copy(dst.Pix[o:o+4], px[:])
			o += 4
		}
	}
}

func nearestSample(src *image.NRGBA, sw, sh int, x, y float64) [4]uint8 {
	xi := clampInt(int(math.Floor(x+0.5)), 0, sw-1)
	yi := clampInt(int(math.Floor(y+0.5)), 0, sh-1)
	o := src.PixOffset(src.Bounds().Min.X+xi, src.Bounds().Min.Y+yi)
	return [4]uint8{src.Pix[o], src.Pix[o+1], src.Pix[o+2], src.Pix[o+3]}
}

func bilinearSample(src *image.NRGBA, sw, sh int, x, y float64) [4]uint8 {
	// Clamp-to-edge before splitting into base and fraction, so a
	// coordinate outside the source resolves to a pure edge pixel.
	x = clampF(x, 0, float64(sw-1))
	y = clampF(y, 0, float64(sh-1))
	x0f := math.Floor(x)
	y0f := math.Floor(y)
	fx := x - x0f
	fy := y - y0f

	x0 := int(x0f)
	y0 := int(y0f)
	x1 := clampInt(x0+1, 0, sw-1)
	y1 := clampInt(y0+1, 0, sh-1)

	b := src.Bounds()
	o00 := src.PixOffset(b.Min.X+x0, b.Min.Y+y0)
	o10 := src.PixOffset(b.Min.X+x1, b.Min.Y+y0)
	o01 := src.PixOffset(b.Min.X+x0, b.Min.Y+y1)
	o11 := src.PixOffset(b.Min.X+x1, b.Min.Y+y1)

	var px [4]uint8
	for c := 0; c < 4; c++ {
		top := lerp(float64(src.Pix[o00+c]), float64(src.Pix[o10+c]), fx)
		bot := lerp(float64(src.Pix[o01+c]), float64(src.Pix[o11+c]), fx)
		px[c] = uint8(lerp(top, bot, fy) + 0.5)
	}
	return px
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
