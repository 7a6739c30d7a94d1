package pipeline

import (
	"math"

	"unframe/config"
	"unframe/geometry"
)

// OutputSize derives output dimensions from the detected quad. Explicit
// Width/Height win outright. Otherwise the raw extents come from the
// quad's opposing edges, the smaller dimension is grown to reach the
// configured aspect ratio, and the result is scaled down (never up) to
// fit the configured caps.
func OutputSize(q geometry.Quad, out config.Output) (int, int) {
	if out.Width > 0 && out.Height > 0 {
		return out.Width, out.Height
	}

	width := math.Max(q[1].X-q[0].X, q[2].X-q[3].X)
	height := math.Max(q[3].Y-q[0].Y, q[2].Y-q[1].Y)

	if out.AspectW > 0 && out.AspectH > 0 {
		aspectHeight := out.AspectH * width / out.AspectW
		if aspectHeight < height {
			width = out.AspectW * height / out.AspectH
		} else {
			height = aspectHeight
		}
	}

	scale := 1.0
	if out.MaxHeight > 0 && float64(out.MaxHeight) < height*scale {
		scale = float64(out.MaxHeight) / height
	}
	if out.MaxWidth > 0 && float64(out.MaxWidth) < width*scale {
		scale = float64(out.MaxWidth) / width
	}

	w := int(math.Round(width * scale))
	h := int(math.Round(height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
