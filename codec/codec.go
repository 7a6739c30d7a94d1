// Package codec isolates image file decoding and encoding from the
// geometric pipeline. Decoding accepts the common raster formats;
// encoding always produces PNG regardless of the output filename.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding
)

// ErrDecode is returned when input bytes cannot be parsed as an image.
var ErrDecode = errors.New("cannot decode image")

// ErrEncode is returned when the output image cannot be encoded.
var ErrEncode = errors.New("cannot encode image")

// Decode parses image bytes (JPEG, PNG, GIF, TIFF, BMP or WebP),
// applying EXIF orientation so the pipeline sees upright pixels.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// EncodePNG encodes the image as PNG, the fixed output codec.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
