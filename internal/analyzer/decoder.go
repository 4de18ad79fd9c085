package analyzer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/evanoberholster/imagemeta"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/pkg/taxonomy"
)

// DefaultMaxPixels bounds the decoded size of a photo (about 50 megapixels).
const DefaultMaxPixels = 50_000_000

// Decoder turns encoded photo bytes into an upright RGBA buffer.
type Decoder struct {
	maxPixels int
}

// NewDecoder creates a decoder that rejects images larger than maxPixels.
// maxPixels <= 0 uses DefaultMaxPixels.
func NewDecoder(maxPixels int) *Decoder {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Decoder{maxPixels: maxPixels}
}

// Decode returns a fresh *image.RGBA with origin (0,0) and the detected format name.
// EXIF orientation is applied for formats that carry it.
func (d *Decoder) Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", apperrors.NewDecodeError("image payload is empty", taxonomy.CorruptedImage, nil)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", apperrors.NewDecodeError("unsupported image format", taxonomy.UnsupportedFormat, err)
		}
		return nil, "", apperrors.NewDecodeError("failed to read image header", taxonomy.CorruptedImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, apperrors.NewDecodeError("image has no pixels", taxonomy.CorruptedImage, nil)
	}
	if cfg.Width*cfg.Height > d.maxPixels {
		return nil, format, apperrors.NewTooLargeError(
			fmt.Sprintf("image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, d.maxPixels), nil)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, apperrors.NewDecodeError("failed to decode image", taxonomy.CorruptedImage, err)
	}

	rgba := toRGBA(img)
	if format == "jpeg" || format == "tiff" {
		rgba = orient(rgba, readOrientation(data))
	}
	return rgba, format, nil
}

// readOrientation returns the EXIF orientation, or 1 when it is absent or unreadable.
func readOrientation(data []byte) int {
	exifData, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	o := int(uint8(exifData.Orientation))
	if o < 1 || o > 8 {
		return 1
	}
	return o
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// orient rotates or flips src so that EXIF orientation o displays upright.
func orient(src *image.RGBA, o int) *image.RGBA {
	if o <= 1 || o > 8 {
		return src
	}

	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dw, dh := sw, sh
	if o >= 5 {
		dw, dh = sh, sw
	}

	// source coordinates for destination pixel (x, y)
	var at func(x, y int) (int, int)
	switch o {
	case 2:
		at = func(x, y int) (int, int) { return sw - 1 - x, y }
	case 3:
		at = func(x, y int) (int, int) { return sw - 1 - x, sh - 1 - y }
	case 4:
		at = func(x, y int) (int, int) { return x, sh - 1 - y }
	case 5:
		at = func(x, y int) (int, int) { return y, x }
	case 6:
		at = func(x, y int) (int, int) { return y, sh - 1 - x }
	case 7:
		at = func(x, y int) (int, int) { return sw - 1 - y, sh - 1 - x }
	case 8:
		at = func(x, y int) (int, int) { return sw - 1 - y, x }
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			sx, sy := at(x, y)
			si := src.PixOffset(sx, sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
