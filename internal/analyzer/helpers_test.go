package analyzer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// createTestImage creates a simple test image for testing purposes
func createTestImage(width, height int, fillColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fillColor)
		}
	}
	return img
}

// createGradientImage creates a diagonal gradient with a little texture
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			intensity := uint8((x+y)*255/(width+height) + (x*7+y*13)%17)
			img.SetRGBA(x, y, color.RGBA{intensity, intensity / 2, 255 - intensity, 255})
		}
	}
	return img
}

// createCheckerboard alternates two gray levels on single pixels
func createCheckerboard(width, height int, a, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := a
			if (x+y)%2 == 1 {
				v = b
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// createRegionImage fills a size×size image as a 3×3 grid of gray levels, row by row
func createRegionImage(size int, levels [9]uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / 3
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := levels[min(y/cell, 2)*3+min(x/cell, 2)]
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 255}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}
