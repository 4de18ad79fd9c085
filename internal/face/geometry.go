package face

import (
	"math"

	"go-photo-validator/pkg/models"
)

// Area returns the fraction of a width×height image covered by r.
func Area(r models.FaceRegion, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(r.Width*r.Height) / float64(width*height)
}

// Normalize converts a pixel box into [0,1] coordinates of the image.
func Normalize(r models.FaceRegion, width, height int) models.FacePosition {
	if width <= 0 || height <= 0 {
		return models.FacePosition{}
	}
	w, h := float64(width), float64(height)
	return models.FacePosition{
		X:      float64(r.X) / w,
		Y:      float64(r.Y) / h,
		Width:  float64(r.Width) / w,
		Height: float64(r.Height) / h,
	}
}

// Denormalize converts a [0,1] box into pixel coordinates, clipped to the image.
func Denormalize(p models.FacePosition, width, height int) models.FaceRegion {
	x := clampInt(int(math.Round(p.X*float64(width))), 0, width)
	y := clampInt(int(math.Round(p.Y*float64(height))), 0, height)
	w := clampInt(int(math.Round(p.Width*float64(width))), 0, width-x)
	h := clampInt(int(math.Round(p.Height*float64(height))), 0, height-y)
	return models.FaceRegion{X: x, Y: y, Width: w, Height: h}
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

func sqrtClamp(area float64) float64 {
	if area <= 0 {
		return 0
	}
	if area >= 1 {
		return 1
	}
	return math.Sqrt(area)
}
