// Package face locates faces in decoded photos through a pluggable detection
// capability that is loaded lazily, once per process.
package face

import (
	"context"
	"image"

	"go-photo-validator/pkg/models"
)

// Detector finds faces in an image. Implementations must be safe for
// concurrent use.
type Detector interface {
	Detect(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error)
}

// Loader performs the slow part of preparing a Detector, such as reading
// model weights.
type Loader func(ctx context.Context) (Detector, error)

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error)

// Detect calls f.
func (f DetectorFunc) Detect(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error) {
	return f(ctx, img)
}

// StaticDetector reports the same regions for every image. Regions given as
// fractions of the frame are scaled to each image's size.
type StaticDetector struct {
	regions []models.FacePosition
}

// NewStaticDetector returns a detector that always finds the given normalized boxes.
func NewStaticDetector(regions ...models.FacePosition) *StaticDetector {
	return &StaticDetector{regions: regions}
}

// CenteredDetector finds a single centered face covering area of the frame.
func CenteredDetector(area float64) *StaticDetector {
	side := sqrtClamp(area)
	off := (1 - side) / 2
	return NewStaticDetector(models.FacePosition{X: off, Y: off, Width: side, Height: side})
}

// Detect implements Detector.
func (d *StaticDetector) Detect(_ context.Context, img *image.RGBA) ([]models.FaceRegion, error) {
	b := img.Bounds()
	faces := make([]models.FaceRegion, 0, len(d.regions))
	for _, r := range d.regions {
		faces = append(faces, Denormalize(r, b.Dx(), b.Dy()))
	}
	return faces, nil
}

// StaticLoader loads d immediately.
func StaticLoader(d Detector) Loader {
	return func(context.Context) (Detector, error) {
		return d, nil
	}
}
