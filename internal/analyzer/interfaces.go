package analyzer

import (
	"context"
	"image"

	"go-photo-validator/pkg/models"
)

// PhotoValidator defines the main interface for photo validation
type PhotoValidator interface {
	// Initialize loads the face-detection capability ahead of the first call.
	Initialize(ctx context.Context) error

	// Validate decodes and validates an encoded photo.
	Validate(ctx context.Context, data []byte) (models.ValidationResult, error)

	// ValidateImage validates an already decoded photo.
	ValidateImage(ctx context.Context, img *image.RGBA) (models.ValidationResult, error)

	// Lifecycle management
	Close() error
}

// FaceLocator finds faces, loading its detector lazily
type FaceLocator interface {
	Initialize(ctx context.Context) error
	Locate(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error)
}

// QualityMeasurer computes brightness, contrast and sharpness
type QualityMeasurer interface {
	Analyze(img *image.RGBA) models.QualityMetrics
}

// LightingMeasurer computes regional lighting flags
type LightingMeasurer interface {
	Analyze(img *image.RGBA, contrast float64) models.LightingFlags
}
