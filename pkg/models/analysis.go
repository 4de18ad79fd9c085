package models

import (
	"time"

	"go-photo-validator/pkg/taxonomy"
)

// Point is a pixel coordinate, used for optional face landmarks.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FaceRegion is a detected face box in pixel coordinates of the decoded image.
type FaceRegion struct {
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Confidence *float64 `json:"confidence,omitempty"`
	Landmarks  []Point  `json:"landmarks,omitempty"`
}

// FacePosition is a face box normalized to [0,1] by the image dimensions.
type FacePosition struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// QualityMetrics holds the numeric image-quality measurements.
// Brightness and contrast are on the 0..255 luminance scale; sharpness is
// unbounded above and typically within 0..1 for natural photos.
type QualityMetrics struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Sharpness  float64 `json:"sharpness"`
}

// LightingFlags are the independent regional lighting findings.
type LightingFlags struct {
	HarshShadows   bool `json:"harshShadows"`
	Overexposed    bool `json:"overexposed"`
	Underexposed   bool `json:"underexposed"`
	UnevenLighting bool `json:"unevenLighting"`
}

// ValidationDetails carries the measurements behind a verdict.
type ValidationDetails struct {
	FaceCount    int            `json:"faceCount"`
	FaceArea     *float64       `json:"faceArea,omitempty"`
	FacePosition *FacePosition  `json:"facePosition,omitempty"`
	ImageQuality QualityMetrics `json:"imageQuality"`
	Lighting     LightingFlags  `json:"lighting"`
	Warnings     []string       `json:"warnings"`
}

// ValidationResult is the verdict for one photo. It contains no timestamps,
// so identical input always produces an identical result.
type ValidationResult struct {
	IsValid   bool                    `json:"isValid"`
	ErrorType *taxonomy.ErrorCategory `json:"errorType,omitempty"`
	Details   ValidationDetails       `json:"details"`
}

// ValidationResponse wraps a result with per-call metadata for API clients.
type ValidationResponse struct {
	ID                string              `json:"id"`
	Timestamp         time.Time           `json:"timestamp"`
	ProcessingTimeSec float64             `json:"processingTimeSec"`
	Result            ValidationResult    `json:"result"`
	FailedOpen        bool                `json:"failedOpen"`
	ErrorInfo         *taxonomy.ErrorInfo `json:"errorInfo,omitempty"`
}
