// Package validation turns face, quality and lighting measurements into a
// single verdict by walking an ordered rule list.
package validation

import (
	"go-photo-validator/pkg/models"
	"go-photo-validator/pkg/taxonomy"
)

// Warning messages attached to results. Clients match on these strings.
const (
	WarningNearEdge     = "Face is close to the edge of the photo"
	WarningSlightlyBlur = "Image is slightly blurry"
	WarningLowContrast  = "Image has low contrast"
	WarningOverexposed  = "Some areas of the image are overexposed"
	WarningUnderexposed = "Some areas of the image are underexposed"
	WarningUneven       = "Lighting is uneven across the face"
)

// Thresholds defines the cut-offs used by the default rules
type Thresholds struct {
	// Face geometry
	MinFaceArea float64 // fraction of the image the face box must cover
	EdgeMargin  float64 // normalized distance from a border that counts as "near"

	// Brightness on the 0..255 luminance scale
	MinBrightness float64
	MaxBrightness float64

	// Dim and flat at the same time
	PoorLightingBrightness float64
	PoorLightingContrast   float64

	// Sharpness
	MinSharpness  float64
	SoftSharpness float64

	LowContrast float64
}

// DefaultThresholds returns the production thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinFaceArea:            0.10,
		EdgeMargin:             0.05,
		MinBrightness:          60,
		MaxBrightness:          220,
		PoorLightingBrightness: 90,
		PoorLightingContrast:   40,
		MinSharpness:           0.20,
		SoftSharpness:          0.40,
		LowContrast:            25,
	}
}

// Input is everything the engine needs to decide. FaceArea and FacePosition
// are only meaningful when FaceCount is 1.
type Input struct {
	FaceCount    int
	FaceArea     float64
	FacePosition *models.FacePosition
	Quality      models.QualityMetrics
	Lighting     models.LightingFlags
}

// Rule is one step of the decision list. When Triggered reports true the rule
// either fails the photo with Category or, if Category is empty, appends Warning.
type Rule struct {
	Name      string
	Triggered func(in Input, t Thresholds) bool
	Category  taxonomy.ErrorCategory
	Warning   string
}

// IsWarning reports whether the rule only adds a warning.
func (r Rule) IsWarning() bool {
	return r.Category == ""
}

// DefaultRules returns the ordered rule list. Earlier rules take precedence.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "no_face",
			Triggered: func(in Input, _ Thresholds) bool { return in.FaceCount == 0 },
			Category:  taxonomy.NoFaceDetected,
		},
		{
			Name:      "multiple_faces",
			Triggered: func(in Input, _ Thresholds) bool { return in.FaceCount > 1 },
			Category:  taxonomy.MultipleFaces,
		},
		{
			Name:      "face_too_small",
			Triggered: func(in Input, t Thresholds) bool { return in.FaceArea < t.MinFaceArea },
			Category:  taxonomy.FaceTooSmall,
		},
		{
			Name:      "near_edge",
			Triggered: func(in Input, t Thresholds) bool { return NearEdge(in.FacePosition, t.EdgeMargin) },
			Warning:   WarningNearEdge,
		},
		{
			Name:      "too_dark",
			Triggered: func(in Input, t Thresholds) bool { return in.Quality.Brightness < t.MinBrightness },
			Category:  taxonomy.TooDark,
		},
		{
			Name:      "too_bright",
			Triggered: func(in Input, t Thresholds) bool { return in.Quality.Brightness > t.MaxBrightness },
			Category:  taxonomy.TooBright,
		},
		{
			Name: "poor_lighting",
			Triggered: func(in Input, t Thresholds) bool {
				return in.Quality.Brightness < t.PoorLightingBrightness && in.Quality.Contrast < t.PoorLightingContrast
			},
			Category: taxonomy.PoorLighting,
		},
		{
			Name:      "blurry",
			Triggered: func(in Input, t Thresholds) bool { return in.Quality.Sharpness < t.MinSharpness },
			Category:  taxonomy.ImageBlurry,
		},
		{
			Name:      "slightly_blurry",
			Triggered: func(in Input, t Thresholds) bool { return in.Quality.Sharpness < t.SoftSharpness },
			Warning:   WarningSlightlyBlur,
		},
		{
			Name:      "low_contrast",
			Triggered: func(in Input, t Thresholds) bool { return in.Quality.Contrast < t.LowContrast },
			Warning:   WarningLowContrast,
		},
		{
			Name:      "harsh_shadows",
			Triggered: func(in Input, _ Thresholds) bool { return in.Lighting.HarshShadows },
			Category:  taxonomy.HarshShadows,
		},
		{
			Name:      "overexposed_regions",
			Triggered: func(in Input, _ Thresholds) bool { return in.Lighting.Overexposed },
			Warning:   WarningOverexposed,
		},
		{
			Name:      "underexposed_regions",
			Triggered: func(in Input, _ Thresholds) bool { return in.Lighting.Underexposed },
			Warning:   WarningUnderexposed,
		},
		{
			Name:      "uneven_lighting",
			Triggered: func(in Input, _ Thresholds) bool { return in.Lighting.UnevenLighting },
			Warning:   WarningUneven,
		},
	}
}

// NearEdge reports whether a normalized box lies within margin of any border.
func NearEdge(pos *models.FacePosition, margin float64) bool {
	if pos == nil {
		return false
	}
	return pos.X < margin ||
		pos.Y < margin ||
		pos.X+pos.Width > 1-margin ||
		pos.Y+pos.Height > 1-margin
}

// Engine evaluates inputs against an ordered rule list
type Engine struct {
	thresholds Thresholds
	rules      []Rule
}

// NewEngine creates an engine with default thresholds and rules
func NewEngine() *Engine {
	return NewEngineWithThresholds(DefaultThresholds())
}

// NewEngineWithThresholds creates an engine with custom thresholds
func NewEngineWithThresholds(thresholds Thresholds) *Engine {
	return &Engine{
		thresholds: thresholds,
		rules:      DefaultRules(),
	}
}

// Thresholds returns the thresholds in use.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate applies the rules in order. The first failing rule sets the error
// type and stops evaluation; warnings gathered before it are kept.
func (e *Engine) Evaluate(in Input) models.ValidationResult {
	details := models.ValidationDetails{
		FaceCount:    in.FaceCount,
		ImageQuality: in.Quality,
		Lighting:     in.Lighting,
		Warnings:     []string{},
	}
	if in.FaceCount == 1 {
		area := in.FaceArea
		details.FaceArea = &area
		if in.FacePosition != nil {
			pos := *in.FacePosition
			details.FacePosition = &pos
		}
	}

	for _, rule := range e.rules {
		if !rule.Triggered(in, e.thresholds) {
			continue
		}
		if rule.IsWarning() {
			details.Warnings = append(details.Warnings, rule.Warning)
			continue
		}
		return models.ValidationResult{
			IsValid:   false,
			ErrorType: rule.Category.Ptr(),
			Details:   details,
		}
	}

	return models.ValidationResult{
		IsValid: true,
		Details: details,
	}
}
