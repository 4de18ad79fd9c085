package taxonomy

// ErrorCategory identifies why a photo cannot be analyzed.
// The string values are stable and shared with API clients.
type ErrorCategory string

const (
	// Face detection
	NoFaceDetected       ErrorCategory = "NO_FACE_DETECTED"
	MultipleFaces        ErrorCategory = "MULTIPLE_FACES"
	FaceTooSmall         ErrorCategory = "FACE_TOO_SMALL"
	FacePartiallyVisible ErrorCategory = "FACE_PARTIALLY_VISIBLE"
	FaceTooTilted        ErrorCategory = "FACE_TOO_TILTED"

	// Lighting
	TooDark      ErrorCategory = "TOO_DARK"
	TooBright    ErrorCategory = "TOO_BRIGHT"
	PoorLighting ErrorCategory = "POOR_LIGHTING"
	HarshShadows ErrorCategory = "HARSH_SHADOWS"

	// Image quality
	ImageBlurry   ErrorCategory = "IMAGE_BLURRY"
	LowResolution ErrorCategory = "LOW_RESOLUTION"
	PoorQuality   ErrorCategory = "POOR_QUALITY"

	// Distance
	TooFar   ErrorCategory = "TOO_FAR"
	TooClose ErrorCategory = "TOO_CLOSE"

	// Obstruction
	FaceCovered        ErrorCategory = "FACE_COVERED"
	SunglassesDetected ErrorCategory = "SUNGLASSES_DETECTED"
	MaskDetected       ErrorCategory = "MASK_DETECTED"

	// Technical
	UnsupportedFormat ErrorCategory = "UNSUPPORTED_FORMAT"
	CorruptedImage    ErrorCategory = "CORRUPTED_IMAGE"
	FileTooLarge      ErrorCategory = "FILE_TOO_LARGE"
	ProcessingError   ErrorCategory = "PROCESSING_ERROR"

	UnknownError ErrorCategory = "UNKNOWN_ERROR"
)

// Severity is how strongly the UI should present a category.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Group clusters related categories.
type Group string

const (
	GroupFace        Group = "face"
	GroupLighting    Group = "lighting"
	GroupQuality     Group = "quality"
	GroupDistance    Group = "distance"
	GroupObstruction Group = "obstruction"
	GroupTechnical   Group = "technical"
	GroupUnknown     Group = "unknown"
)

type categoryTraits struct {
	group    Group
	severity Severity
}

var traits = map[ErrorCategory]categoryTraits{
	NoFaceDetected:       {GroupFace, SeverityError},
	MultipleFaces:        {GroupFace, SeverityError},
	FaceTooSmall:         {GroupFace, SeverityError},
	FacePartiallyVisible: {GroupFace, SeverityWarning},
	FaceTooTilted:        {GroupFace, SeverityWarning},
	TooDark:              {GroupLighting, SeverityError},
	TooBright:            {GroupLighting, SeverityError},
	PoorLighting:         {GroupLighting, SeverityWarning},
	HarshShadows:         {GroupLighting, SeverityWarning},
	ImageBlurry:          {GroupQuality, SeverityError},
	LowResolution:        {GroupQuality, SeverityWarning},
	PoorQuality:          {GroupQuality, SeverityWarning},
	TooFar:               {GroupDistance, SeverityWarning},
	TooClose:             {GroupDistance, SeverityWarning},
	FaceCovered:          {GroupObstruction, SeverityError},
	SunglassesDetected:   {GroupObstruction, SeverityWarning},
	MaskDetected:         {GroupObstruction, SeverityError},
	UnsupportedFormat:    {GroupTechnical, SeverityError},
	CorruptedImage:       {GroupTechnical, SeverityError},
	FileTooLarge:         {GroupTechnical, SeverityError},
	ProcessingError:      {GroupTechnical, SeverityError},
	UnknownError:         {GroupUnknown, SeverityInfo},
}

// order is the canonical listing order used by All and the catalog.
var order = []ErrorCategory{
	NoFaceDetected, MultipleFaces, FaceTooSmall, FacePartiallyVisible, FaceTooTilted,
	TooDark, TooBright, PoorLighting, HarshShadows,
	ImageBlurry, LowResolution, PoorQuality,
	TooFar, TooClose,
	FaceCovered, SunglassesDetected, MaskDetected,
	UnsupportedFormat, CorruptedImage, FileTooLarge, ProcessingError,
	UnknownError,
}

// All returns every category in canonical order.
func All() []ErrorCategory {
	out := make([]ErrorCategory, len(order))
	copy(out, order)
	return out
}

// Parse converts a wire name into a category.
func Parse(s string) (ErrorCategory, bool) {
	c := ErrorCategory(s)
	_, ok := traits[c]
	return c, ok
}

// Valid reports whether c is a known category.
func (c ErrorCategory) Valid() bool {
	_, ok := traits[c]
	return ok
}

// Severity returns the fixed severity of c. Unknown values are treated as UNKNOWN_ERROR.
func (c ErrorCategory) Severity() Severity {
	if t, ok := traits[c]; ok {
		return t.severity
	}
	return traits[UnknownError].severity
}

// Group returns the group c belongs to.
func (c ErrorCategory) Group() Group {
	if t, ok := traits[c]; ok {
		return t.group
	}
	return GroupUnknown
}

func (c ErrorCategory) String() string {
	return string(c)
}

// Ptr returns a pointer to a copy of c, for optional result fields.
func (c ErrorCategory) Ptr() *ErrorCategory {
	return &c
}
