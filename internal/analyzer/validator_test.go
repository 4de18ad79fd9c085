package analyzer

import (
	"context"
	"errors"
	"image"
	"reflect"
	"testing"

	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/internal/face"
	"go-photo-validator/pkg/models"
	"go-photo-validator/pkg/taxonomy"
	"go-photo-validator/pkg/validation"
)

func newTestValidator(t *testing.T, d face.Detector, opts AnalysisOptions) PhotoValidator {
	t.Helper()
	pv := NewPhotoValidator(face.NewLocator(face.StaticLoader(d)), opts)
	t.Cleanup(func() { pv.Close() })
	return pv
}

func validateImage(t *testing.T, pv PhotoValidator, img *image.RGBA) models.ValidationResult {
	t.Helper()
	result, err := pv.ValidateImage(context.Background(), img)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return result
}

func TestPhotoValidator_BlackImageIsTooDark(t *testing.T) {
	pv := newTestValidator(t, face.CenteredDetector(0.5), DefaultOptions())

	result := validateImage(t, pv, createTestImage(300, 300, gray(0)))
	if result.IsValid {
		t.Fatal("Expected a black photo to be invalid")
	}
	if result.ErrorType == nil || *result.ErrorType != taxonomy.TooDark {
		t.Errorf("Expected TOO_DARK, got %v", result.ErrorType)
	}
	if result.Details.ImageQuality.Brightness != 0 {
		t.Errorf("Expected brightness 0, got %f", result.Details.ImageQuality.Brightness)
	}
}

func TestPhotoValidator_BrightnessBoundaries(t *testing.T) {
	testCases := []struct {
		level    uint8
		expected taxonomy.ErrorCategory
	}{
		{59, taxonomy.TooDark},
		{60, taxonomy.PoorLighting},
		{220, taxonomy.ImageBlurry},
		{221, taxonomy.TooBright},
	}

	pv := newTestValidator(t, face.CenteredDetector(0.5), SequentialOptions())
	for _, tc := range testCases {
		result := validateImage(t, pv, createTestImage(300, 300, gray(tc.level)))
		if result.ErrorType == nil || *result.ErrorType != tc.expected {
			t.Errorf("Gray %d: expected %s, got %v", tc.level, tc.expected, result.ErrorType)
		}
	}
}

func TestPhotoValidator_FaceRules(t *testing.T) {
	testCases := []struct {
		name     string
		detector face.Detector
		expected taxonomy.ErrorCategory
	}{
		{"No face", face.NewStaticDetector(), taxonomy.NoFaceDetected},
		{
			"Two faces",
			face.NewStaticDetector(
				models.FacePosition{X: 0.1, Y: 0.2, Width: 0.3, Height: 0.4},
				models.FacePosition{X: 0.6, Y: 0.2, Width: 0.3, Height: 0.4},
			),
			taxonomy.MultipleFaces,
		},
		{"Small face", face.CenteredDetector(0.05), taxonomy.FaceTooSmall},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pv := newTestValidator(t, tc.detector, SequentialOptions())
			result := validateImage(t, pv, createCheckerboard(200, 200, 80, 200))
			if result.IsValid {
				t.Fatal("Expected invalid result")
			}
			if *result.ErrorType != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, *result.ErrorType)
			}
		})
	}
}

func TestPhotoValidator_ValidPhoto(t *testing.T) {
	pv := newTestValidator(t, face.CenteredDetector(0.3), DefaultOptions())

	result := validateImage(t, pv, createCheckerboard(200, 200, 80, 200))
	if !result.IsValid {
		t.Fatalf("Expected valid photo, got %v", *result.ErrorType)
	}
	if result.ErrorType != nil {
		t.Errorf("Expected no error type, got %s", *result.ErrorType)
	}
	if len(result.Details.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Details.Warnings)
	}
	if result.Details.FaceCount != 1 || result.Details.FaceArea == nil || result.Details.FacePosition == nil {
		t.Errorf("Expected face details for a single face, got %+v", result.Details)
	}
	if result.Details.ImageQuality.Brightness != 140 {
		t.Errorf("Expected brightness 140, got %f", result.Details.ImageQuality.Brightness)
	}
}

func TestPhotoValidator_NearEdgeWarning(t *testing.T) {
	d := face.NewStaticDetector(models.FacePosition{X: 0.01, Y: 0.3, Width: 0.5, Height: 0.5})
	pv := newTestValidator(t, d, SequentialOptions())

	result := validateImage(t, pv, createCheckerboard(200, 200, 80, 200))
	if !result.IsValid {
		t.Fatalf("Expected warning only, got %v", *result.ErrorType)
	}
	if len(result.Details.Warnings) != 1 || result.Details.Warnings[0] != validation.WarningNearEdge {
		t.Errorf("Expected near-edge warning, got %v", result.Details.Warnings)
	}
}

func TestPhotoValidator_EncodedRoundTrip(t *testing.T) {
	pv := newTestValidator(t, face.CenteredDetector(0.3), DefaultOptions())
	img := createCheckerboard(200, 200, 80, 200)

	fromBytes, err := pv.Validate(context.Background(), encodePNG(t, img))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	direct := validateImage(t, pv, img)
	if !reflect.DeepEqual(fromBytes, direct) {
		t.Errorf("Expected encoded and decoded paths to agree:\n%+v\n%+v", fromBytes, direct)
	}
}

func TestPhotoValidator_UndecodableBytes(t *testing.T) {
	pv := newTestValidator(t, face.CenteredDetector(0.3), SequentialOptions())

	_, err := pv.Validate(context.Background(), []byte("garbage"))
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Fatalf("Expected decode error, got %v", err)
	}
	if apperrors.CategoryOf(err) != taxonomy.UnsupportedFormat {
		t.Errorf("Expected UNSUPPORTED_FORMAT, got %s", apperrors.CategoryOf(err))
	}
}

func TestPhotoValidator_Deterministic(t *testing.T) {
	img := createGradientImage(640, 480)
	d := face.CenteredDetector(0.25)

	baseline := validateImage(t, newTestValidator(t, d, SequentialOptions()), img)
	for _, workers := range []int{1, 4} {
		pv := newTestValidator(t, d, DefaultOptions().WithWorkers(workers))
		for i := 0; i < 3; i++ {
			got := validateImage(t, pv, img)
			if !reflect.DeepEqual(got, baseline) {
				t.Errorf("%d workers run %d: expected %+v, got %+v", workers, i, baseline, got)
			}
		}
	}
}

func TestPhotoValidator_CapabilityFailure(t *testing.T) {
	loadErr := errors.New("weights missing")
	locator := face.NewLocator(func(context.Context) (face.Detector, error) {
		return nil, loadErr
	})
	pv := NewPhotoValidator(locator, SequentialOptions())
	defer pv.Close()

	if err := pv.Initialize(context.Background()); !apperrors.IsType(err, apperrors.ErrorTypeCapability) {
		t.Errorf("Expected capability error from Initialize, got %v", err)
	}

	_, err := pv.ValidateImage(context.Background(), createCheckerboard(50, 50, 80, 200))
	if !apperrors.IsType(err, apperrors.ErrorTypeCapability) {
		t.Fatalf("Expected capability error, got %v", err)
	}
	if !errors.Is(err, loadErr) {
		t.Error("Expected the load error to be preserved as the cause")
	}
}
