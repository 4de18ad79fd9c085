package analyzer

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"go-photo-validator/internal/face"
	"go-photo-validator/pkg/models"
	"go-photo-validator/pkg/validation"
)

// photoValidator implements PhotoValidator and orchestrates all components
type photoValidator struct {
	workerPool *WorkerPool
	decoder    *Decoder
	locator    FaceLocator
	quality    QualityMeasurer
	lighting   LightingMeasurer
	engine     *validation.Engine
}

// NewPhotoValidator creates a validator using locator for face detection.
func NewPhotoValidator(locator FaceLocator, opts AnalysisOptions) PhotoValidator {
	return NewPhotoValidatorWithDecoder(locator, NewDecoder(0), opts)
}

// NewPhotoValidatorWithDecoder creates a validator with a custom decoder.
func NewPhotoValidatorWithDecoder(locator FaceLocator, decoder *Decoder, opts AnalysisOptions) PhotoValidator {
	var pool *WorkerPool
	if opts.UseWorkerPool {
		pool = NewWorkerPool(opts.MaxWorkers)
		pool.Start()
	}

	return &photoValidator{
		workerPool: pool,
		decoder:    decoder,
		locator:    locator,
		quality:    NewQualityAnalyzer(opts, pool),
		lighting:   NewLightingAnalyzer(opts, pool),
		engine:     validation.NewEngineWithThresholds(opts.Thresholds),
	}
}

// Initialize implements PhotoValidator.
func (pv *photoValidator) Initialize(ctx context.Context) error {
	return pv.locator.Initialize(ctx)
}

// Validate implements PhotoValidator. Errors are infrastructure faults only;
// an unusable photo is reported through the result.
func (pv *photoValidator) Validate(ctx context.Context, data []byte) (models.ValidationResult, error) {
	img, _, err := pv.decoder.Decode(data)
	if err != nil {
		return models.ValidationResult{}, err
	}
	return pv.ValidateImage(ctx, img)
}

// ValidateImage implements PhotoValidator. Face detection runs alongside the
// pixel analysis.
func (pv *photoValidator) ValidateImage(ctx context.Context, img *image.RGBA) (models.ValidationResult, error) {
	var (
		faces    []models.FaceRegion
		quality  models.QualityMetrics
		lighting models.LightingFlags
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		faces, err = pv.locator.Locate(gctx, img)
		return err
	})
	g.Go(func() error {
		quality = pv.quality.Analyze(img)
		lighting = pv.lighting.Analyze(img, quality.Contrast)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.ValidationResult{}, err
	}

	return pv.engine.Evaluate(buildInput(faces, img, quality, lighting)), nil
}

func buildInput(faces []models.FaceRegion, img *image.RGBA, quality models.QualityMetrics, lighting models.LightingFlags) validation.Input {
	in := validation.Input{
		FaceCount: len(faces),
		Quality:   quality,
		Lighting:  lighting,
	}
	if len(faces) == 1 {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		pos := face.Normalize(faces[0], w, h)
		in.FaceArea = face.Area(faces[0], w, h)
		in.FacePosition = &pos
	}
	return in
}

// Close implements PhotoValidator.
func (pv *photoValidator) Close() error {
	if pv.workerPool != nil {
		pv.workerPool.Close()
	}
	return nil
}
