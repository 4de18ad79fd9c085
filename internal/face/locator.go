package face

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/singleflight"

	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/internal/logger"
	"go-photo-validator/pkg/models"
)

const loadKey = "detector"

// Locator owns the process-wide face-detection capability. The detector is
// loaded on first use, shared by every caller, and kept until the process exits.
type Locator struct {
	load  Loader
	group singleflight.Group

	mu       sync.RWMutex
	detector Detector
}

// NewLocator creates a locator that obtains its detector from load.
func NewLocator(load Loader) *Locator {
	return &Locator{load: load}
}

// Initialize loads the detector if it is not loaded yet. Concurrent callers
// share one in-flight load. A failed load is returned to everyone waiting on
// it and is retried on the next call. Cancelling ctx stops this caller's wait
// without aborting the shared load.
func (l *Locator) Initialize(ctx context.Context) error {
	_, err := l.detectorFor(ctx)
	return err
}

// Ready reports whether the detector has been loaded.
func (l *Locator) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.detector != nil
}

// Locate initializes on demand, then returns the faces found in img.
func (l *Locator) Locate(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error) {
	d, err := l.detectorFor(ctx)
	if err != nil {
		return nil, err
	}

	faces, err := d.Detect(ctx, img)
	if err != nil {
		return nil, apperrors.NewDetectionError("face detection failed", err)
	}
	return faces, nil
}

func (l *Locator) detectorFor(ctx context.Context) (Detector, error) {
	l.mu.RLock()
	d := l.detector
	l.mu.RUnlock()
	if d != nil {
		return d, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(loadKey, func() (interface{}, error) {
		l.mu.RLock()
		cached := l.detector
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		log := logger.ForComponent("face_locator")
		log.Info("Loading face detector")
		loaded, err := l.load(loadCtx)
		if err != nil {
			log.WithError(err).Error("Face detector failed to load")
			return nil, err
		}
		if loaded == nil {
			return nil, apperrors.NewCapabilityError("face detector loader returned nil", nil)
		}

		l.mu.Lock()
		l.detector = loaded
		l.mu.Unlock()
		log.Info("Face detector ready")
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.NewTimeoutError("waiting for face detector", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if apperrors.IsType(res.Err, apperrors.ErrorTypeCapability) {
				return nil, res.Err
			}
			return nil, apperrors.NewCapabilityError("failed to initialize face detection", res.Err)
		}
		return res.Val.(Detector), nil
	}
}
