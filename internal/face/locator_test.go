package face

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/pkg/models"
)

func TestLocator_ConcurrentInitializeLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	release := make(chan struct{})

	locator := NewLocator(func(ctx context.Context) (Detector, error) {
		loads.Add(1)
		<-release
		return CenteredDetector(0.25), nil
	})

	const callers = 32
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- locator.Initialize(context.Background())
		}()
	}

	// Let the callers pile up on the in-flight load before it finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	}
	if got := loads.Load(); got != 1 {
		t.Errorf("Expected exactly 1 load, got %d", got)
	}

	// Later calls reuse the cached detector.
	if err := locator.Initialize(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := loads.Load(); got != 1 {
		t.Errorf("Expected cached detector, got %d loads", got)
	}
	if !locator.Ready() {
		t.Error("Expected locator to be ready")
	}
}

func TestLocator_FailedLoadIsNotCached(t *testing.T) {
	var loads atomic.Int32
	locator := NewLocator(func(ctx context.Context) (Detector, error) {
		if loads.Add(1) == 1 {
			return nil, errors.New("weights missing")
		}
		return CenteredDetector(0.25), nil
	})

	err := locator.Initialize(context.Background())
	if err == nil {
		t.Fatal("Expected first initialization to fail")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeCapability) {
		t.Errorf("Expected capability error, got %v", err)
	}
	if locator.Ready() {
		t.Error("Expected locator not to be ready after failure")
	}

	if err := locator.Initialize(context.Background()); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if got := loads.Load(); got != 2 {
		t.Errorf("Expected 2 loads, got %d", got)
	}
}

func TestLocator_NilDetectorIsAnError(t *testing.T) {
	locator := NewLocator(func(ctx context.Context) (Detector, error) {
		return nil, nil
	})

	err := locator.Initialize(context.Background())
	if !apperrors.IsType(err, apperrors.ErrorTypeCapability) {
		t.Errorf("Expected capability error, got %v", err)
	}
}

func TestLocator_CancelledWaitDoesNotAbortLoad(t *testing.T) {
	release := make(chan struct{})
	var loadCtxErr atomic.Value
	locator := NewLocator(func(ctx context.Context) (Detector, error) {
		<-release
		loadCtxErr.Store(ctx.Err() == nil)
		return CenteredDetector(0.25), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- locator.Initialize(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
			t.Errorf("Expected timeout error for cancelled wait, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Cancelled caller did not return")
	}

	close(release)
	if err := locator.Initialize(context.Background()); err != nil {
		t.Fatalf("Expected shared load to complete, got %v", err)
	}
	if ok, _ := loadCtxErr.Load().(bool); !ok {
		t.Error("Expected the load context to survive caller cancellation")
	}
}

func TestLocator_LocateInitializesOnDemand(t *testing.T) {
	locator := NewLocator(StaticLoader(NewStaticDetector(
		models.FacePosition{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2},
		models.FacePosition{X: 0.6, Y: 0.6, Width: 0.2, Height: 0.2},
	)))

	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	faces, err := locator.Locate(context.Background(), img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(faces) != 2 {
		t.Fatalf("Expected 2 faces, got %d", len(faces))
	}
	expected := models.FaceRegion{X: 10, Y: 5, Width: 20, Height: 10}
	if faces[0].X != expected.X || faces[0].Y != expected.Y || faces[0].Width != expected.Width || faces[0].Height != expected.Height {
		t.Errorf("Expected %+v, got %+v", expected, faces[0])
	}
}

func TestLocator_DetectionErrorIsWrapped(t *testing.T) {
	locator := NewLocator(StaticLoader(DetectorFunc(
		func(context.Context, *image.RGBA) ([]models.FaceRegion, error) {
			return nil, errors.New("inference crashed")
		})))

	_, err := locator.Locate(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if !apperrors.IsType(err, apperrors.ErrorTypeDetection) {
		t.Errorf("Expected detection error, got %v", err)
	}
}
