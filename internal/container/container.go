package container

import (
	"fmt"
	"net/http"

	"go-photo-validator/internal/analyzer"
	"go-photo-validator/internal/config"
	"go-photo-validator/internal/face"
	"go-photo-validator/internal/factory"
	"go-photo-validator/internal/logger"
	"go-photo-validator/internal/observer"
	"go-photo-validator/internal/service"
	"go-photo-validator/internal/storage"
	"go-photo-validator/internal/transport"
	"go-photo-validator/pkg/classifier"
	"go-photo-validator/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	photoValidator    analyzer.PhotoValidator
	publisher         *observer.EventPublisher
	validationService service.ValidationService
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory(cfg)

	loader, err := components.DetectorFactory.CreateLoader(factory.DetectorType(cfg.FaceDetector))
	if err != nil {
		return nil, fmt.Errorf("failed to create face detector: %w", err)
	}
	locator := face.NewLocator(loader)

	opts := analyzer.DefaultOptions().
		WithWorkingResolution(cfg.WorkingResolution).
		WithWorkers(cfg.MaxWorkers)
	photoValidator := analyzer.NewPhotoValidator(locator, opts)

	// Build dependency graph
	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	validationService := service.NewValidationService(photoValidator, service.Options{
		Fetcher:      storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize),
		URLValidator: validation.NewPhotoURLValidatorWithHosts(cfg.AllowedHosts),
		Classifier:   classifier.New(classifier.WithTypoTolerance(cfg.ClassifierTypoTolerance)),
		Publisher:    publisher,
		Policy:       service.PolicyFor(cfg.FailOpen),
		Timeout:      cfg.ValidationTimeout,
	})
	handler := transport.NewHandler(validationService, metrics, locator, cfg)

	return &Container{
		photoValidator:    photoValidator,
		publisher:         publisher,
		validationService: validationService,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Service returns the validation service
func (c *Container) Service() service.ValidationService {
	return c.validationService
}

// Close drains pending events and stops the analysis workers
func (c *Container) Close() error {
	c.publisher.Wait()
	return c.photoValidator.Close()
}
