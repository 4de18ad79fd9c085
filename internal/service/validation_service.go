package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-photo-validator/internal/analyzer"
	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/internal/observer"
	"go-photo-validator/internal/storage"
	"go-photo-validator/pkg/classifier"
	"go-photo-validator/pkg/models"
	"go-photo-validator/pkg/taxonomy"
	"go-photo-validator/pkg/validation"
)

// Sources recorded on validation events
const (
	SourceUpload = "upload"
	SourceURL    = "url"
)

// ValidationService is the calling layer around the photo validator and the
// error text classifier.
type ValidationService interface {
	// Initialize loads the face detector ahead of the first request.
	Initialize(ctx context.Context) error

	ValidatePhoto(ctx context.Context, data []byte) (*models.ValidationResponse, error)
	ValidatePhotoURL(ctx context.Context, imageURL string) (*models.ValidationResponse, error)

	// ClassifyRemoteError maps error text from the remote analysis service
	// into the local taxonomy.
	ClassifyRemoteError(ctx context.Context, message, detail string) models.ClassifyResponse

	// LookupErrorInfo and Catalog return copy in the locale carried by ctx.
	LookupErrorInfo(ctx context.Context, name string) (taxonomy.ErrorInfo, error)
	Catalog(ctx context.Context) []taxonomy.ErrorInfo
}

// Options configures a validation service. Zero values select defaults.
type Options struct {
	Fetcher      storage.ImageFetcher
	URLValidator *validation.PhotoURLValidator
	Classifier   *classifier.Classifier
	Publisher    observer.Subject
	Policy       FailurePolicy
	Timeout      time.Duration
}

// validationService implements ValidationService
type validationService struct {
	validator    analyzer.PhotoValidator
	fetcher      storage.ImageFetcher
	urlValidator *validation.PhotoURLValidator
	classifier   *classifier.Classifier
	publisher    observer.Subject
	policy       FailurePolicy
	timeout      time.Duration
}

// NewValidationService creates a new validation service
func NewValidationService(validator analyzer.PhotoValidator, opts Options) ValidationService {
	s := &validationService{
		validator:    validator,
		fetcher:      opts.Fetcher,
		urlValidator: opts.URLValidator,
		classifier:   opts.Classifier,
		publisher:    opts.Publisher,
		policy:       opts.Policy,
		timeout:      opts.Timeout,
	}
	if s.fetcher == nil {
		s.fetcher = storage.NewHTTPImageFetcher(0, 0)
	}
	if s.urlValidator == nil {
		s.urlValidator = validation.NewPhotoURLValidator()
	}
	if s.classifier == nil {
		s.classifier = classifier.New()
	}
	if s.publisher == nil {
		s.publisher = observer.NewEventPublisher()
	}
	if s.policy == nil {
		s.policy = FailOpen
	}
	return s
}

// Initialize implements ValidationService.
func (s *validationService) Initialize(ctx context.Context) error {
	return s.validator.Initialize(ctx)
}

// ValidatePhoto implements ValidationService.
func (s *validationService) ValidatePhoto(ctx context.Context, data []byte) (*models.ValidationResponse, error) {
	return s.validate(ctx, data, SourceUpload, "")
}

// ValidatePhotoURL implements ValidationService.
func (s *validationService) ValidatePhotoURL(ctx context.Context, imageURL string) (*models.ValidationResponse, error) {
	if err := s.urlValidator.Validate(imageURL); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		event := observer.NewEvent(observer.ImageFetchFailed)
		event.Source = SourceURL
		event.ImageURL = imageURL
		event.ProcessingTime = time.Since(start)
		event.ErrorMessage = err.Error()
		s.publisher.NotifyObservers(ctx, event)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}

	event := observer.NewEvent(observer.ImageFetched)
	event.Source = SourceURL
	event.ImageURL = imageURL
	event.ProcessingTime = time.Since(start)
	event.Metadata = map[string]interface{}{"bytes": len(data)}
	s.publisher.NotifyObservers(ctx, event)

	return s.validate(ctx, data, SourceURL, imageURL)
}

func (s *validationService) validate(ctx context.Context, data []byte, source, imageURL string) (*models.ValidationResponse, error) {
	start := time.Now()

	started := observer.NewEvent(observer.ValidationStarted)
	started.Source = source
	started.ImageURL = imageURL
	s.publisher.NotifyObservers(ctx, started)

	vctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		vctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, validateErr := s.validator.Validate(vctx, data)
	failedOpen := false
	if validateErr != nil {
		var err error
		result, failedOpen, err = s.policy(validateErr)
		if err != nil {
			failed := observer.NewEvent(observer.ValidationFailed)
			failed.Source = source
			failed.ImageURL = imageURL
			failed.ProcessingTime = time.Since(start)
			failed.Category = apperrors.CategoryOf(err)
			failed.ErrorMessage = err.Error()
			s.publisher.NotifyObservers(ctx, failed)
			return nil, err
		}
	}

	response := &models.ValidationResponse{
		ID:                uuid.NewString(),
		Timestamp:         time.Now().UTC(),
		ProcessingTimeSec: time.Since(start).Seconds(),
		Result:            result,
		FailedOpen:        failedOpen,
	}
	if result.ErrorType != nil {
		info := taxonomy.MustLookupLocale(*result.ErrorType, taxonomy.LocaleFromContext(ctx))
		response.ErrorInfo = &info
	}

	done := observer.NewEvent(observer.ValidationCompleted)
	done.ID = response.ID
	done.Source = source
	done.ImageURL = imageURL
	done.ProcessingTime = time.Since(start)
	done.IsValid = result.IsValid
	done.FailedOpen = failedOpen
	if result.ErrorType != nil {
		done.Category = *result.ErrorType
	}
	if failedOpen {
		done.ErrorMessage = validateErr.Error()
	}
	s.publisher.NotifyObservers(ctx, done)

	return response, nil
}

// ClassifyRemoteError implements ValidationService.
func (s *validationService) ClassifyRemoteError(ctx context.Context, message, detail string) models.ClassifyResponse {
	category := s.classifier.Classify(message, detail)

	event := observer.NewEvent(observer.ErrorClassified)
	event.Category = category
	s.publisher.NotifyObservers(ctx, event)

	return models.ClassifyResponse{
		Category:  category,
		ErrorInfo: taxonomy.MustLookupLocale(category, taxonomy.LocaleFromContext(ctx)),
	}
}

// LookupErrorInfo implements ValidationService.
func (s *validationService) LookupErrorInfo(ctx context.Context, name string) (taxonomy.ErrorInfo, error) {
	category, ok := taxonomy.Parse(name)
	if !ok {
		return taxonomy.ErrorInfo{}, apperrors.NewNotFoundError("unknown error category: "+name, nil)
	}
	return taxonomy.MustLookupLocale(category, taxonomy.LocaleFromContext(ctx)), nil
}

// Catalog implements ValidationService.
func (s *validationService) Catalog(ctx context.Context) []taxonomy.ErrorInfo {
	return taxonomy.CatalogLocale(taxonomy.LocaleFromContext(ctx))
}
