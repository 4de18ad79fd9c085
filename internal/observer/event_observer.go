package observer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-photo-validator/pkg/taxonomy"
)

// ValidationEvent represents a validation or classification event
type ValidationEvent struct {
	ID             string                 `json:"id"`
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Source         string                 `json:"source,omitempty"`
	ImageURL       string                 `json:"image_url,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	IsValid        bool                   `json:"is_valid"`
	Category       taxonomy.ErrorCategory `json:"category,omitempty"`
	FailedOpen     bool                   `json:"failed_open,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of validation event
type EventType string

const (
	// ValidationStarted when a photo is accepted for validation
	ValidationStarted EventType = "validation_started"
	// ValidationCompleted when a verdict was produced, valid or not
	ValidationCompleted EventType = "validation_completed"
	// ValidationFailed when infrastructure prevented a verdict
	ValidationFailed EventType = "validation_failed"
	// ImageFetched when a photo is downloaded by URL
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when a photo download fails
	ImageFetchFailed EventType = "image_fetch_failed"
	// ErrorClassified when remote error text is mapped to a category
	ErrorClassified EventType = "error_classified"
)

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType EventType) ValidationEvent {
	return ValidationEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ValidationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ValidationEvent)
}

// LoggingObserver logs validation events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles validation events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ValidationEvent) {
	fields := logrus.Fields{
		"event_id":        event.ID,
		"event_type":      event.EventType,
		"processing_time": event.ProcessingTime,
	}
	if event.Source != "" {
		fields["source"] = event.Source
	}
	if event.ImageURL != "" {
		fields["image_url"] = event.ImageURL
	}
	if event.Category != "" {
		fields["category"] = event.Category
	}
	if event.EventType == ValidationCompleted {
		fields["is_valid"] = event.IsValid
		fields["failed_open"] = event.FailedOpen
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case ValidationStarted:
		entry.Debug("Photo validation started")
	case ValidationCompleted:
		if event.FailedOpen {
			entry.Warn("Photo validation failed open")
		} else {
			entry.Info("Photo validation completed")
		}
	case ValidationFailed:
		entry.Error("Photo validation failed")
	case ImageFetched:
		entry.Debug("Image fetched successfully")
	case ImageFetchFailed:
		entry.Error("Image fetch failed")
	case ErrorClassified:
		entry.Info("Remote error classified")
	default:
		entry.Info("Validation event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// Metrics is a snapshot of the counters kept by MetricsObserver
type Metrics struct {
	TotalValidations    int64            `json:"total_validations"`
	ValidPhotos         int64            `json:"valid_photos"`
	InvalidPhotos       int64            `json:"invalid_photos"`
	FailedValidations   int64            `json:"failed_validations"`
	FailedOpen          int64            `json:"failed_open"`
	ImageFetchFailures  int64            `json:"image_fetch_failures"`
	Classifications     int64            `json:"classifications"`
	Rejections          map[string]int64 `json:"rejections"`
	ClassifiedErrors    map[string]int64 `json:"classified_errors"`
	TotalProcessingTime time.Duration    `json:"total_processing_time"`
	AvgProcessingTime   time.Duration    `json:"avg_processing_time"`
}

// MetricsObserver collects metrics from validation events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalValidations    int64
	validPhotos         int64
	invalidPhotos       int64
	failedValidations   int64
	failedOpen          int64
	imageFetchFailures  int64
	classifications     int64
	rejections          map[taxonomy.ErrorCategory]int64
	classified          map[taxonomy.ErrorCategory]int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		rejections: make(map[taxonomy.ErrorCategory]int64),
		classified: make(map[taxonomy.ErrorCategory]int64),
	}
}

// OnEvent handles validation events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event ValidationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ValidationStarted:
		o.totalValidations++
	case ValidationCompleted:
		o.totalProcessingTime += event.ProcessingTime
		if event.FailedOpen {
			o.failedOpen++
		}
		if event.IsValid {
			o.validPhotos++
		} else {
			o.invalidPhotos++
			o.rejections[event.Category]++
		}
	case ValidationFailed:
		o.failedValidations++
	case ImageFetchFailed:
		o.imageFetchFailures++
	case ErrorClassified:
		o.classifications++
		o.classified[event.Category]++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() Metrics {
	o.mu.RLock()
	defer o.mu.RUnlock()

	completed := o.validPhotos + o.invalidPhotos
	avgProcessingTime := time.Duration(0)
	if completed > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(completed)
	}

	return Metrics{
		TotalValidations:    o.totalValidations,
		ValidPhotos:         o.validPhotos,
		InvalidPhotos:       o.invalidPhotos,
		FailedValidations:   o.failedValidations,
		FailedOpen:          o.failedOpen,
		ImageFetchFailures:  o.imageFetchFailures,
		Classifications:     o.classifications,
		Rejections:          countsByName(o.rejections),
		ClassifiedErrors:    countsByName(o.classified),
		TotalProcessingTime: o.totalProcessingTime,
		AvgProcessingTime:   avgProcessingTime,
	}
}

func countsByName(counts map[taxonomy.ErrorCategory]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for c, n := range counts {
		out[c.String()] = n
	}
	return out
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
	inflight  sync.WaitGroup
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ValidationEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Observers must not hold up the request, nor see its cancellation
	ctx = context.WithoutCancel(ctx)
	for _, observer := range observers {
		p.inflight.Add(1)
		go func(obs Observer) {
			defer p.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}

// Wait blocks until every notification dispatched so far has been handled.
func (p *EventPublisher) Wait() {
	p.inflight.Wait()
}
