package observer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-photo-validator/pkg/taxonomy"
)

type countingObserver struct {
	name  string
	count atomic.Int32
}

func (o *countingObserver) OnEvent(ctx context.Context, event ValidationEvent) {
	o.count.Add(1)
}

func (o *countingObserver) GetObserverName() string {
	return o.name
}

type panickingObserver struct{}

func (panickingObserver) OnEvent(ctx context.Context, event ValidationEvent) {
	panic("boom")
}

func (panickingObserver) GetObserverName() string {
	return "panicking"
}

func completed(valid bool, category taxonomy.ErrorCategory, d time.Duration) ValidationEvent {
	e := NewEvent(ValidationCompleted)
	e.IsValid = valid
	e.Category = category
	e.ProcessingTime = d
	return e
}

func TestNewEvent(t *testing.T) {
	a, b := NewEvent(ValidationStarted), NewEvent(ValidationStarted)
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("Expected a UUID, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("Expected distinct event IDs")
	}
	if a.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
}

func TestMetricsObserver(t *testing.T) {
	m := NewMetricsObserver()
	ctx := context.Background()

	m.OnEvent(ctx, NewEvent(ValidationStarted))
	m.OnEvent(ctx, NewEvent(ValidationStarted))
	m.OnEvent(ctx, NewEvent(ValidationStarted))
	m.OnEvent(ctx, completed(true, "", 10*time.Millisecond))
	m.OnEvent(ctx, completed(false, taxonomy.TooDark, 30*time.Millisecond))

	failedOpen := completed(true, "", 20*time.Millisecond)
	failedOpen.FailedOpen = true
	m.OnEvent(ctx, failedOpen)

	m.OnEvent(ctx, NewEvent(ValidationFailed))
	m.OnEvent(ctx, NewEvent(ImageFetchFailed))

	classified := NewEvent(ErrorClassified)
	classified.Category = taxonomy.SunglassesDetected
	m.OnEvent(ctx, classified)

	got := m.GetMetrics()
	if got.TotalValidations != 3 {
		t.Errorf("Expected 3 validations, got %d", got.TotalValidations)
	}
	if got.ValidPhotos != 2 || got.InvalidPhotos != 1 {
		t.Errorf("Expected 2 valid and 1 invalid, got %d and %d", got.ValidPhotos, got.InvalidPhotos)
	}
	if got.FailedOpen != 1 || got.FailedValidations != 1 || got.ImageFetchFailures != 1 {
		t.Errorf("Unexpected failure counters: %+v", got)
	}
	if got.AvgProcessingTime != 20*time.Millisecond {
		t.Errorf("Expected 20ms average, got %s", got.AvgProcessingTime)
	}
	if got.Rejections["TOO_DARK"] != 1 || len(got.Rejections) != 1 {
		t.Errorf("Expected one TOO_DARK rejection, got %v", got.Rejections)
	}
	if got.Classifications != 1 || got.ClassifiedErrors["SUNGLASSES_DETECTED"] != 1 {
		t.Errorf("Expected one classified sunglasses error, got %v", got.ClassifiedErrors)
	}
}

func TestMetricsObserver_Empty(t *testing.T) {
	got := NewMetricsObserver().GetMetrics()
	if got.AvgProcessingTime != 0 || got.TotalValidations != 0 {
		t.Errorf("Expected zero metrics, got %+v", got)
	}
	if got.Rejections == nil {
		t.Error("Expected an empty, non-nil rejections map")
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	obs := NewLoggingObserver(log)

	e := completed(false, taxonomy.ImageBlurry, time.Millisecond)
	e.Source = "upload"
	obs.OnEvent(context.Background(), e)

	// debug events are filtered at info level
	obs.OnEvent(context.Background(), NewEvent(ValidationStarted))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %v", err)
	}
	if entry["msg"] != "Photo validation completed" {
		t.Errorf("Unexpected message %v", entry["msg"])
	}
	if entry["category"] != "IMAGE_BLURRY" || entry["source"] != "upload" || entry["is_valid"] != false {
		t.Errorf("Unexpected fields %v", entry)
	}
}

func TestEventPublisher(t *testing.T) {
	p := NewEventPublisher()
	a := &countingObserver{name: "a"}
	b := &countingObserver{name: "b"}
	p.Subscribe(a)
	p.Subscribe(b)
	p.Subscribe(panickingObserver{})

	for i := 0; i < 5; i++ {
		p.NotifyObservers(context.Background(), NewEvent(ValidationStarted))
	}
	p.Wait()

	if a.count.Load() != 5 || b.count.Load() != 5 {
		t.Errorf("Expected 5 events each, got %d and %d", a.count.Load(), b.count.Load())
	}

	p.Unsubscribe(&countingObserver{name: "a"})
	p.NotifyObservers(context.Background(), NewEvent(ValidationStarted))
	p.Wait()

	if a.count.Load() != 5 {
		t.Errorf("Expected unsubscribed observer to stay at 5, got %d", a.count.Load())
	}
	if b.count.Load() != 6 {
		t.Errorf("Expected 6 events, got %d", b.count.Load())
	}
}

func TestEventPublisher_CancelledContext(t *testing.T) {
	p := NewEventPublisher()
	seen := make(chan error, 1)
	p.Subscribe(observerFunc(func(ctx context.Context, _ ValidationEvent) {
		seen <- ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.NotifyObservers(ctx, NewEvent(ValidationCompleted))
	p.Wait()

	if err := <-seen; err != nil {
		t.Errorf("Expected observers to see a live context, got %v", err)
	}
}

type observerFunc func(ctx context.Context, event ValidationEvent)

func (f observerFunc) OnEvent(ctx context.Context, event ValidationEvent) { f(ctx, event) }
func (f observerFunc) GetObserverName() string                            { return "func" }
