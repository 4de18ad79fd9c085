package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
	if cfg.ValidationTimeout != 20*time.Second {
		t.Errorf("Expected 20s validation timeout, got %s", cfg.ValidationTimeout)
	}
	if !cfg.FailOpen {
		t.Error("Expected fail-open by default")
	}
	if cfg.WorkingResolution != 300 {
		t.Errorf("Expected working resolution 300, got %d", cfg.WorkingResolution)
	}
	if cfg.FaceDetector != DetectorCascade || cfg.ModelSource != ModelSourceLocal {
		t.Errorf("Expected cascade detector from local models, got %s/%s", cfg.FaceDetector, cfg.ModelSource)
	}
	if cfg.ModelName != "haarcascade_frontalface_default.xml" {
		t.Errorf("Unexpected model name %s", cfg.ModelName)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("Expected no host allow-list, got %v", cfg.AllowedHosts)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", " 9090 ")
	t.Setenv("VALIDATION_TIMEOUT", "5s")
	t.Setenv("FAIL_OPEN", "false")
	t.Setenv("MAX_WORKERS", "4")
	t.Setenv("FACE_DETECTOR", "STATIC")
	t.Setenv("CLASSIFIER_TYPO_TOLERANCE", "1")
	t.Setenv("ALLOWED_HOSTS", "cdn.example.com, *.Photos.example.com,,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ServerAddress() != "0.0.0.0:9090" {
		t.Errorf("Expected trimmed port, got %s", cfg.ServerAddress())
	}
	if cfg.ValidationTimeout != 5*time.Second {
		t.Errorf("Expected 5s, got %s", cfg.ValidationTimeout)
	}
	if cfg.FailOpen {
		t.Error("Expected fail-closed")
	}
	if cfg.MaxWorkers != 4 || cfg.ClassifierTypoTolerance != 1 {
		t.Errorf("Unexpected workers/tolerance %d/%d", cfg.MaxWorkers, cfg.ClassifierTypoTolerance)
	}
	if cfg.FaceDetector != DetectorStatic {
		t.Errorf("Expected static detector, got %s", cfg.FaceDetector)
	}
	want := []string{"cdn.example.com", "*.photos.example.com"}
	if !reflect.DeepEqual(cfg.AllowedHosts, want) {
		t.Errorf("Expected %v, got %v", want, cfg.AllowedHosts)
	}
}

func TestLoadFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("VALIDATION_TIMEOUT", "soon")
	t.Setenv("FAIL_OPEN", "maybe")
	t.Setenv("WORKING_RESOLUTION", "big")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ValidationTimeout != 20*time.Second || !cfg.FailOpen || cfg.WorkingResolution != 300 {
		t.Errorf("Expected defaults for malformed values, got %+v", cfg)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{"Port out of range", map[string]string{"PORT": "70000"}, "invalid PORT"},
		{"Zero body size", map[string]string{"MAX_REQUEST_BODY_SIZE": "0"}, "MAX_REQUEST_BODY_SIZE"},
		{"Tiny resolution", map[string]string{"WORKING_RESOLUTION": "8"}, "WORKING_RESOLUTION"},
		{"Negative workers", map[string]string{"MAX_WORKERS": "-1"}, "MAX_WORKERS"},
		{"Tolerance too high", map[string]string{"CLASSIFIER_TYPO_TOLERANCE": "5"}, "CLASSIFIER_TYPO_TOLERANCE"},
		{"Unknown detector", map[string]string{"FACE_DETECTOR": "dnn"}, "FACE_DETECTOR"},
		{"Unknown model source", map[string]string{"MODEL_SOURCE": "s3"}, "MODEL_SOURCE"},
		{"HTTP source without URL", map[string]string{"MODEL_SOURCE": "http"}, "MODEL_URL"},
		{"Azure source without key", map[string]string{"MODEL_SOURCE": "azure", "AZURE_STORAGE_ACCOUNT": "acct"}, "AZURE_STORAGE_KEY"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("Expected error to mention %s, got %v", tc.contains, err)
			}
		})
	}
}

func TestValidate_StaticDetectorSkipsModelSource(t *testing.T) {
	t.Setenv("FACE_DETECTOR", "static")
	t.Setenv("MODEL_SOURCE", "s3")

	if _, err := LoadFromEnv(); err != nil {
		t.Errorf("Expected model source to be ignored for the static detector, got %v", err)
	}
}
