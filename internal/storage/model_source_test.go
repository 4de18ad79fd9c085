package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-photo-validator/internal/errors"
)

const cascadeXML = `<?xml version="1.0"?><opencv_storage></opencv_storage>`

func TestFileModelSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "face.xml"), []byte(cascadeXML), 0o644); err != nil {
		t.Fatalf("Failed to write model: %v", err)
	}
	src := NewFileModelSource(dir)

	data, err := src.Fetch(context.Background(), "face.xml")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(data) != cascadeXML {
		t.Errorf("Expected model contents, got %q", data)
	}

	testCases := []struct {
		name      string
		errorType apperrors.ErrorType
	}{
		{"missing.xml", apperrors.ErrorTypeNotFound},
		{"../face.xml", apperrors.ErrorTypeValidation},
		{"", apperrors.ErrorTypeValidation},
		{"..", apperrors.ErrorTypeValidation},
	}
	for _, tc := range testCases {
		if _, err := src.Fetch(context.Background(), tc.name); !apperrors.IsType(err, tc.errorType) {
			t.Errorf("Name %q: expected %s error, got %v", tc.name, tc.errorType, err)
		}
	}
}

func TestHTTPModelSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/face.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(cascadeXML))
	}))
	defer server.Close()

	// with and without a trailing slash
	for _, base := range []string{server.URL + "/models", server.URL + "/models/"} {
		src, err := NewHTTPModelSource(base, 5*time.Second)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		data, err := src.Fetch(context.Background(), "face.xml")
		if err != nil {
			t.Fatalf("Base %s: expected no error, got %v", base, err)
		}
		if string(data) != cascadeXML {
			t.Errorf("Base %s: expected model contents, got %q", base, data)
		}

		if _, err := src.Fetch(context.Background(), "other.xml"); !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			t.Errorf("Base %s: expected not_found error, got %v", base, err)
		}
	}
}

func TestNewHTTPModelSource_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/path"} {
		if _, err := NewHTTPModelSource(base, 0); err == nil {
			t.Errorf("Base %q: expected error", base)
		}
	}
}

func TestAzureModelSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == "/models/face.xml" {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(cascadeXML))
			return
		}
		w.Header().Set("x-ms-error-code", "BlobNotFound")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := azblob.NewClientWithNoCredential(server.URL+"/", nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	src := NewAzureModelSourceFromClient(client, "models")

	data, err := src.Fetch(context.Background(), "face.xml")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(data) != cascadeXML {
		t.Errorf("Expected model contents, got %q", data)
	}

	if _, err := src.Fetch(context.Background(), "missing.xml"); !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("Expected not_found error, got %v", err)
	}
}
