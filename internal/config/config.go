package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Face detector backends
const (
	DetectorCascade = "cascade"
	DetectorStatic  = "static"
)

// Model sources for the cascade detector
const (
	ModelSourceLocal = "local"
	ModelSourceAzure = "azure"
	ModelSourceHTTP  = "http"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	ValidationTimeout  time.Duration
	MaxRequestBodySize int64

	// Analysis
	WorkingResolution int
	MaxWorkers        int
	FailOpen          bool

	// Face detection capability
	FaceDetector string
	ModelSource  string
	ModelDir     string
	ModelName    string
	ModelURL     string

	AzureStorageAccount string
	AzureStorageKey     string
	AzureModelContainer string

	// Error text classification
	ClassifierTypoTolerance int

	// Hosts accepted by the URL endpoint; empty allows any public host
	AllowedHosts []string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		ValidationTimeout:  parseDurationOrDefault("VALIDATION_TIMEOUT", 20*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB

		WorkingResolution: int(parseIntOrDefault("WORKING_RESOLUTION", 300)),
		MaxWorkers:        int(parseIntOrDefault("MAX_WORKERS", 0)),
		FailOpen:          parseBoolOrDefault("FAIL_OPEN", true),

		FaceDetector: strings.ToLower(getEnvOrDefault("FACE_DETECTOR", DetectorCascade)),
		ModelSource:  strings.ToLower(getEnvOrDefault("MODEL_SOURCE", ModelSourceLocal)),
		ModelDir:     getEnvOrDefault("MODEL_DIR", "models"),
		ModelName:    getEnvOrDefault("MODEL_NAME", "haarcascade_frontalface_default.xml"),
		ModelURL:     os.Getenv("MODEL_URL"),

		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
		AzureModelContainer: getEnvOrDefault("AZURE_MODEL_CONTAINER", "models"),

		ClassifierTypoTolerance: int(parseIntOrDefault("CLASSIFIER_TYPO_TOLERANCE", 0)),
		AllowedHosts:            parseListOrDefault("ALLOWED_HOSTS", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and the detector/model source combination.
func (c *Config) Validate() error {
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.ImageFetchTimeout <= 0 || c.ValidationTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, validation=%s)",
			c.RequestTimeout, c.ImageFetchTimeout, c.ValidationTimeout)
	}
	if c.WorkingResolution < 16 {
		return fmt.Errorf("WORKING_RESOLUTION must be >= 16 (got %d)", c.WorkingResolution)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("MAX_WORKERS must be >= 0 (got %d)", c.MaxWorkers)
	}
	if c.ClassifierTypoTolerance < 0 || c.ClassifierTypoTolerance > 3 {
		return fmt.Errorf("CLASSIFIER_TYPO_TOLERANCE must be within 0..3 (got %d)", c.ClassifierTypoTolerance)
	}

	switch c.FaceDetector {
	case DetectorStatic:
		return nil
	case DetectorCascade:
	default:
		return fmt.Errorf("unsupported FACE_DETECTOR: %q", c.FaceDetector)
	}

	switch c.ModelSource {
	case ModelSourceLocal:
	case ModelSourceHTTP:
		if c.ModelURL == "" {
			return fmt.Errorf("MODEL_URL is required when MODEL_SOURCE=http")
		}
	case ModelSourceAzure:
		if c.AzureStorageAccount == "" || c.AzureStorageKey == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY are required when MODEL_SOURCE=azure")
		}
	default:
		return fmt.Errorf("unsupported MODEL_SOURCE: %q", c.ModelSource)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, strings.ToLower(item))
		}
	}
	return items
}
