package factory

import (
	"fmt"

	"go-photo-validator/internal/config"
	"go-photo-validator/internal/face"
	"go-photo-validator/internal/face/cascade"
	"go-photo-validator/internal/storage"
)

// DetectorType represents the face detection backends
type DetectorType string

const (
	// CascadeDetector runs an OpenCV Haar cascade locally
	CascadeDetector DetectorType = config.DetectorCascade
	// StaticDetector reports one centered face for every photo, for development
	StaticDetector DetectorType = config.DetectorStatic
)

// ModelSourceType represents where detector models are loaded from
type ModelSourceType string

const (
	// LocalModels reads from a directory
	LocalModels ModelSourceType = config.ModelSourceLocal
	// AzureModels reads from an Azure blob container
	AzureModels ModelSourceType = config.ModelSourceAzure
	// HTTPModels downloads from a base URL
	HTTPModels ModelSourceType = config.ModelSourceHTTP
)

// staticFaceArea is the fraction of the frame the static detector reports.
const staticFaceArea = 0.25

// ModelSourceFactory creates model sources
type ModelSourceFactory interface {
	CreateModelSource(sourceType ModelSourceType) (storage.ModelSource, error)
}

// DetectorFactory creates face detector loaders
type DetectorFactory interface {
	CreateLoader(detectorType DetectorType) (face.Loader, error)
}

// modelSourceFactory implements ModelSourceFactory
type modelSourceFactory struct {
	cfg *config.Config
}

// NewModelSourceFactory creates a new model source factory
func NewModelSourceFactory(cfg *config.Config) ModelSourceFactory {
	return &modelSourceFactory{cfg: cfg}
}

// CreateModelSource creates a model source based on the specified type
func (f *modelSourceFactory) CreateModelSource(sourceType ModelSourceType) (storage.ModelSource, error) {
	switch sourceType {
	case LocalModels:
		return storage.NewFileModelSource(f.cfg.ModelDir), nil
	case HTTPModels:
		src, err := storage.NewHTTPModelSource(f.cfg.ModelURL, f.cfg.ImageFetchTimeout)
		if err != nil {
			return nil, err
		}
		return src, nil
	case AzureModels:
		src, err := storage.NewAzureModelSource(f.cfg.AzureStorageAccount, f.cfg.AzureStorageKey, f.cfg.AzureModelContainer)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported model source: %s", sourceType)
	}
}

// detectorFactory implements DetectorFactory
type detectorFactory struct {
	cfg     *config.Config
	sources ModelSourceFactory
}

// NewDetectorFactory creates a new detector factory
func NewDetectorFactory(cfg *config.Config, sources ModelSourceFactory) DetectorFactory {
	return &detectorFactory{cfg: cfg, sources: sources}
}

// CreateLoader creates a loader for the specified backend. Nothing is fetched
// until the loader runs.
func (f *detectorFactory) CreateLoader(detectorType DetectorType) (face.Loader, error) {
	switch detectorType {
	case StaticDetector:
		return face.StaticLoader(face.CenteredDetector(staticFaceArea)), nil
	case CascadeDetector:
		src, err := f.sources.CreateModelSource(ModelSourceType(f.cfg.ModelSource))
		if err != nil {
			return nil, fmt.Errorf("model source: %w", err)
		}
		return cascade.NewLoader(src, f.cfg.ModelName, cascade.DefaultParams()), nil
	default:
		return nil, fmt.Errorf("unsupported detector type: %s", detectorType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	ModelSourceFactory ModelSourceFactory
	DetectorFactory    DetectorFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	sources := NewModelSourceFactory(cfg)
	return &ComponentFactory{
		ModelSourceFactory: sources,
		DetectorFactory:    NewDetectorFactory(cfg, sources),
	}
}
