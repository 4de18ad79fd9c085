package analyzer

import "go-photo-validator/pkg/validation"

// AnalysisOptions provides configuration for photo validation
type AnalysisOptions struct {
	// Longest edge, in pixels, of the image the quality metrics are computed on
	WorkingResolution int

	// Lighting grid: the image is resampled to LightingSize×LightingSize and
	// split into LightingRegions×LightingRegions cells
	LightingSize    int
	LightingRegions int

	// Decision thresholds
	Thresholds validation.Thresholds

	// Performance options
	UseWorkerPool bool
	MaxWorkers    int
	ChunkRows     int // rows per parallel chunk; fixed so results never depend on CPU count
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		WorkingResolution: 300,
		LightingSize:      150,
		LightingRegions:   3,
		Thresholds:        validation.DefaultThresholds(),
		UseWorkerPool:     true,
		MaxWorkers:        0, // Use default CPU count
		ChunkRows:         32,
	}
}

// SequentialOptions returns options that never touch the worker pool
func SequentialOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.UseWorkerPool = false
	return opts
}

// WithWorkingResolution sets the quality working resolution
func (opts AnalysisOptions) WithWorkingResolution(px int) AnalysisOptions {
	if px > 0 {
		opts.WorkingResolution = px
	}
	return opts
}

// WithLightingGrid sets the lighting resample size and region count
func (opts AnalysisOptions) WithLightingGrid(size, regions int) AnalysisOptions {
	if size > 0 && regions > 0 && regions <= size {
		opts.LightingSize = size
		opts.LightingRegions = regions
	}
	return opts
}

// WithThresholds replaces the decision thresholds
func (opts AnalysisOptions) WithThresholds(t validation.Thresholds) AnalysisOptions {
	opts.Thresholds = t
	return opts
}

// WithEdgeMargin sets how close to a border a face may get before a warning
func (opts AnalysisOptions) WithEdgeMargin(margin float64) AnalysisOptions {
	opts.Thresholds.EdgeMargin = margin
	return opts
}

// WithWorkers enables the worker pool with n workers (0 = CPU count)
func (opts AnalysisOptions) WithWorkers(n int) AnalysisOptions {
	opts.UseWorkerPool = true
	opts.MaxWorkers = n
	return opts
}

// WithoutWorkerPool disables parallel pixel passes
func (opts AnalysisOptions) WithoutWorkerPool() AnalysisOptions {
	opts.UseWorkerPool = false
	return opts
}

// WithChunkRows sets the number of rows per parallel chunk
func (opts AnalysisOptions) WithChunkRows(rows int) AnalysisOptions {
	if rows > 0 {
		opts.ChunkRows = rows
	}
	return opts
}
