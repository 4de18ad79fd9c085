package analyzer

import (
	"image"
	"slices"

	"go-photo-validator/pkg/models"
)

// Regional lighting thresholds on the 0..255 luminance scale.
const (
	shadowRange        = 100
	shadowDarkRegion   = 50
	shadowMinContrast  = 70
	unevenRange        = 80
	overexposedRegion  = 240
	underexposedRegion = 40
	exposedRegionCount = 3
)

// LightingAnalyzer derives shadow, exposure and evenness flags from a coarse
// grid of regional mean luminance.
type LightingAnalyzer struct {
	size      int
	regions   int
	chunkRows int
	pool      *WorkerPool
}

// NewLightingAnalyzer creates a lighting analyzer. pool may be nil.
func NewLightingAnalyzer(opts AnalysisOptions, pool *WorkerPool) *LightingAnalyzer {
	return &LightingAnalyzer{
		size:      opts.LightingSize,
		regions:   opts.LightingRegions,
		chunkRows: opts.ChunkRows,
		pool:      pool,
	}
}

// Analyze returns the lighting flags of img. contrast is the value the
// quality analyzer reported for the same image.
func (la *LightingAnalyzer) Analyze(img *image.RGBA, contrast float64) models.LightingFlags {
	means := la.RegionMeans(img)
	if len(means) == 0 {
		return models.LightingFlags{}
	}

	lo, hi := slices.Min(means), slices.Max(means)
	spread := hi - lo

	var bright, dark int
	for _, m := range means {
		if m > overexposedRegion {
			bright++
		}
		if m < underexposedRegion {
			dark++
		}
	}

	harsh := spread > shadowRange && lo < shadowDarkRegion && contrast > shadowMinContrast
	return models.LightingFlags{
		HarshShadows:   harsh,
		Overexposed:    bright >= exposedRegionCount,
		Underexposed:   dark >= exposedRegionCount,
		UnevenLighting: spread > unevenRange && !harsh,
	}
}

// RegionMeans resamples img to the lighting grid and returns the mean
// luminance of each region, row by row.
func (la *LightingAnalyzer) RegionMeans(img *image.RGBA) []float64 {
	if la.size <= 0 || la.regions <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	grid := resizeTo(img, la.size, la.size)
	plane := luminance(grid, la.pool, la.chunkRows)

	cell := la.size / la.regions
	means := make([]float64, la.regions*la.regions)
	for ry := 0; ry < la.regions; ry++ {
		for rx := 0; rx < la.regions; rx++ {
			var sum float64
			for y := ry * cell; y < (ry+1)*cell; y++ {
				for x := rx * cell; x < (rx+1)*cell; x++ {
					sum += plane.at(x, y)
				}
			}
			means[ry*la.regions+rx] = sum / float64(cell*cell)
		}
	}
	return means
}
