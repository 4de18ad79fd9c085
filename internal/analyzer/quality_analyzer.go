package analyzer

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"go-photo-validator/pkg/models"
)

const (
	laplacianWeight = 0.7
	sobelWeight     = 0.3
)

// QualityAnalyzer computes brightness, contrast and sharpness on a
// downsampled luminance projection of the photo.
type QualityAnalyzer struct {
	workingResolution int
	chunkRows         int
	pool              *WorkerPool
}

// NewQualityAnalyzer creates a quality analyzer. pool may be nil.
func NewQualityAnalyzer(opts AnalysisOptions, pool *WorkerPool) *QualityAnalyzer {
	return &QualityAnalyzer{
		workingResolution: opts.WorkingResolution,
		chunkRows:         opts.ChunkRows,
		pool:              pool,
	}
}

// Analyze returns the quality metrics of img.
func (qa *QualityAnalyzer) Analyze(img *image.RGBA) models.QualityMetrics {
	working := fitWithin(img, qa.workingResolution)
	plane := luminance(working, qa.pool, qa.chunkRows)

	brightness, contrast := qa.histogramStats(plane)
	return models.QualityMetrics{
		Brightness: brightness,
		Contrast:   contrast,
		Sharpness:  qa.sharpness(plane),
	}
}

// histogramStats returns the mean and population standard deviation of the
// 256-bin histogram of rounded luminance.
func (qa *QualityAnalyzer) histogramStats(plane lumaPlane) (float64, float64) {
	if plane.w == 0 || plane.h == 0 {
		return 0, 0
	}

	partial := make([][256]float64, chunkCount(plane.h, qa.chunkRows))
	forEachChunk(qa.pool, plane.h, qa.chunkRows, func(chunk, y0, y1 int) {
		hist := &partial[chunk]
		for _, v := range plane.pix[y0*plane.w : y1*plane.w] {
			hist[clampByte(math.Round(v))]++
		}
	})

	bins := make([]float64, 256)
	counts := make([]float64, 256)
	for i := range bins {
		bins[i] = float64(i)
	}
	for _, hist := range partial {
		for i, c := range hist {
			counts[i] += c
		}
	}

	mean, variance := stat.PopMeanVariance(bins, counts)
	return mean, math.Sqrt(math.Max(0, variance))
}

type edgeSums struct {
	laplacian float64
	sobel     float64
}

// sharpness combines the RMS Laplacian and RMS Sobel magnitude over interior
// pixels, each normalized by 255.
func (qa *QualityAnalyzer) sharpness(plane lumaPlane) float64 {
	w, h := plane.w, plane.h
	if w < 3 || h < 3 {
		return 0
	}

	interior := h - 2
	partial := make([]edgeSums, chunkCount(interior, qa.chunkRows))
	forEachChunk(qa.pool, interior, qa.chunkRows, func(chunk, r0, r1 int) {
		var sums edgeSums
		for y := r0 + 1; y < r1+1; y++ {
			for x := 1; x < w-1; x++ {
				lap := laplacianAt(plane, x, y)
				gx := sobelXAt(plane, x, y)
				gy := sobelYAt(plane, x, y)
				sums.laplacian += lap * lap
				sums.sobel += gx*gx + gy*gy
			}
		}
		partial[chunk] = sums
	})

	var total edgeSums
	for _, p := range partial {
		total.laplacian += p.laplacian
		total.sobel += p.sobel
	}

	n := float64((w - 2) * (h - 2))
	lapRMS := math.Sqrt(total.laplacian/n) / 255
	sobelRMS := math.Sqrt(total.sobel/n) / 255
	return laplacianWeight*lapRMS + sobelWeight*sobelRMS
}

// laplacianAt is the absolute 8-neighbour Laplacian |−8c + Σ neighbours|,
// summed as neighbour differences so a flat patch gives exactly 0.
func laplacianAt(p lumaPlane, x, y int) float64 {
	c := p.at(x, y)
	sum := (p.at(x-1, y-1) - c) + (p.at(x, y-1) - c) + (p.at(x+1, y-1) - c) +
		(p.at(x-1, y) - c) + (p.at(x+1, y) - c) +
		(p.at(x-1, y+1) - c) + (p.at(x, y+1) - c) + (p.at(x+1, y+1) - c)
	return math.Abs(sum)
}

// sobelXAt computes Sobel X gradient
func sobelXAt(p lumaPlane, x, y int) float64 {
	return (p.at(x+1, y-1) - p.at(x-1, y-1)) +
		2*(p.at(x+1, y)-p.at(x-1, y)) +
		(p.at(x+1, y+1) - p.at(x-1, y+1))
}

// sobelYAt computes Sobel Y gradient
func sobelYAt(p lumaPlane, x, y int) float64 {
	return (p.at(x-1, y+1) - p.at(x-1, y-1)) +
		2*(p.at(x, y+1)-p.at(x, y-1)) +
		(p.at(x+1, y+1) - p.at(x+1, y-1))
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}
