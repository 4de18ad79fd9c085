package analyzer

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// fitWithin downsamples src so its longer edge is at most maxEdge, keeping the
// aspect ratio. Images already within the bound are returned as is.
func fitWithin(src *image.RGBA, maxEdge int) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return src
	}

	scale := float64(maxEdge) / float64(max(w, h))
	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))
	return resizeTo(src, dw, dh)
}

// resizeTo resamples src to exactly w×h with bilinear interpolation.
func resizeTo(src *image.RGBA, w, h int) *image.RGBA {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// lumaPlane is unrounded BT.709 luminance, row-major.
type lumaPlane struct {
	w, h int
	pix  []float64
}

func (p lumaPlane) at(x, y int) float64 {
	return p.pix[y*p.w+x]
}

// luminance converts img to a luminance plane using Y = 0.2126R + 0.7152G + 0.0722B.
func luminance(img *image.RGBA, pool *WorkerPool, chunkRows int) lumaPlane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := lumaPlane{w: w, h: h, pix: make([]float64, w*h)}

	forEachChunk(pool, h, chunkRows, func(_, y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			row := img.Pix[off : off+w*4]
			for x := 0; x < w; x++ {
				r := float64(row[x*4])
				g := float64(row[x*4+1])
				bl := float64(row[x*4+2])
				plane.pix[y*w+x] = 0.2126*r + 0.7152*g + 0.0722*bl
			}
		}
	})
	return plane
}

// chunkCount is the number of chunks forEachChunk uses for n rows.
func chunkCount(n, chunkRows int) int {
	if n <= 0 {
		return 0
	}
	if chunkRows <= 0 {
		return 1
	}
	return (n + chunkRows - 1) / chunkRows
}

// forEachChunk splits rows [0,n) into fixed-size chunks and calls fn for each.
// Chunk boundaries depend only on n and chunkRows, never on the worker count.
func forEachChunk(pool *WorkerPool, n, chunkRows int, fn func(chunk, y0, y1 int)) {
	chunks := chunkCount(n, chunkRows)
	if chunkRows <= 0 {
		chunkRows = n
	}
	pool.Process(chunks, func(i int) {
		y0 := i * chunkRows
		fn(i, y0, min(y0+chunkRows, n))
	})
}
