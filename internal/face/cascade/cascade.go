// Package cascade provides a local face detector backed by an OpenCV Haar cascade.
package cascade

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"go-photo-validator/internal/face"
	"go-photo-validator/internal/logger"
	"go-photo-validator/pkg/models"
)

// WeightsSource provides the cascade XML.
type WeightsSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Params tunes DetectMultiScale.
type Params struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      int // pixels, on the detection image
	MaxEdge      int // photos are shrunk to this longer edge before detection
}

// DefaultParams returns parameters suited to selfie-style portraits.
func DefaultParams() Params {
	return Params{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      24,
		MaxEdge:      640,
	}
}

// Detector runs a Haar cascade. gocv classifiers are not safe for concurrent
// use, so calls are serialized.
type Detector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	params     Params
}

// NewLoader returns a face.Loader that fetches name from src and loads it as
// a cascade classifier.
func NewLoader(src WeightsSource, name string, params Params) face.Loader {
	return func(ctx context.Context) (face.Detector, error) {
		data, err := src.Fetch(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch cascade %s: %w", name, err)
		}
		return NewFromBytes(data, params)
	}
}

// NewFromBytes loads a cascade from its XML contents.
func NewFromBytes(data []byte, params Params) (*Detector, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cascade data is empty")
	}

	// OpenCV only loads classifiers from a path.
	tmp, err := os.CreateTemp("", "cascade-*.xml")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write cascade: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("write cascade: %w", err)
	}

	return NewFromFile(tmp.Name(), params)
}

// NewFromFile loads a cascade XML file.
func NewFromFile(path string, params Params) (*Detector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load cascade classifier from %s", path)
	}

	logger.ForComponent("cascade").WithField("path", path).Debug("Cascade classifier loaded")
	return &Detector{classifier: classifier, params: params}, nil
}

// Detect implements face.Detector.
func (d *Detector) Detect(ctx context.Context, img *image.RGBA) ([]models.FaceRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, nil
	}

	pix := img.Pix
	if img.Stride != 4*w || b.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(packed.Pix[y*4*w:(y+1)*4*w], img.Pix[off:off+4*w])
		}
		pix = packed.Pix
	}

	rgba, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, pix[:4*w*h])
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer rgba.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgba, &gray, gocv.ColorRGBAToGray)

	small := gocv.NewMat()
	defer small.Close()
	target := gray
	scale := 1.0
	if edge := max(w, h); d.params.MaxEdge > 0 && edge > d.params.MaxEdge {
		scale = float64(d.params.MaxEdge) / float64(edge)
		size := image.Pt(max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale)))
		gocv.Resize(gray, &small, size, 0, 0, gocv.InterpolationArea)
		target = small
	}

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(target, &equalized)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScaleWithParams(
		equalized,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		image.Pt(d.params.MinSize, d.params.MinSize),
		image.Pt(0, 0),
	)
	d.mu.Unlock()

	faces := make([]models.FaceRegion, 0, len(rects))
	for _, r := range rects {
		faces = append(faces, models.FaceRegion{
			X:      int(math.Round(float64(r.Min.X) / scale)),
			Y:      int(math.Round(float64(r.Min.Y) / scale)),
			Width:  int(math.Round(float64(r.Dx()) / scale)),
			Height: int(math.Round(float64(r.Dy()) / scale)),
		})
	}
	return faces, nil
}

// Close releases the classifier.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
