package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps width*height of any image accepted for processing. The
// header is checked before pixels are decoded.
const MaxPixels = 50_000_000

var (
	// ErrUndecodable is returned when the header is not a known image format.
	ErrUndecodable = errors.New("image header could not be read")
	// ErrTooManyPixels is returned when the header declares more than MaxPixels.
	ErrTooManyPixels = errors.New("image dimensions exceed the pixel limit")
)

// Result of bounding an image.
type Result struct {
	Data    []byte
	Width   int
	Height  int
	Format  string // jpeg, png, gif, webp
	Resized bool
}

// Processor handles image processing operations
type Processor struct {
	quality int // JPEG quality (1-100)
}

// NewProcessor creates a new image processor
func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Bound scales data down so it fits in maxWidth x maxHeight. Images already
// inside the box are returned untouched. Only JPEG and PNG are re-encoded;
// GIF and WebP keep their original bytes.
func (p *Processor) Bound(data []byte, maxWidth, maxHeight int) (*Result, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	res := &Result{Data: data, Width: cfg.Width, Height: cfg.Height, Format: format}

	w, h := FitWithin(cfg.Width, cfg.Height, maxWidth, maxHeight)
	if w == cfg.Width && h == cfg.Height {
		return res, nil
	}
	if format != "jpeg" && format != "png" {
		return res, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality})
	case "png":
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	res.Data = buf.Bytes()
	res.Width, res.Height = w, h
	res.Resized = true
	return res, nil
}

// FitWithin returns the largest size with the same aspect ratio that fits
// the box. Sizes already inside the box are returned unchanged.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 || (width <= maxWidth && height <= maxHeight) {
		return width, height
	}

	ratio := float64(width) / float64(height)
	newWidth, newHeight := maxWidth, maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight)*ratio + 0.5)
	} else {
		newHeight = int(float64(maxWidth)/ratio + 0.5)
	}

	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	return newWidth, newHeight
}
