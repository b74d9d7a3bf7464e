// Package imaging measures uploaded images and renders JPEG thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const thumbnailQuality = 80

// maxPixels bounds decoding so a tiny file cannot claim a huge canvas.
const maxPixels = 50_000_000

type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Dimensions(content []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Thumbnail scales the image to fit in maxSize x maxSize, never upscaling,
// and flattens transparency onto white.
func (p *Processor) Thumbnail(content []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %d", maxSize)
	}

	w, h, err := p.Dimensions(content)
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 || w*h > maxPixels {
		return nil, fmt.Errorf("image dimensions %dx%d not supported", w, h)
	}

	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	tw, th := fit(w, h, maxSize)
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(w, h, maxSize int) (int, int) {
	if w <= maxSize && h <= maxSize {
		return w, h
	}
	if w >= h {
		th := h * maxSize / w
		if th < 1 {
			th = 1
		}
		return maxSize, th
	}
	tw := w * maxSize / h
	if tw < 1 {
		tw = 1
	}
	return tw, maxSize
}
