package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessor_Dimensions(t *testing.T) {
	p := NewProcessor()

	w, h, err := p.Dimensions(encodePNG(t, 40, 30))
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	_, _, err = p.Dimensions([]byte("not an image"))
	assert.Error(t, err)
}

func TestProcessor_Thumbnail(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{name: "landscape", w: 400, h: 200, wantW: 100, wantH: 50},
		{name: "portrait", w: 200, h: 400, wantW: 50, wantH: 100},
		{name: "small stays", w: 60, h: 20, wantW: 60, wantH: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb, err := p.Thumbnail(encodePNG(t, tt.w, tt.h), 100)
			require.NoError(t, err)

			cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestProcessor_ThumbnailRejectsGarbage(t *testing.T) {
	_, err := NewProcessor().Thumbnail([]byte("GIF89a"), 100)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	w, h := fit(1000, 1, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)
}
