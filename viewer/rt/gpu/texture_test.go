package gpu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encode(t *testing.T, img image.Image, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	src := DefaultImage(16, 4)

	tests := []struct {
		name   string
		format string
		enc    func(*bytes.Buffer, image.Image) error
	}{
		{"png", "png", func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) }},
		{"bmp", "bmp", func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeImage(encode(t, src, tt.enc))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, src.Bounds(), img.Bounds())

			rgba := ToRGBA(img, 0)
			assert.Equal(t, src.Pix, rgba.Pix)
		})
	}
}

func TestDecodeImage_Errors(t *testing.T) {
	_, _, err := DecodeImage(nil)
	assert.Error(t, err)

	_, _, err = DecodeImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		w, h   int
		max    uint32
		wW, wH int
	}{
		{256, 256, 8192, 256, 256},
		{256, 256, 0, 256, 256},
		{4096, 1024, 2048, 2048, 512},
		{1024, 4096, 2048, 512, 2048},
		{10000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := FitDimensions(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wW, w)
		assert.Equal(t, tt.wH, h)
	}
}

func TestToRGBA_Downscales(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	dst := ToRGBA(src, 16)
	assert.Equal(t, 16, dst.Bounds().Dx())
	assert.Equal(t, 8, dst.Bounds().Dy())
	assert.Equal(t, 16*4, dst.Stride)
}

func TestDefaultImage(t *testing.T) {
	img := DefaultImage(8, 2)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{160, 160, 160, 255}, img.RGBAAt(4, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(4, 4))
}
