package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessImageSizeAndBinary(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.White)
		}
	}
	// dark stroke
	for x := 20; x < 80; x++ {
		for y := 24; y < 27; y++ {
			src.Set(x, y, color.Black)
		}
	}

	out := preprocessImage(src)

	assert.Equal(t, 130, out.Bounds().Dx())
	assert.Equal(t, 65, out.Bounds().Dy())
	for _, p := range out.Pix {
		assert.True(t, p == 0 || p == 255)
	}
	assert.Equal(t, uint8(0), out.GrayAt(65, 33).Y, "stroke stays dark")
	assert.Equal(t, uint8(255), out.GrayAt(5, 5).Y, "background stays white")
}

func TestToGrayscaleHandlesOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.Set(10, 10, color.White)

	gray := toGrayscale(src)

	assert.Equal(t, image.Rect(0, 0, 4, 2), gray.Bounds())
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y)
}

func TestAdaptiveBinarizeUniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 15, 15))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	out := adaptiveBinarize(img, 11, 2)

	for _, p := range out.Pix {
		assert.Equal(t, uint8(255), p)
	}
}

func TestEncodePNG(t *testing.T) {
	b, err := encodePNG(image.NewGray(image.Rect(0, 0, 3, 3)))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}
