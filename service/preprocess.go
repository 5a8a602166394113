package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	upscaleFactor  = 1.3
	thresholdBlock = 11
	thresholdC     = 2
)

// preprocessImage prepares a document photo for OCR: grayscale, upscale,
// light smoothing, then adaptive binarization.
func preprocessImage(img image.Image) *image.Gray {
	gray := toGrayscale(img)
	gray = upscale(gray, upscaleFactor)
	gray = smooth3x3(gray)
	return adaptiveBinarize(gray, thresholdBlock, thresholdC)
}

func toGrayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

func upscale(img *image.Gray, factor float64) *image.Gray {
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// smooth3x3 applies a [1 2 1] Gaussian kernel, clamping at the borders
func smooth3x3(img *image.Gray) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	weights := [3]int{1, 2, 1}

	at := func(x, y int) int {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return int(img.Pix[y*img.Stride+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += weights[dy+1] * weights[dx+1] * at(x+dx, y+dy)
				}
			}
			out.Pix[y*out.Stride+x] = uint8((sum + 8) / 16)
		}
	}
	return out
}

// adaptiveBinarize thresholds each pixel against the mean of its
// blockSize x blockSize neighbourhood minus c. The window is clipped at the
// image edges. A summed-area table keeps this linear in the pixel count.
func adaptiveBinarize(img *image.Gray, blockSize, c int) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	half := blockSize / 2

	sat := make([]int, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(img.Pix[y*img.Stride+x])
			sat[(y+1)*(w+1)+x+1] = sat[y*(w+1)+x+1] + rowSum
		}
	}

	out := image.NewGray(b)
	for y := 0; y < h; y++ {
		y0, y1 := max(y-half, 0), min(y+half+1, h)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-half, 0), min(x+half+1, w)
			sum := sat[y1*(w+1)+x1] - sat[y0*(w+1)+x1] - sat[y1*(w+1)+x0] + sat[y0*(w+1)+x0]
			count := (y1 - y0) * (x1 - x0)

			threshold := sum/count - c
			if int(img.Pix[y*img.Stride+x]) <= threshold {
				out.Pix[y*out.Stride+x] = 0
			} else {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

func encodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	return buf.Bytes(), nil
}
