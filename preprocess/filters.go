package preprocess

import (
	"image"
	"image/color"
)

// Fixed filter chain constants.
const (
	blurKernel       = 5
	morphKernel      = 3
	dilateIterations = 1
)

// blurSigma is the Gaussian sigma OpenCV derives for a kernel of blurKernel
// pixels when sigma is left at zero.
const blurSigma = 0.3*((blurKernel-1)*0.5-1) + 0.8

// OtsuThreshold computes the global threshold that maximizes the
// between-class variance of img's histogram. Pixels strictly above the
// returned value belong to the foreground class.
func OtsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			hist[row[x]]++
		}
	}

	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	var (
		sumB    float64
		weightB int
		best    uint8
		bestVar float64
	)
	for t := 0; t < 256; t++ {
		weightB += hist[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}

		sumB += float64(t * hist[t])
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)

		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}

	return best
}

// Binarize maps pixels above threshold to white and all others to black.
func Binarize(img *image.Gray, threshold uint8) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return out
}

// Dilate replaces each pixel with the maximum of its size x size
// neighbourhood. Out-of-bounds neighbours are ignored.
func Dilate(img *image.Gray, size int) *image.Gray {
	return morph(img, size, func(a, b uint8) bool { return b > a })
}

// Erode replaces each pixel with the minimum of its size x size
// neighbourhood. Out-of-bounds neighbours are ignored.
func Erode(img *image.Gray, size int) *image.Gray {
	return morph(img, size, func(a, b uint8) bool { return b < a })
}

// Close performs a morphological close: dilation followed by erosion.
func Close(img *image.Gray, size int) *image.Gray {
	return Erode(Dilate(img, size), size)
}

// morph applies a rectangular min/max filter. better reports whether
// candidate b should replace the current value a.
func morph(img *image.Gray, size int, better func(a, b uint8) bool) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	r := size / 2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			for dy := -r; dy <= r; dy++ {
				ny := y + dy
				if ny < b.Min.Y || ny >= b.Max.Y {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					nx := x + dx
					if nx < b.Min.X || nx >= b.Max.X {
						continue
					}
					if c := img.GrayAt(nx, ny).Y; better(v, c) {
						v = c
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}

	return out
}

// Gray converts img to grayscale using the standard luma model.
// An *image.Gray is returned unchanged.
func Gray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
