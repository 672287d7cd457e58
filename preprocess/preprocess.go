//go:build !gocv

package preprocess

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// blurWeights is the blurKernel x blurKernel Gaussian with sigma blurSigma,
// built the way OpenCV builds it: the outer product of a normalized 1D
// kernel.
var blurWeights = gaussianKernel()

func gaussianKernel() [blurKernel * blurKernel]float64 {
	var row [blurKernel]float64
	var sum float64
	c := blurKernel / 2
	for i := range row {
		d := float64(i - c)
		row[i] = math.Exp(-d * d / (2 * blurSigma * blurSigma))
		sum += row[i]
	}
	for i := range row {
		row[i] /= sum
	}

	var k [blurKernel * blurKernel]float64
	for y := range row {
		for x := range row {
			k[y*blurKernel+x] = row[y] * row[x]
		}
	}
	return k
}

// Image runs the fixed preprocessing chain over img and returns a binary
// image (0 or 255 per pixel) ready for OCR.
func Image(img image.Image) (*image.Gray, error) {
	gray := imaging.Grayscale(img)
	blurred := Gray(imaging.Convolve5x5(gray, blurWeights, nil))

	binary := Binarize(blurred, OtsuThreshold(blurred))
	closed := Close(binary, morphKernel)

	dilated := closed
	for i := 0; i < dilateIterations; i++ {
		dilated = Dilate(dilated, morphKernel)
	}

	return dilated, nil
}
