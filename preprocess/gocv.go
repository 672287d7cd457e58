//go:build gocv

package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Image runs the fixed preprocessing chain over img through OpenCV and
// returns a binary image (0 or 255 per pixel) ready for OCR.
func Image(img image.Image) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("converting image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(blurKernel, blurKernel), 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(morphKernel, morphKernel))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	dilated := gocv.NewMat()
	defer dilated.Close()
	closed.CopyTo(&dilated)
	for i := 0; i < dilateIterations; i++ {
		gocv.Dilate(dilated, &dilated, kernel)
	}

	out, err := dilated.ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting result: %w", err)
	}
	return Gray(out), nil
}
