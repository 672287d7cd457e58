// Package preprocess prepares scanned table images for OCR.
//
// [Image] runs a fixed filter chain over the input:
//
//  1. Grayscale conversion
//  2. Gaussian blur with a 5x5 kernel to suppress scanner noise
//  3. Otsu binarization
//  4. Morphological close with a 3x3 rectangle to bridge broken strokes
//  5. One dilation with the same kernel to strengthen ruling lines
//
// The chain has no tunable parameters. The default build is pure Go and uses
// github.com/disintegration/imaging for steps 1 and 2. Building with the
// "gocv" tag routes the whole chain through OpenCV instead:
//
//	go build -tags gocv
//
// which requires OpenCV 4 to be installed.
package preprocess
