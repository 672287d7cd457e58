// Package tabscan provides a fluent API for extracting tabular text from
// scanned images with OCR.
//
// The pipeline loads an image, runs a fixed preprocessing chain (grayscale,
// blur, Otsu threshold, close, dilate), recognizes it with Tesseract and
// annotates the result: the last figures-only line before each labelled line,
// and the last line of a trailing run of figures, is prefixed with "@ ".
//
// Basic usage:
//
//	text, warnings, err := tabscan.Open("nia.png").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tabscan.FormatWarnings(warnings))
//	}
//
// Writing straight to a file:
//
//	_, err := tabscan.Open("nia.png").
//	    Language("eng").
//	    WriteFile("output.txt")
//
// OCR requires the "ocr" build tag and a Tesseract installation; see the
// ocr package. Without it every terminal operation that needs OCR returns
// ocr.ErrOCRNotEnabled.
package tabscan

import (
	"image"
)

// Open returns an Extractor for the image file at filename.
// Nothing is read until a terminal operation such as Text() is called.
//
// Example:
//
//	text, warnings, err := tabscan.Open("scan.png").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename:      filename,
		options:       defaultOptions(),
		newRecognizer: newOCRClient,
	}
}

// FromImage creates an Extractor for an already-decoded image.
//
// Example:
//
//	img, _, err := image.Decode(r)
//	if err != nil {
//	    // handle error
//	}
//	text, warnings, err := tabscan.FromImage(img).Text()
func FromImage(img image.Image) *Extractor {
	e := &Extractor{
		image:         img,
		options:       defaultOptions(),
		newRecognizer: newOCRClient,
	}
	if img == nil {
		e.err = errNoImage
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	img := tabscan.Must(tabscan.Open("scan.png").Preprocessed())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Lines() and panics
// if the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	text := tabscan.MustText(tabscan.Open("scan.png").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
