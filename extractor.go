package tabscan

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tabscan/annotate"
	"github.com/tsawler/tabscan/format"
	"github.com/tsawler/tabscan/hocr"
	"github.com/tsawler/tabscan/ocr"
	"github.com/tsawler/tabscan/preprocess"
	"github.com/tsawler/tabscan/reader"
)

var errNoImage = errors.New("no image specified")

// recognizer is the subset of *ocr.Client the pipeline needs.
type recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	HOCR(imageData []byte) (string, error)
	Close() error
}

// Extractor provides a fluent interface for extracting annotated text from
// scanned table images. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set)
	filename string
	image    image.Image

	// Configuration
	options ScanOptions

	// OCR engine factory
	newRecognizer func(ScanOptions) (recognizer, error)

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:      e.filename,
		image:         e.image,
		options:       e.options.clone(),
		newRecognizer: e.newRecognizer,
		err:           e.err,
		warnings:      append([]Warning(nil), e.warnings...),
	}
}

// newOCRClient creates a Tesseract client configured from opts.
func newOCRClient(opts ScanOptions) (recognizer, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}

	if opts.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if len(opts.languages) > 0 {
		if err := client.SetLanguage(opts.languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting language: %w", err)
		}
	}
	if err := client.SetPageSegMode(opts.pageSegMode); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if opts.whitelist != "" {
		if err := client.SetWhitelist(opts.whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting whitelist: %w", err)
		}
	}

	return client, nil
}

// addWarning appends a formatted warning to ws.
func addWarning(ws *[]Warning, code WarningCode, msg string, args ...any) {
	if ws == nil {
		return
	}
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(msg, args...)})
}

// seedWarnings returns a private copy of the warnings carried by e, so a
// terminal operation never writes to the shared receiver.
func (e *Extractor) seedWarnings() []Warning {
	return append([]Warning(nil), e.warnings...)
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Language sets the Tesseract language(s) used for recognition.
// Multiple calls replace the previous selection.
//
// Example:
//
//	text, _, err := tabscan.Open("scan.png").Language("eng", "deu").Text()
func (e *Extractor) Language(langs ...string) *Extractor {
	newExt := e.clone()
	newExt.options.languages = append([]string(nil), langs...)
	return newExt
}

// PageSegMode selects the Tesseract page segmentation mode.
// The default, ocr.PSM_SINGLE_BLOCK, treats the image as one block of text.
//
// Example:
//
//	text, _, err := tabscan.Open("scan.png").PageSegMode(ocr.PSM_AUTO).Text()
func (e *Extractor) PageSegMode(mode ocr.PageSegMode) *Extractor {
	newExt := e.clone()
	if !mode.Valid() && newExt.err == nil {
		newExt.err = fmt.Errorf("invalid page segmentation mode %d", mode)
	}
	newExt.options.pageSegMode = mode
	return newExt
}

// TessdataPrefix sets the directory Tesseract loads language data from.
//
// Example:
//
//	text, _, err := tabscan.Open("scan.png").TessdataPrefix("/opt/tessdata").Text()
func (e *Extractor) TessdataPrefix(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.tessdataPrefix = dir
	return newExt
}

// Whitelist restricts recognition to the given characters.
//
// Example:
//
//	text, _, err := tabscan.Open("totals.png").Whitelist("0123456789.,-").Text()
func (e *Extractor) Whitelist(chars string) *Extractor {
	newExt := e.clone()
	newExt.options.whitelist = chars
	return newExt
}

// SkipPreprocess hands the decoded image to OCR without the filter chain.
// Useful for images that are already clean and binarized.
//
// Example:
//
//	text, _, err := tabscan.Open("clean.png").SkipPreprocess().Text()
func (e *Extractor) SkipPreprocess() *Extractor {
	newExt := e.clone()
	newExt.options.skipPreprocess = true
	return newExt
}

// NormalizeUnicode applies NFC normalization to the OCR output before
// annotation, composing accents Tesseract may emit as separate code points.
//
// Example:
//
//	text, _, err := tabscan.Open("scan.png").Language("fra").NormalizeUnicode().Text()
func (e *Extractor) NormalizeUnicode() *Extractor {
	newExt := e.clone()
	newExt.options.normalizeUnicode = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Preprocessed loads the image and returns it after the preprocessing chain.
// With SkipPreprocess the decoded image is returned converted to grayscale.
func (e *Extractor) Preprocessed() (*image.Gray, error) {
	return e.preprocessed(nil)
}

// RawText returns the OCR output exactly as the engine produced it,
// before any annotation.
//
// Example:
//
//	raw, _, err := tabscan.Open("scan.png").RawText()
func (e *Extractor) RawText() (string, []Warning, error) {
	ws := e.seedWarnings()
	raw, err := e.rawText(&ws)
	if err != nil {
		return "", nil, err
	}
	return raw, ws, nil
}

// Lines returns the annotated OCR lines in order.
//
// Example:
//
//	lines, _, err := tabscan.Open("scan.png").Lines()
//	for _, line := range lines {
//	    if strings.HasPrefix(line, annotate.Marker) {
//	        fmt.Println("total:", line)
//	    }
//	}
func (e *Extractor) Lines() ([]string, []Warning, error) {
	ws := e.seedWarnings()
	lines, err := e.lines(&ws)
	if err != nil {
		return nil, nil, err
	}
	return lines, ws, nil
}

// Text returns the annotated OCR text, lines joined by a single newline.
//
// Example:
//
//	text, warnings, err := tabscan.Open("scan.png").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	lines, warnings, err := e.Lines()
	if err != nil {
		return "", nil, err
	}
	return annotate.Join(lines), warnings, nil
}

// PositionedLines recognizes the image as hOCR and returns every line with
// its bounding box and confidence. Line text is annotated the same way as
// Lines().
//
// Example:
//
//	lines, _, err := tabscan.Open("scan.png").PositionedLines()
//	for _, l := range lines {
//	    fmt.Printf("%v %.0f%% %s\n", l.BBox, l.Confidence, l.Text)
//	}
func (e *Extractor) PositionedLines() ([]hocr.Line, []Warning, error) {
	ws := e.seedWarnings()
	doc, err := e.recognize(&ws, func(r recognizer, data []byte) (string, error) {
		return r.HOCR(data)
	})
	if err != nil {
		return nil, nil, err
	}

	lines, err := hocr.ParseString(doc)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		addWarning(&ws, WarnEmptyText, "OCR produced no text")
		return lines, ws, nil
	}

	texts := hocr.Texts(lines)
	for i, t := range texts {
		texts[i] = e.normalize(t)
	}
	for i, t := range annotate.Lines(texts) {
		lines[i].Text = t
	}

	return lines, ws, nil
}

// WriteFile writes the annotated text to path, truncating any existing file.
//
// Example:
//
//	warnings, err := tabscan.Open("OCR/nia.png").WriteFile("output.txt")
func (e *Extractor) WriteFile(path string) ([]Warning, error) {
	text, warnings, err := e.Text()
	if err != nil {
		return nil, err
	}
	if err := writeOutput(path, text); err != nil {
		return nil, err
	}
	return warnings, nil
}

// WriteRawFile writes the unannotated OCR output to path, truncating any
// existing file.
//
// Example:
//
//	warnings, err := tabscan.Open("OCR/nia.png").WriteRawFile("raw.txt")
func (e *Extractor) WriteRawFile(path string) ([]Warning, error) {
	raw, warnings, err := e.RawText()
	if err != nil {
		return nil, err
	}
	if err := writeOutput(path, raw); err != nil {
		return nil, err
	}
	return warnings, nil
}

// ============================================================================
// Pipeline Helpers
// ============================================================================

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (e *Extractor) preprocessed(ws *[]Warning) (*image.Gray, error) {
	if e.err != nil {
		return nil, e.err
	}

	img, err := e.loadImage(ws)
	if err != nil {
		return nil, err
	}

	if e.options.skipPreprocess {
		return preprocess.Gray(img), nil
	}

	out, err := preprocess.Image(img)
	if err != nil {
		return nil, fmt.Errorf("preprocessing: %w", err)
	}
	return out, nil
}

func (e *Extractor) rawText(ws *[]Warning) (string, error) {
	raw, err := e.recognize(ws, func(r recognizer, data []byte) (string, error) {
		return r.RecognizeImage(data)
	})
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(raw) == "" {
		addWarning(ws, WarnEmptyText, "OCR produced no text")
	}
	return raw, nil
}

func (e *Extractor) lines(ws *[]Warning) ([]string, error) {
	raw, err := e.rawText(ws)
	if err != nil {
		return nil, err
	}

	lines := annotate.Lines(annotate.Split(e.normalize(raw)))
	if len(lines) > 0 && len(annotate.Marked(lines)) == 0 {
		addWarning(ws, WarnNoMarkedLines, "no figures-only lines found; nothing was marked")
	}
	return lines, nil
}

// loadImage returns the source image, decoding the file if needed.
func (e *Extractor) loadImage(ws *[]Warning) (image.Image, error) {
	if e.image != nil {
		return e.image, nil
	}
	if e.filename == "" {
		return nil, errNoImage
	}

	img, err := reader.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	if ext := format.Detect(e.filename); ext != format.Unknown && img.Format != format.Unknown && ext != img.Format {
		addWarning(ws, WarnFormatMismatch, "%s has a %s extension but contains %s data",
			e.filename, ext, img.Format)
	}

	return img.Image, nil
}

// recognize preprocesses the image and runs one OCR call on it.
func (e *Extractor) recognize(ws *[]Warning, run func(recognizer, []byte) (string, error)) (string, error) {
	img, err := e.preprocessed(ws)
	if err != nil {
		return "", err
	}

	data, err := reader.EncodePNG(img)
	if err != nil {
		return "", err
	}

	client, err := e.newRecognizer(e.options)
	if err != nil {
		return "", fmt.Errorf("initializing OCR: %w", err)
	}
	defer client.Close()

	out, err := run(client, data)
	if err != nil {
		return "", fmt.Errorf("recognizing %s: %w", e.source(), err)
	}
	return out, nil
}

func (e *Extractor) normalize(s string) string {
	if e.options.normalizeUnicode {
		return norm.NFC.String(s)
	}
	return s
}

func (e *Extractor) source() string {
	if e.filename != "" {
		return e.filename
	}
	return "image"
}
