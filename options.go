package tabscan

import "github.com/tsawler/tabscan/ocr"

// ScanOptions holds configuration for OCR extraction.
type ScanOptions struct {
	// OCR engine
	languages      []string
	pageSegMode    ocr.PageSegMode
	tessdataPrefix string
	whitelist      string

	// Processing options
	skipPreprocess   bool
	normalizeUnicode bool // NFC-normalize OCR output before annotation
}

// defaultOptions returns the default extraction options.
func defaultOptions() ScanOptions {
	return ScanOptions{
		languages:        nil, // nil means the engine default ("eng")
		pageSegMode:      ocr.DefaultPageSegMode,
		tessdataPrefix:   "",
		whitelist:        "",
		skipPreprocess:   false,
		normalizeUnicode: false,
	}
}

// clone creates a deep copy of ScanOptions.
func (o ScanOptions) clone() ScanOptions {
	newOpts := ScanOptions{
		pageSegMode:      o.pageSegMode,
		tessdataPrefix:   o.tessdataPrefix,
		whitelist:        o.whitelist,
		skipPreprocess:   o.skipPreprocess,
		normalizeUnicode: o.normalizeUnicode,
	}

	// Deep copy languages slice
	if o.languages != nil {
		newOpts.languages = make([]string, len(o.languages))
		copy(newOpts.languages, o.languages)
	}

	return newOpts
}
