package tabscan

import "strings"

// WarningCode identifies the kind of non-fatal issue encountered.
type WarningCode int

const (
	// WarnEmptyText means OCR succeeded but recognized no text.
	WarnEmptyText WarningCode = iota + 1
	// WarnFormatMismatch means the file extension disagrees with its content.
	WarnFormatMismatch
	// WarnNoMarkedLines means the text has lines but none were flagged,
	// usually because every line contains letters.
	WarnNoMarkedLines
)

// String returns a short name for the code.
func (c WarningCode) String() string {
	switch c {
	case WarnEmptyText:
		return "empty-text"
	case WarnFormatMismatch:
		return "format-mismatch"
	case WarnNoMarkedLines:
		return "no-marked-lines"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue. Extraction succeeded, but the
// result may not be what the caller expects.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning message.
func (w Warning) String() string {
	return w.Message
}

// FormatWarnings joins warning messages into a single line.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
