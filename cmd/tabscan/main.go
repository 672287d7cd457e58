// Command tabscan extracts annotated tabular text from a scanned image.
//
// Usage:
//
//	tabscan [image] [-o output.txt] [--lang eng] [--psm 6]
//
// With no arguments it reads OCR/nia.png and writes output.txt.
package main

import (
	"os"

	"github.com/tsawler/tabscan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
