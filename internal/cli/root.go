// Package cli implements the tabscan command line.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/tabscan"
	"github.com/tsawler/tabscan/ocr"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd(os.Stderr).Execute()
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "tabscan [image]",
		Short: "Extract and annotate tabular text from a scanned image",
		Long: `tabscan preprocesses an image (grayscale, blur, Otsu threshold, close,
dilate), runs Tesseract on it and writes the recognized lines to a text file.
The last figures-only line before each labelled line, and the last line of a
trailing run of figures, is prefixed with "@ ".

Flags can also be set with TABSCAN_* environment variables or a config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), configFile, args)
			log := newLogger(logOut, cfg.LogFormat, cfg.Verbose)
			if err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			if err := run(cfg, log); err != nil {
				log.Error().Err(err).Str("input", cfg.Input).Msg("scan failed")
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "config file (yaml, toml or json)")
	f.StringP("output", "o", DefaultOutput, "output text file, overwritten on each run")
	f.StringSlice("lang", []string{"eng"}, "Tesseract language(s)")
	f.Int("psm", int(ocr.DefaultPageSegMode), "Tesseract page segmentation mode (0-13)")
	f.String("tessdata", "", "directory containing Tesseract language data")
	f.String("whitelist", "", "restrict recognition to these characters")
	f.Bool("no-preprocess", false, "skip the image filter chain")
	f.Bool("nfc", false, "NFC-normalize OCR output before annotation")
	f.Bool("raw", false, "write OCR output without annotation")
	f.BoolP("verbose", "v", false, "enable debug logging")
	f.String("log-format", "console", "log format: console or json")

	return cmd
}

// run executes one scan described by cfg.
func run(cfg Config, log zerolog.Logger) error {
	log.Debug().
		Str("input", cfg.Input).
		Str("output", cfg.Output).
		Strs("lang", cfg.Languages).
		Int("psm", cfg.PageSegMode).
		Msg("starting scan")

	ext := buildExtractor(cfg)

	write := ext.WriteFile
	if cfg.Raw {
		write = ext.WriteRawFile
	}

	warnings, err := write(cfg.Output)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		log.Warn().Str("code", w.Code.String()).Msg(w.Message)
	}

	log.Info().
		Str("output", cfg.Output).
		Bool("raw", cfg.Raw).
		Int("warnings", len(warnings)).
		Msg("scan complete")

	return nil
}

func buildExtractor(cfg Config) *tabscan.Extractor {
	ext := tabscan.Open(cfg.Input).
		PageSegMode(ocr.PageSegMode(cfg.PageSegMode))

	if len(cfg.Languages) > 0 {
		ext = ext.Language(cfg.Languages...)
	}
	if cfg.Tessdata != "" {
		ext = ext.TessdataPrefix(cfg.Tessdata)
	}
	if cfg.Whitelist != "" {
		ext = ext.Whitelist(cfg.Whitelist)
	}
	if cfg.NoPreprocess {
		ext = ext.SkipPreprocess()
	}
	if cfg.NFC {
		ext = ext.NormalizeUnicode()
	}
	return ext
}
