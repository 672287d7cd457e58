package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/tabscan/ocr"
)

// Defaults for a run without flags.
const (
	DefaultInput  = "OCR/nia.png"
	DefaultOutput = "output.txt"
)

// Config holds the resolved settings for one run.
type Config struct {
	Input        string   `mapstructure:"input"`
	Output       string   `mapstructure:"output"`
	Languages    []string `mapstructure:"lang"`
	PageSegMode  int      `mapstructure:"psm"`
	Tessdata     string   `mapstructure:"tessdata"`
	Whitelist    string   `mapstructure:"whitelist"`
	NoPreprocess bool     `mapstructure:"no-preprocess"`
	NFC          bool     `mapstructure:"nfc"`
	Raw          bool     `mapstructure:"raw"`
	Verbose      bool     `mapstructure:"verbose"`
	LogFormat    string   `mapstructure:"log-format"`
}

// Validate checks values that cobra and viper cannot.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input image")
	}
	if c.Output == "" {
		return errors.New("no output path")
	}
	if !ocr.PageSegMode(c.PageSegMode).Valid() {
		return fmt.Errorf("invalid --psm %d (want 0-13)", c.PageSegMode)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid --log-format %q (want console or json)", c.LogFormat)
	}
	return nil
}

// loadConfig merges flags, TABSCAN_* environment variables and an optional
// config file, in that order of precedence.
func loadConfig(flags *pflag.FlagSet, configFile string, args []string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("input", DefaultInput)

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}

	return cfg, cfg.Validate()
}
