package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cmd := newRootCmd(&bytes.Buffer{})
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	configFile, _ := cmd.Flags().GetString("config")
	return loadConfig(cmd.Flags(), configFile, cmd.Flags().Args())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Input != DefaultInput {
		t.Errorf("Input = %q, want %q", cfg.Input, DefaultInput)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if cfg.PageSegMode != 6 {
		t.Errorf("PageSegMode = %d, want 6", cfg.PageSegMode)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"eng"}) {
		t.Errorf("Languages = %v, want [eng]", cfg.Languages)
	}
	if cfg.Raw || cfg.NoPreprocess || cfg.NFC {
		t.Errorf("unexpected boolean defaults: %+v", cfg)
	}
}

func TestLoadConfigFlagsAndArgs(t *testing.T) {
	cfg, err := parse(t, "scan.tif", "-o", "out.txt", "--psm", "4", "--lang", "eng,deu", "--raw", "--nfc")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Input != "scan.tif" || cfg.Output != "out.txt" {
		t.Errorf("paths = %q -> %q", cfg.Input, cfg.Output)
	}
	if cfg.PageSegMode != 4 {
		t.Errorf("PageSegMode = %d, want 4", cfg.PageSegMode)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"eng", "deu"}) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if !cfg.Raw || !cfg.NFC {
		t.Errorf("expected raw and nfc: %+v", cfg)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("TABSCAN_OUTPUT", "env.txt")
	t.Setenv("TABSCAN_NO_PREPROCESS", "true")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Output != "env.txt" {
		t.Errorf("Output = %q, want env.txt", cfg.Output)
	}
	if !cfg.NoPreprocess {
		t.Error("expected NoPreprocess from environment")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabscan.yaml")
	data := "input: ledger.png\noutput: ledger.txt\npsm: 11\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parse(t, "--config", path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Input != "ledger.png" || cfg.Output != "ledger.txt" || cfg.PageSegMode != 11 {
		t.Errorf("config file not applied: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := parse(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Input: "a.png", Output: "a.txt", PageSegMode: 6, LogFormat: "console"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input", func(c *Config) { c.Input = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"psm too high", func(c *Config) { c.PageSegMode = 14 }},
		{"psm negative", func(c *Config) { c.PageSegMode = -1 }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRunMissingInput(t *testing.T) {
	for _, extra := range [][]string{nil, {"--raw"}} {
		var logs bytes.Buffer
		out := filepath.Join(t.TempDir(), "out.txt")

		args := []string{filepath.Join(t.TempDir(), "missing.png"), "-o", out, "--log-format", "json"}
		cmd := newRootCmd(&logs)
		cmd.SetArgs(append(args, extra...))
		if err := cmd.Execute(); err == nil {
			t.Fatalf("%v: expected error for missing input image", extra)
		}

		if !strings.Contains(logs.String(), "scan failed") {
			t.Errorf("%v: expected failure to be logged, got %q", extra, logs.String())
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Errorf("%v: output file should not be created on failure", extra)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "json", false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info message missing")
	}
}
