package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-xboxhdd/drive"
)

// Output formats.
const (
	outputHex = "hex"
	outputBin = "bin"
)

// options holds the resolved command settings.
type options struct {
	File   string `yaml:"file"`
	Model  string `yaml:"model"`
	Serial string `yaml:"serial"`
	Output string `yaml:"output"`
	Width  int    `yaml:"width"`
	Out    string `yaml:"out"`

	// command line only
	ConfigPath string `yaml:"-"`
	Verbose    bool   `yaml:"-"`
	Dump       bool   `yaml:"-"`
}

func defaultOptions() options {
	return options{
		Output: outputHex,
		Width:  int(drive.Width20),
	}
}

// loadConfig reads a YAML config file into a fresh options value.
func loadConfig(path string) (options, error) {
	opts := defaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return opts, nil
}

// merge overlays every flag the user set explicitly onto base.
func merge(base, flags options, set *pflag.FlagSet) options {
	if set.Changed("file") {
		base.File = flags.File
	}
	if set.Changed("model") {
		base.Model = flags.Model
	}
	if set.Changed("serial") {
		base.Serial = flags.Serial
	}
	if set.Changed("output") {
		base.Output = flags.Output
	}
	if set.Changed("width") {
		base.Width = flags.Width
	}
	if set.Changed("out") {
		base.Out = flags.Out
	}

	base.ConfigPath = flags.ConfigPath
	base.Verbose = flags.Verbose
	base.Dump = flags.Dump

	return base
}

// validate checks that the options describe a runnable request.
func (o options) validate() error {
	if o.File == "" {
		return fmt.Errorf("an EEPROM file is required (--file)")
	}
	if o.Model == "" {
		return fmt.Errorf("a drive model is required (--model)")
	}
	if o.Serial == "" {
		return fmt.Errorf("a drive serial is required (--serial)")
	}

	switch o.Output {
	case outputHex, outputBin:
	default:
		return fmt.Errorf("invalid output format %q (must be %s or %s)", o.Output, outputHex, outputBin)
	}

	if _, err := drive.ParseWidth(o.Width); err != nil {
		return err
	}

	return nil
}
