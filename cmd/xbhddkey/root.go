package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moffa90/go-xboxhdd/drive"
	"github.com/moffa90/go-xboxhdd/eeprom"
)

func newRootCmd() *cobra.Command {
	flags := defaultOptions()

	cmd := &cobra.Command{
		Use:   "xbhddkey",
		Short: "Recover an original Xbox HDD key and password from an EEPROM dump",
		Long: "Decrypts the protected block of a 256-byte Xbox EEPROM image by trying every known kernel variant,\n" +
			"prints the recovered HDD key, region and kernel, and derives the drive's ATA password from the\n" +
			"drive model and serial number.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := defaultOptions()
			if flags.ConfigPath != "" {
				var err error
				if opts, err = loadConfig(flags.ConfigPath); err != nil {
					return err
				}
			}
			opts = merge(opts, flags, cmd.Flags())

			if err := opts.validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), opts.Verbose || opts.Dump)
			defer func() { _ = logger.Sync() }()

			return run(cmd.OutOrStdout(), logger, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.File, "file", "f", "", "path to the EEPROM image")
	f.StringVarP(&flags.Model, "model", "m", "", "drive model string")
	f.StringVarP(&flags.Serial, "serial", "s", "", "drive serial string")
	f.StringVarP(&flags.Output, "output", "o", flags.Output, "output format (hex, bin)")
	f.IntVarP(&flags.Width, "width", "w", flags.Width, "password width in bytes (20 or 32)")
	f.StringVar(&flags.Out, "out", "", "write bin output to this file instead of stdout")
	f.StringVarP(&flags.ConfigPath, "config", "c", "", "YAML file with default option values")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "log every kernel variant trial")
	f.BoolVar(&flags.Dump, "dump", false, "log the parsed EEPROM layout (implies --verbose)")

	return cmd
}

// run recovers the key and writes the result to w.
func run(w io.Writer, logger *zap.Logger, opts options) error {
	img, err := eeprom.Parse(opts.File)
	if err != nil {
		return err
	}

	if opts.Dump {
		logger.Debug("eeprom layout", zap.String("dump", spew.Sdump(img.Layout())))
	}

	dec, err := eeprom.New(img, eeprom.WithLogger(newCodecLogger(logger))).Decode()
	if err != nil {
		if eeprom.IsRecoveryError(err) {
			return fmt.Errorf("%w (the image is corrupted or from an unsupported kernel)", err)
		}
		return err
	}

	width, _ := drive.ParseWidth(opts.Width)
	pw := drive.Format(drive.Password(dec.DriveKey(), opts.Model, opts.Serial), width)

	logger.Debug("password derived",
		zap.String("model", opts.Model),
		zap.String("serial", opts.Serial),
		zap.Int("width", int(width)),
	)

	switch opts.Output {
	case outputBin:
		return writeBin(w, opts.Out, pw)
	default:
		return writeReport(w, img, dec, pw)
	}
}

func writeReport(w io.Writer, img *eeprom.Image, dec *eeprom.Decoded, pw []byte) error {
	lines := []struct {
		label string
		value string
	}{
		{"EEPROM HDD Key", drive.Hex(dec.DriveKey())},
		{"EEPROM Region", dec.RegionName()},
		{"EEPROM Kernel", dec.FirmwareLabel()},
		{"Console Serial", img.SerialNumber()},
		{"Console MAC", img.MACAddress().String()},
		{"Video Standard", img.VideoStandard().String()},
		{fmt.Sprintf("HDD Password (%d bytes)", len(pw)), drive.Hex(pw)},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	return nil
}

func writeBin(w io.Writer, path string, pw []byte) error {
	if path == "" {
		_, err := w.Write(pw)
		return err
	}

	if err := os.WriteFile(path, pw, 0o600); err != nil {
		return fmt.Errorf("could not write password: %w", err)
	}
	return nil
}
