// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main implements the extlayout command which prints the layout of an ext filesystem.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siderolabs/go-extlayout/report"
	"github.com/siderolabs/go-extlayout/volume"
)

const programName = "extlayout"

// version is set at build time.
var version = "undefined"

// ignoreColumnsEnv keeps the bitmap locations of a group on one line when set.
const ignoreColumnsEnv = "DUMPE2FS_IGNORE_80COL"

type flags struct {
	extended []string

	badBlocks  bool
	force      bool
	groupsOnly bool
	headerOnly bool
	hex        bool
	json       bool
	version    bool
	debug      bool
	skipLock   bool
}

func newLogger(stderr io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	config := zap.NewProductionEncoderConfig()

	if debug {
		level = zapcore.DebugLevel
		config = zap.NewDevelopmentEncoderConfig()
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(stderr), level))
}

func (f *flags) register(fs *pflag.FlagSet) {
	// -h selects header-only output, help is only available as --help
	fs.Bool("help", false, "help for "+programName)

	fs.BoolVarP(&f.badBlocks, "bad-blocks", "b", false, "print the blocks which are reserved as bad")
	fs.BoolVarP(&f.force, "force", "f", false, "display the filesystem even if it has unsupported features")
	fs.BoolVarP(&f.groupsOnly, "groups", "g", false, "display the group descriptors in a compact format")
	fs.BoolVarP(&f.headerOnly, "header-only", "h", false, "only display the superblock information")
	fs.BoolVarP(&f.hex, "hex", "x", false, "print block numbers in hexadecimal")
	fs.BoolVarP(&f.json, "json", "j", false, "print the group descriptors as JSON")
	fs.BoolVarP(&f.version, "version", "V", false, "print the version number and exit")
	fs.StringSliceVarP(&f.extended, "extended", "o", nil, "extended options: superblock=N, blocksize=N")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.skipLock, "skip-locking", false, "don't lock the block device")
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           programName + " [flags] device",
		Short:         "Print the layout and allocation state of an ext2/3/4 filesystem",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if f.version {
				fmt.Fprintf(stderr, "%s %s\n", programName, version) //nolint:errcheck

				return nil
			}

			if len(args) != 1 {
				return errors.New("a device is required")
			}

			logger := newLogger(stderr, f.debug)
			defer logger.Sync() //nolint:errcheck

			return run(args[0], &f, stdout, stderr, logger)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f.register(cmd.Flags())

	return cmd
}

func run(device string, f *flags, stdout, stderr io.Writer, logger *zap.Logger) error {
	ext, err := parseExtendedOptions(f.extended)
	if err != nil {
		return err
	}

	vol, err := volume.OpenPath(device,
		volume.WithLogger(logger),
		volume.WithForce(f.force),
		volume.WithSuperblock(ext.superblock),
		volume.WithBlockSize(ext.blockSize),
		volume.WithSkipLocking(f.skipLock),
	)
	if err != nil {
		return fmt.Errorf("%w while trying to open %s\nCouldn't find valid filesystem superblock", err, device)
	}

	defer vol.Close() //nolint:errcheck

	return report.Run(vol, stdout,
		report.WithLogger(logger),
		report.WithDiagnostics(stderr),
		report.WithNames(programName, device),
		report.WithHex(f.hex),
		report.WithJSON(f.json),
		report.WithHeaderOnly(f.headerOnly),
		report.WithGroupsOnly(f.groupsOnly),
		report.WithBadBlocksOnly(f.badBlocks),
		report.WithIgnoreColumns(os.Getenv(ignoreColumnsEnv) != ""),
	)
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", programName, err) //nolint:errcheck

		os.Exit(1)
	}
}
