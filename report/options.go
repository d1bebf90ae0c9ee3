// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"io"

	"go.uber.org/zap"
)

// Options is the options for generating a report.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger
	// Diagnostics receives section-local failures and, in JSON mode, banners.
	Diagnostics io.Writer

	// Program and Device name the trailing bitmap error line.
	Program string
	Device  string

	// Hex prints block numbers in hexadecimal.
	Hex bool
	// JSON selects the structured renderer.
	JSON bool
	// HeaderOnly stops after the superblock summary.
	HeaderOnly bool
	// GroupsOnly prints the compact group table only.
	GroupsOnly bool
	// BadBlocksOnly dumps the bad blocks list only.
	BadBlocksOnly bool
	// IgnoreColumns keeps the bitmap locations of a group on a single line.
	IgnoreColumns bool
}

// Option is an option for generating a report.
type Option func(*Options)

// WithLogger sets the logger for the report.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDiagnostics sets the writer for diagnostics.
func WithDiagnostics(w io.Writer) Option {
	return func(o *Options) {
		o.Diagnostics = w
	}
}

// WithNames sets the program and device names.
func WithNames(program, device string) Option {
	return func(o *Options) {
		o.Program = program
		o.Device = device
	}
}

// WithHex prints block numbers in hexadecimal.
func WithHex(hex bool) Option {
	return func(o *Options) {
		o.Hex = hex
	}
}

// WithJSON selects the structured output.
func WithJSON(json bool) Option {
	return func(o *Options) {
		o.JSON = json
	}
}

// WithHeaderOnly stops the report after the superblock summary.
func WithHeaderOnly(headerOnly bool) Option {
	return func(o *Options) {
		o.HeaderOnly = headerOnly
	}
}

// WithGroupsOnly reports the compact group table only.
func WithGroupsOnly(groupsOnly bool) Option {
	return func(o *Options) {
		o.GroupsOnly = groupsOnly
	}
}

// WithBadBlocksOnly dumps the bad blocks only.
func WithBadBlocksOnly(badBlocksOnly bool) Option {
	return func(o *Options) {
		o.BadBlocksOnly = badBlocksOnly
	}
}

// WithIgnoreColumns disables wrapping of the bitmap locations line.
func WithIgnoreColumns(ignore bool) Option {
	return func(o *Options) {
		o.IgnoreColumns = ignore
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:      zap.NewNop(),
		Diagnostics: io.Discard,
		Program:     "extlayout",
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.Diagnostics == nil {
		o.Diagnostics = io.Discard
	}

	return o
}
