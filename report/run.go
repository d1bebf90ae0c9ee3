// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

// Banners printed on checksum mismatches.
const (
	FilesystemChecksumBanner = "\n*** Checksum errors detected in filesystem!  Run e2fsck now!\n\n"
	BitmapChecksumBanner     = "\n*** Checksum errors detected in bitmaps!  Run e2fsck now!\n\n"
)

// Source is the volume a report is generated from.
type Source interface {
	BitmapReader

	Geometry() layout.Geometry
	GroupDescriptor(group uint32) (layout.Descriptor, error)
	LoadBitmaps() (layout.BitmapStatus, error)
	BadBlocks() ([]uint32, error)
	JournalSuperblock(kind layout.JournalKind) ([]byte, error)
	ChecksumErrors() bool
}

type runner struct {
	src      Source
	r        Renderer
	options  Options
	geometry layout.Geometry
	format   Format
}

// Run writes the layout report of the source to w.
//
// Section-local failures are written to the diagnostics writer and don't
// fail the run; errors reading an external journal device and write errors are returned.
func Run(src Source, w io.Writer, opts ...Option) error {
	options := applyOptions(opts...)

	geometry := src.Geometry()
	format := Format{
		Hex:  options.Hex,
		Wide: geometry.Features.Bit64,
	}

	var r Renderer

	if options.JSON {
		r = NewDocumentRenderer(w, format, options.Diagnostics)
	} else {
		r = NewTextRenderer(w, format, options.IgnoreColumns)
	}

	run := &runner{
		src:      src,
		r:        r,
		options:  options,
		geometry: geometry,
		format:   format,
	}

	err := run.run()

	return multierr.Append(err, r.Finish())
}

func (run *runner) diag(format string, args ...any) {
	fmt.Fprintf(run.options.Diagnostics, format+"\n", args...) //nolint:errcheck
}

func (run *runner) run() error {
	if run.options.BadBlocksOnly {
		run.badBlocks(true)

		return nil
	}

	var (
		status    layout.BitmapStatus
		bitmapErr error
	)

	if !run.options.GroupsOnly {
		stop, err := run.summary()
		if err != nil || stop {
			return err
		}

		status, bitmapErr = run.loadBitmaps()
	}

	run.groups(status)

	if bitmapErr != nil {
		run.r.Notice(fmt.Sprintf("\n%s: %s: error reading bitmaps: %s\n", run.options.Program, run.options.Device, bitmapErr))
	}

	return nil
}

// summary renders the sections preceding the group table.
func (run *runner) summary() (stop bool, err error) {
	g := &run.geometry

	if run.src.ChecksumErrors() {
		run.r.Notice(FilesystemChecksumBanner)
	}

	run.r.Header(g)

	if g.Features.JournalDev {
		summary, err := run.journal(layout.JournalDevice)
		if err != nil {
			return true, fmt.Errorf("failed to read journal device superblock: %w", err)
		}

		run.r.Journal(summary)

		return true, nil
	}

	if g.Features.HasJournal && g.Identity.JournalInode != 0 {
		summary, err := run.journal(layout.JournalInline)
		if err != nil {
			run.options.Logger.Warn("failed to read journal superblock", zap.Error(err))
			run.diag("%s: %s while reading journal super block", run.options.Program, err)
		} else {
			run.r.Journal(summary)
		}
	}

	run.badBlocks(false)

	return run.options.HeaderOnly, nil
}

func (run *runner) journal(kind layout.JournalKind) (*journal.Summary, error) {
	buf, err := run.src.JournalSuperblock(kind)
	if err != nil {
		return nil, err
	}

	var sb journal.Superblock

	if kind == layout.JournalDevice {
		sb, err = journal.ParseDevice(buf)
	} else {
		sb, err = journal.Parse(buf)
	}

	if err != nil {
		return nil, err
	}

	summary := sb.Summarize(run.geometry.BlockSize)

	return &summary, nil
}

func (run *runner) badBlocks(dump bool) {
	blocks, err := run.src.BadBlocks()
	if err != nil {
		run.options.Logger.Warn("failed to read bad blocks inode", zap.Error(err))
		run.diag("%s: %s while reading bad blocks inode", run.options.Program, err)

		return
	}

	run.r.BadBlocks(blocks, dump)
}

// loadBitmaps reads the bitmaps, a failed load leaves every free section out.
func (run *runner) loadBitmaps() (layout.BitmapStatus, error) {
	status, err := run.src.LoadBitmaps()
	if err != nil {
		run.options.Logger.Warn("failed to load bitmaps", zap.Error(err))

		return layout.BitmapStatus{}, err
	}

	if status.ChecksumErrors {
		run.r.Notice(BitmapChecksumBanner)
	}

	return status, nil
}

func (run *runner) groups(status layout.BitmapStatus) {
	compact := run.options.GroupsOnly

	builder := NewBuilder(run.geometry, run.src, status, run.format)

	run.r.BeginGroups(compact)

	for group := range run.geometry.GroupCount {
		desc, err := run.src.GroupDescriptor(group)
		if err != nil {
			run.options.Logger.Warn("failed to read group descriptor", zap.Uint32("group", group), zap.Error(err))
			run.diag("list_desc: %s", err)

			builder.Skip()

			continue
		}

		if compact {
			run.r.CompactGroup(builder.BuildCompact(&desc))

			continue
		}

		record, err := builder.Build(&desc)

		for _, e := range multierr.Errors(err) {
			run.options.Logger.Warn("failed to read group bitmap", zap.Uint32("group", group), zap.Error(e))
			run.diag("list_desc: %s", e)
		}

		run.r.Group(record)
	}
}
