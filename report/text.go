// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

// labelWidth is the column where summary values start.
const labelWidth = 26

type textRenderer struct {
	w             *bufio.Writer
	format        Format
	ignoreColumns bool
}

// NewTextRenderer returns a renderer writing the plain text report.
//
// With ignoreColumns the block and inode bitmap locations share a line.
func NewTextRenderer(w io.Writer, format Format, ignoreColumns bool) Renderer {
	return &textRenderer{
		w:             bufio.NewWriter(w),
		format:        format,
		ignoreColumns: ignoreColumns,
	}
}

func (r *textRenderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...) //nolint:errcheck
}

func (r *textRenderer) field(label string, value any) {
	r.printf("%-*s%v\n", labelWidth, label+":", value)
}

func (r *textRenderer) Header(geometry *layout.Geometry) {
	for _, f := range headerFields(geometry) {
		r.field(f.label, f.value)
	}
}

func (r *textRenderer) Notice(text string) {
	r.w.WriteString(text) //nolint:errcheck
}

func (r *textRenderer) Journal(s *journal.Summary) {
	r.printf("%s", "Journal features:        ")

	if len(s.Features) == 0 {
		r.printf(" (none)")
	}

	for _, feature := range s.Features {
		r.printf(" %s", feature)
	}

	r.printf("\n")

	r.field("Journal size", s.Size)

	if s.BlockSize != nil {
		r.field("Journal block size", *s.BlockSize)
	}

	r.field("Journal length", s.Length)

	if s.FirstBlock != nil {
		r.field("Journal first block", *s.FirstBlock)
	}

	r.field("Journal sequence", fmt.Sprintf("0x%08x", s.Sequence))
	r.field("Journal start", s.Start)

	if s.NumberOfUsers != nil {
		r.field("Journal number of users", *s.NumberOfUsers)
	}

	if s.ChecksumType != nil {
		r.field("Journal checksum type", *s.ChecksumType)
	}

	if s.Checksum != nil {
		r.field("Journal checksum", fmt.Sprintf("0x%08x", *s.Checksum))
	}

	for i, user := range s.Users {
		label := "Journal users:"
		if i > 0 {
			label = ""
		}

		r.printf("%-*s%s\n", labelWidth, label, user)
	}

	if s.Errno != nil {
		r.field("Journal errno", *s.Errno)
	}
}

func (r *textRenderer) BadBlocks(blocks []uint32, dump bool) {
	if dump {
		for _, blk := range blocks {
			r.printf("%d\n", blk)
		}

		return
	}

	for i, blk := range blocks {
		if i == 0 {
			r.printf("Bad blocks: %d", blk)
		} else {
			r.printf(", %d", blk)
		}
	}

	r.printf("\n")
}

func (r *textRenderer) BeginGroups(compact bool) {
	r.printf("\n")

	if compact {
		r.printf("%s\n", CompactHeader)
	}
}

func (r *textRenderer) CompactGroup(group *CompactGroup) {
	r.printf("%s\n", group)
}

//nolint:gocyclo,cyclop
func (r *textRenderer) Group(group *Group) {
	f := r.format

	r.printf("Group %d: (Blocks %s)", group.Num, f.Range(group.Blocks.Start, group.Blocks.End))

	if group.Checksum != nil {
		r.printf(" csum 0x%04x", *group.Checksum)

		if group.ExpectedChecksum != nil {
			r.printf(" (EXPECTED 0x%04x)", *group.ExpectedChecksum)
		}
	}

	if len(group.Flags) > 0 {
		r.printf(" [%s]", strings.Join(group.Flags, ", "))
	}

	r.printf("\n")

	hasSuper := group.HasSuperblock()

	if hasSuper {
		r.printf("  %s superblock at %s", group.SuperblockType, f.Number(group.Superblock))
	}

	switch {
	case group.Descriptors != nil:
		r.printf(", Group descriptors at %s", f.Range(group.Descriptors.Start, group.Descriptors.End))

		if group.ReservedGDT != nil {
			r.printf("\n  Reserved GDT blocks at %s", f.Range(group.ReservedGDT.Start, group.ReservedGDT.End))
		}
	case group.NewDescriptor != nil:
		sep := " "
		if hasSuper {
			sep = ","
		}

		r.printf("%s Group descriptor at %s", sep, f.Number(*group.NewDescriptor))

		hasSuper = true
	}

	if hasSuper {
		r.printf("\n")
	}

	r.printf("  Block bitmap at %s", f.Number(group.BlockBitmap.Block))
	r.location(&group.BlockBitmap)

	if r.ignoreColumns {
		r.printf(",")
	} else {
		r.printf("\n ")
	}

	r.printf(" Inode bitmap at %s", f.Number(group.InodeBitmap.Block))
	r.location(&group.InodeBitmap)

	r.printf("\n  Inode table at %s", f.Range(group.InodeTable.Start, group.InodeTable.End))
	r.relOffset(group.InodeTableRel)

	r.printf("\n  %d free %s, %d free inodes, %d directories", group.FreeBlocks, group.Units, group.FreeInodes, group.UsedDirs)

	if group.ItableUnused != 0 {
		r.printf(", %d unused inodes", group.ItableUnused)
	}

	r.printf("\n")

	if len(group.FreeBlockExtents) > 0 {
		r.printf("  Free blocks: %s\n", f.Extents(group.FreeBlockExtents))
	}

	if len(group.FreeInodeExtents) > 0 {
		r.printf("  Free inodes: %s\n", f.Extents(group.FreeInodeExtents))
	}
}

func (r *textRenderer) location(loc *Location) {
	r.relOffset(loc.Rel)

	if loc.Checksum != nil {
		r.printf(", csum 0x%08x", *loc.Checksum)
	}
}

func (r *textRenderer) relOffset(rel *RelOffset) {
	switch {
	case rel == nil:
	case rel.Group != nil:
		r.printf(" (bg #%d + %d)", *rel.Group, rel.Offset)
	default:
		r.printf(" (+%d)", rel.Offset)
	}
}

func (r *textRenderer) Finish() error {
	return r.w.Flush()
}
