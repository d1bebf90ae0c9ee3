// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"

	"github.com/siderolabs/go-pointer"
	"go.uber.org/multierr"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/layout"
)

// Superblock kinds.
const (
	SuperblockPrimary = "Primary"
	SuperblockBackup  = "Backup"
)

// Range is an inclusive range of blocks.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of blocks in the range.
func (r Range) Len() uint64 {
	return r.End - r.Start + 1
}

// RelOffset locates a metadata block relative to the first block of a group.
type RelOffset struct {
	// Group is set when the block belongs to another group (flex_bg).
	Group  *uint32
	Offset uint64
}

// Location is a bitmap block with its annotations.
type Location struct {
	Block    uint64
	Rel      *RelOffset
	Checksum *uint32
}

// Group is the report record of a single block group.
//
// Optional facts are nil when they are omitted from the report, free
// sections are also omitted when they are empty.
type Group struct { //nolint:govet
	Num    uint32
	Blocks Range

	Checksum         *uint16
	ExpectedChecksum *uint16
	Flags            []string

	SuperblockType string
	Superblock     uint64

	Descriptors   *Range
	ReservedGDT   *Range
	NewDescriptor *uint64

	BlockBitmap Location
	InodeBitmap Location

	InodeTable    Range
	InodeTableRel *RelOffset

	Units        string
	FreeBlocks   uint32
	FreeInodes   uint32
	UsedDirs     uint32
	ItableUnused uint32

	FreeBlockExtents []extent.Extent
	FreeInodeExtents []extent.Extent
}

// HasSuperblock returns true if the group carries a superblock copy.
func (g *Group) HasSuperblock() bool {
	return g.SuperblockType != ""
}

// CompactGroup is the one-line summary of a group in groups-only mode.
type CompactGroup struct {
	Num        uint32
	FirstBlock uint64
	// Superblock is nil when the group has no superblock copy.
	Superblock *uint64
	// Descriptors is the formatted descriptor location, "-1" when absent.
	Descriptors string

	BlockBitmap uint64
	InodeBitmap uint64
	InodeTable  uint64
}

// CompactHeader names the fields of a CompactGroup line.
const CompactHeader = "group:block:super:gdt:bbitmap:ibitmap:itable"

// String formats the group as a colon-separated line.
func (c *CompactGroup) String() string {
	super := "-1"
	if c.Superblock != nil {
		super = fmt.Sprintf("%d", *c.Superblock)
	}

	return fmt.Sprintf("%d:%d:%s:%s:%d:%d:%d", c.Num, c.FirstBlock, super, c.Descriptors, c.BlockBitmap, c.InodeBitmap, c.InodeTable)
}

// BitmapError is a failure to read the bitmap of a single group.
type BitmapError struct {
	Err   error
	Group uint32
	Kind  string
}

func (e *BitmapError) Error() string {
	return fmt.Sprintf("%s while reading %s bitmap", e.Err, e.Kind)
}

func (e *BitmapError) Unwrap() error {
	return e.Err
}

// BitmapReader reads ranges of the loaded allocation bitmaps.
type BitmapReader interface {
	BlockBitmapRange(start, count uint64) ([]byte, error)
	InodeBitmapRange(start, count uint64) ([]byte, error)
}

// Builder derives group records from descriptors.
//
// Groups must be built in ascending order: the bitmap positions advance with every group.
type Builder struct {
	bitmaps  BitmapReader
	geometry layout.Geometry
	status   layout.BitmapStatus
	format   Format

	blockItr uint64
	inodeItr uint64
}

// NewBuilder creates a builder, status tells which bitmaps can be read from bitmaps.
func NewBuilder(geometry layout.Geometry, bitmaps BitmapReader, status layout.BitmapStatus, format Format) *Builder {
	return &Builder{
		bitmaps:  bitmaps,
		geometry: geometry,
		status:   status,
		format:   format,

		blockItr: geometry.FirstDataBlock / uint64(max(geometry.ClusterRatio, 1)),
		inodeItr: 1,
	}
}

// Build returns the record of the group.
//
// A bitmap which can't be read leaves its free section out; the record is
// still returned along with the error.
func (b *Builder) Build(desc *layout.Descriptor) (*Group, error) {
	g := &b.geometry
	num := desc.Group

	first, last := g.GroupFirstBlock(num), g.GroupLastBlock(num)
	placement := g.Placement(num)

	group := &Group{
		Num:    num,
		Blocks: Range{Start: first, End: last},
		Flags:  []string{},
		Units:  g.Units(),

		FreeBlocks:   desc.FreeBlocks,
		FreeInodes:   desc.FreeInodes,
		UsedDirs:     desc.UsedDirs,
		ItableUnused: desc.ItableUnused,
	}

	if g.Features.GroupDescCsum {
		group.Checksum = pointer.To(desc.Checksum)

		if desc.Checksum != desc.ExpectedChecksum {
			group.ExpectedChecksum = pointer.To(desc.ExpectedChecksum)
		}

		group.Flags = desc.FlagNames()
		if group.Flags == nil {
			group.Flags = []string{}
		}
	}

	if num == 0 || placement.Super != 0 {
		group.SuperblockType = SuperblockBackup
		if num == 0 {
			group.SuperblockType = SuperblockPrimary
		}

		group.Superblock = placement.Super
	}

	switch {
	case placement.OldDesc != 0:
		oldDescBlocks := uint64(g.OldDescBlocks())

		group.Descriptors = &Range{Start: placement.OldDesc, End: placement.OldDesc + oldDescBlocks - 1}

		if reserved := uint64(g.ReservedGDTBlocks); reserved > 0 {
			group.ReservedGDT = &Range{Start: placement.OldDesc + oldDescBlocks, End: placement.OldDesc + oldDescBlocks + reserved - 1}
		}
	case placement.NewDesc != 0:
		group.NewDescriptor = pointer.To(placement.NewDesc)
	}

	group.BlockBitmap = Location{
		Block: desc.BlockBitmap,
		Rel:   b.relOffset(desc.BlockBitmap, first, last, false),
	}

	group.InodeBitmap = Location{
		Block: desc.InodeBitmap,
		Rel:   b.relOffset(desc.InodeBitmap, first, last, false),
	}

	if g.Features.MetadataCsum {
		group.BlockBitmap.Checksum = pointer.To(desc.BlockBitmapChecksum)
		group.InodeBitmap.Checksum = pointer.To(desc.InodeBitmapChecksum)
	}

	group.InodeTable = Range{Start: desc.InodeTable, End: desc.InodeTable + g.InodeBlocksPerGroup() - 1}
	group.InodeTableRel = b.relOffset(desc.InodeTable, first, last, true)

	return group, b.fillFree(group)
}

// Skip moves past a group which isn't built, so the next group reads its own bitmaps.
func (b *Builder) Skip() {
	b.advance()
}

func (b *Builder) advance() {
	if b.status.Blocks {
		b.blockItr += uint64(b.geometry.ClustersPerGroup)
	}

	if b.status.Inodes {
		b.inodeItr += uint64(b.geometry.InodesPerGroup)
	}
}

func (b *Builder) fillFree(group *Group) error {
	g := &b.geometry

	var errs error

	if b.status.Blocks {
		cpg := uint64(g.ClustersPerGroup)

		bitmap, err := b.bitmaps.BlockBitmapRange(b.blockItr, cpg/8*8)
		if err != nil {
			errs = multierr.Append(errs, &BitmapError{Err: err, Group: group.Num, Kind: "block"})
		} else {
			group.FreeBlockExtents = extent.Compress(bitmap, cpg, uint64(group.Num), g.FirstDataBlock, uint64(g.ClusterRatio))
		}
	}

	if b.status.Inodes {
		ipg := uint64(g.InodesPerGroup)

		bitmap, err := b.bitmaps.InodeBitmapRange(b.inodeItr, ipg/8*8)
		if err != nil {
			errs = multierr.Append(errs, &BitmapError{Err: err, Group: group.Num, Kind: "inode"})
		} else {
			group.FreeInodeExtents = extent.Compress(bitmap, ipg, uint64(group.Num), 1, 1)
		}
	}

	b.advance()

	return errs
}

// relOffset annotates blk with its position in the group [first, last], or in
// the owning group under flex_bg. The inode table at the start of its group isn't annotated.
func (b *Builder) relOffset(blk, first, last uint64, itable bool) *RelOffset {
	g := &b.geometry

	switch {
	case blk >= first && blk <= last:
		if itable && blk == first {
			return nil
		}

		return &RelOffset{Offset: blk - first}
	case g.Features.FlexBG:
		owner := g.GroupOfBlock(blk)

		return &RelOffset{
			Group:  pointer.To(owner),
			Offset: blk - g.GroupFirstBlock(owner),
		}
	default:
		return nil
	}
}

// BuildCompact returns the groups-only summary of the group.
func (b *Builder) BuildCompact(desc *layout.Descriptor) *CompactGroup {
	g := &b.geometry
	placement := g.Placement(desc.Group)

	compact := &CompactGroup{
		Num:         desc.Group,
		FirstBlock:  g.GroupFirstBlock(desc.Group),
		Descriptors: "-1",

		BlockBitmap: desc.BlockBitmap,
		InodeBitmap: desc.InodeBitmap,
		InodeTable:  desc.InodeTable,
	}

	if desc.Group == 0 || placement.Super != 0 {
		compact.Superblock = pointer.To(placement.Super)
	}

	switch {
	case placement.OldDesc != 0:
		compact.Descriptors = b.format.Range(placement.OldDesc, placement.OldDesc+uint64(g.OldDescBlocks())-1)
	case placement.NewDesc != 0:
		compact.Descriptors = fmt.Sprintf("%d", placement.NewDesc)
	}

	return compact
}
