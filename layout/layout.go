// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layout describes the geometry of an ext filesystem and the placement
// of its per-group metadata.
package layout

import (
	"github.com/google/uuid"

	"github.com/siderolabs/go-extlayout/internal/utils"
)

// Features is the set of resolved feature flags the report depends on.
type Features struct {
	FlexBG       bool
	Bit64        bool
	Bigalloc     bool
	MetaBG       bool
	SparseSuper  bool
	SparseSuper2 bool
	// GroupDescCsum is set when either gdt_csum or metadata_csum is enabled.
	GroupDescCsum bool
	MetadataCsum  bool
	JournalDev    bool
	HasJournal    bool
}

// Identity carries the superblock fields shown in the header summary.
type Identity struct { //nolint:govet
	Label string
	UUID  uuid.UUID

	Magic       uint16
	Revision    uint32
	MinorRev    uint16
	State       uint16
	Errors      uint16
	CreatorOS   uint32
	InodesCount uint32

	ReservedBlocks uint64
	FreeBlocks     uint64
	FreeInodes     uint32

	FirstInode       uint32
	JournalInode     uint32
	LogGroupsPerFlex uint8

	FeatureCompat   uint32
	FeatureIncompat uint32
	FeatureROCompat uint32

	ChecksumType uint8
	Checksum     uint32
}

// Geometry is the immutable shape of the filesystem.
type Geometry struct { //nolint:govet
	BlockSize      uint32
	ClusterRatio   uint32
	FirstDataBlock uint64
	BlocksCount    uint64

	BlocksPerGroup   uint32
	ClustersPerGroup uint32
	InodesPerGroup   uint32
	InodeSize        uint32
	GroupCount       uint32

	ReservedGDTBlocks uint32
	FirstMetaBG       uint32
	DescSize          uint32

	// BackupGroups lists the backup superblock groups with sparse_super2.
	BackupGroups [2]uint32

	Features Features
	Identity Identity
}

// DescPerBlock returns the number of group descriptors in a block.
func (g *Geometry) DescPerBlock() uint32 {
	return g.BlockSize / g.DescSize
}

// DescBlocks returns the number of blocks holding the full descriptor table.
func (g *Geometry) DescBlocks() uint32 {
	return utils.DivCeil(g.GroupCount, g.DescPerBlock())
}

// OldDescBlocks returns the length of the contiguous descriptor table shown for groups with backups.
func (g *Geometry) OldDescBlocks() uint32 {
	if g.Features.MetaBG {
		return g.FirstMetaBG
	}

	return g.DescBlocks()
}

// InodeBlocksPerGroup returns the length of each inode table in blocks.
func (g *Geometry) InodeBlocksPerGroup() uint64 {
	return utils.DivCeil(uint64(g.InodesPerGroup)*uint64(g.InodeSize), uint64(g.BlockSize))
}

// Units returns the label for free space counters.
func (g *Geometry) Units() string {
	if g.Features.Bigalloc {
		return "clusters"
	}

	return "blocks"
}

// GroupFirstBlock returns the first block of the group.
func (g *Geometry) GroupFirstBlock(group uint32) uint64 {
	return g.FirstDataBlock + uint64(group)*uint64(g.BlocksPerGroup)
}

// GroupLastBlock returns the last block of the group.
func (g *Geometry) GroupLastBlock(group uint32) uint64 {
	if group == g.GroupCount-1 {
		return g.BlocksCount - 1
	}

	return g.GroupFirstBlock(group) + uint64(g.BlocksPerGroup) - 1
}

// GroupOfBlock returns the group containing the block.
func (g *Geometry) GroupOfBlock(blk uint64) uint32 {
	if blk < g.FirstDataBlock {
		return 0
	}

	return uint32((blk - g.FirstDataBlock) / uint64(g.BlocksPerGroup))
}

// GroupCountFor returns the number of groups covering blocksCount blocks.
func GroupCountFor(blocksCount, firstDataBlock uint64, blocksPerGroup uint32) uint32 {
	if blocksCount <= firstDataBlock || blocksPerGroup == 0 {
		return 0
	}

	return uint32(utils.DivCeil(blocksCount-firstDataBlock, uint64(blocksPerGroup)))
}

// HasSuper returns true if the group carries a superblock copy.
func (g *Geometry) HasSuper(group uint32) bool {
	if group == 0 {
		return true
	}

	if g.Features.SparseSuper2 {
		return group == g.BackupGroups[0] || group == g.BackupGroups[1]
	}

	if group <= 1 || !g.Features.SparseSuper {
		return true
	}

	if group&1 == 0 {
		return false
	}

	return isPowerOf(group, 3) || isPowerOf(group, 5) || isPowerOf(group, 7)
}

func isPowerOf(n, base uint32) bool {
	for {
		if n < base {
			return false
		}

		if n == base {
			return true
		}

		if n%base != 0 {
			return false
		}

		n /= base
	}
}

// Placement is the location of the superblock and descriptor copies of a group.
//
// Zero means the structure is absent; group 0 on a filesystem
// with the first data block 0 has its superblock at block 0.
type Placement struct {
	Super   uint64
	OldDesc uint64
	NewDesc uint64
}

func (g *Geometry) groupBlock(group uint32) uint64 {
	blk := g.GroupFirstBlock(group)

	// 1k blocks with bigalloc leave block 0 unused
	if blk == 0 && g.BlockSize == 1024 {
		blk = 1
	}

	return blk
}

// Placement returns the superblock and descriptor locations of the group.
func (g *Geometry) Placement(group uint32) Placement {
	var p Placement

	groupBlock := g.groupBlock(group)
	hasSuper := g.HasSuper(group)

	if hasSuper {
		p.Super = groupBlock
	}

	perBlock := g.DescPerBlock()
	metaGroup := group / perBlock

	if !g.Features.MetaBG || metaGroup < g.FirstMetaBG {
		if hasSuper {
			p.OldDesc = groupBlock + 1
		}

		return p
	}

	if idx := group % perBlock; idx == 0 || idx == 1 || idx == perBlock-1 {
		p.NewDesc = groupBlock

		if hasSuper {
			p.NewDesc++
		}
	}

	return p
}

// DescriptorBlock returns the location of descriptor table block i,
// given the block of the superblock the filesystem was opened with.
func (g *Geometry) DescriptorBlock(superBlock uint64, i uint32) uint64 {
	var adjust uint64

	if i == 0 && g.BlockSize == 1024 && g.ClusterRatio > 1 {
		adjust = 1
	}

	if !g.Features.MetaBG || i < g.FirstMetaBG {
		return superBlock + uint64(i) + 1 + adjust
	}

	group := g.DescPerBlock() * i
	blk := g.GroupFirstBlock(group)

	var hasSuper uint64

	if g.HasSuper(group) {
		hasSuper = 1
	}

	// opened from a backup: use the copy in the second group of the meta group
	if superBlock != g.FirstDataBlock && blk+hasSuper+uint64(g.BlocksPerGroup) < g.BlocksCount {
		blk += uint64(g.BlocksPerGroup)

		hasSuper = 0
		if g.HasSuper(group + 1) {
			hasSuper = 1
		}
	}

	return blk + hasSuper + adjust
}
