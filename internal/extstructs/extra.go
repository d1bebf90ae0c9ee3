// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package extstructs

import (
	"encoding/binary"

	"github.com/siderolabs/go-extlayout/internal/utils"
)

// SuperBlock is the ext superblock.
type SuperBlock []byte

// GroupDesc is a group descriptor, 32 bytes or s_desc_size with 64bit.
type GroupDesc []byte

// Inode is an on-disk inode, at least EXT2_GOOD_OLD_INODE_SIZE bytes.
type Inode []byte

// On-disk constants.
//
//nolint:stylecheck,revive
const (
	EXT2_SUPER_MAGIC         = 0xEF53
	EXT2_MIN_BLOCK_LOG_SIZE  = 10
	EXT2_MAX_BLOCK_LOG_SIZE  = 16
	EXT2_GOOD_OLD_REV        = 0
	EXT2_GOOD_OLD_INODE_SIZE = 128
	EXT2_GOOD_OLD_FIRST_INO  = 11
	EXT2_MIN_DESC_SIZE       = 32
	EXT2_MIN_DESC_SIZE_64BIT = 64
	EXT2_BAD_INO             = 1
	EXT2_NDIR_BLOCKS         = 12
	EXT2_IND_BLOCK           = 12
	EXT2_DIND_BLOCK          = 13
	EXT2_TIND_BLOCK          = 14
	EXT4_EXTENTS_FL          = 0x80000
	EXT4_CRC32C_CHKSUM       = 1

	EXT4_BG_BLOCK_BITMAP_CSUM_HI_END = 0x3A
	EXT4_BG_INODE_BITMAP_CSUM_HI_END = 0x3C

	incompat64Bit     = 0x0080
	incompatCsumSeed  = 0x2000
	roCompatBigalloc  = 0x0200
	superChecksumOffs = 0x3FC
)

// BlockSize returns the filesystem block size, 0 if the size is out of range.
func (s SuperBlock) BlockSize() uint32 {
	if s.Get_s_log_block_size() > EXT2_MAX_BLOCK_LOG_SIZE-EXT2_MIN_BLOCK_LOG_SIZE {
		return 0
	}

	return 1024 << s.Get_s_log_block_size()
}

// ClusterRatio returns the number of blocks per allocation cluster.
func (s SuperBlock) ClusterRatio() uint32 {
	if s.Get_s_feature_ro_compat()&roCompatBigalloc == 0 {
		return 1
	}

	logCluster, logBlock := s.Get_s_log_cluster_size(), s.Get_s_log_block_size()
	if logCluster < logBlock || logCluster-logBlock >= 32 {
		return 0
	}

	return 1 << (logCluster - logBlock)
}

func (s SuperBlock) is64Bit() bool {
	return s.Get_s_feature_incompat()&incompat64Bit != 0
}

func (s SuperBlock) split(lo, hi uint32) uint64 {
	if !s.is64Bit() {
		return uint64(lo)
	}

	return uint64(hi)<<32 | uint64(lo)
}

// BlocksCount returns the total number of blocks.
func (s SuperBlock) BlocksCount() uint64 {
	return s.split(s.Get_s_blocks_count_lo(), s.Get_s_blocks_count_hi())
}

// ReservedBlocksCount returns the number of blocks reserved for the superuser.
func (s SuperBlock) ReservedBlocksCount() uint64 {
	return s.split(s.Get_s_r_blocks_count_lo(), s.Get_s_r_blocks_count_hi())
}

// FreeBlocksCount returns the number of free blocks.
func (s SuperBlock) FreeBlocksCount() uint64 {
	return s.split(s.Get_s_free_blocks_count_lo(), s.Get_s_free_blocks_hi())
}

// FilesystemSize returns the size of the filesystem in bytes.
func (s SuperBlock) FilesystemSize() uint64 {
	return s.BlocksCount() * uint64(s.BlockSize())
}

// InodeSize returns the on-disk inode size.
func (s SuperBlock) InodeSize() uint32 {
	if s.Get_s_rev_level() == EXT2_GOOD_OLD_REV {
		return EXT2_GOOD_OLD_INODE_SIZE
	}

	return uint32(s.Get_s_inode_size())
}

// FirstInode returns the first non-reserved inode.
func (s SuperBlock) FirstInode() uint32 {
	if s.Get_s_rev_level() == EXT2_GOOD_OLD_REV {
		return EXT2_GOOD_OLD_FIRST_INO
	}

	return s.Get_s_first_ino()
}

// DescSize returns the group descriptor size.
func (s SuperBlock) DescSize() uint32 {
	if !s.is64Bit() {
		return EXT2_MIN_DESC_SIZE
	}

	return uint32(s.Get_s_desc_size())
}

// ChecksumSeed returns the seed of metadata checksums.
func (s SuperBlock) ChecksumSeed() uint32 {
	if s.Get_s_feature_incompat()&incompatCsumSeed != 0 {
		return s.Get_s_checksum_seed()
	}

	return utils.CRC32c(s.Get_s_uuid())
}

// CalculateChecksum returns the crc32c of the superblock contents.
func (s SuperBlock) CalculateChecksum() uint32 {
	return utils.CRC32c(s[:superChecksumOffs])
}

// BackupGroups returns the sparse_super2 backup groups.
func (s SuperBlock) BackupGroups() [2]uint32 {
	bgs := s.Get_s_backup_bgs()

	return [2]uint32{
		binary.LittleEndian.Uint32(bgs[0:4]),
		binary.LittleEndian.Uint32(bgs[4:8]),
	}
}

func (g GroupDesc) split(lo uint32, hiOff int) uint64 {
	if len(g) < EXT2_MIN_DESC_SIZE_64BIT {
		return uint64(lo)
	}

	return uint64(g.u32(hiOff))<<32 | uint64(lo)
}

func (g GroupDesc) split16(lo uint16, hiOff int) uint32 {
	if len(g) < EXT2_MIN_DESC_SIZE_64BIT {
		return uint32(lo)
	}

	return uint32(g.u16(hiOff))<<16 | uint32(lo)
}

func (g GroupDesc) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(g[off : off+4])
}

func (g GroupDesc) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(g[off : off+2])
}

// BlockBitmap returns the location of the block bitmap.
func (g GroupDesc) BlockBitmap() uint64 {
	return g.split(g.Get_bg_block_bitmap_lo(), 0x20)
}

// InodeBitmap returns the location of the inode bitmap.
func (g GroupDesc) InodeBitmap() uint64 {
	return g.split(g.Get_bg_inode_bitmap_lo(), 0x24)
}

// InodeTable returns the location of the inode table.
func (g GroupDesc) InodeTable() uint64 {
	return g.split(g.Get_bg_inode_table_lo(), 0x28)
}

// FreeBlocksCount returns the number of free blocks (clusters) in the group.
func (g GroupDesc) FreeBlocksCount() uint32 {
	return g.split16(g.Get_bg_free_blocks_count_lo(), 0x2C)
}

// FreeInodesCount returns the number of free inodes in the group.
func (g GroupDesc) FreeInodesCount() uint32 {
	return g.split16(g.Get_bg_free_inodes_count_lo(), 0x2E)
}

// UsedDirsCount returns the number of directories in the group.
func (g GroupDesc) UsedDirsCount() uint32 {
	return g.split16(g.Get_bg_used_dirs_count_lo(), 0x30)
}

// ItableUnused returns the number of never used inodes in the group.
func (g GroupDesc) ItableUnused() uint32 {
	return g.split16(g.Get_bg_itable_unused_lo(), 0x32)
}

// BlockBitmapChecksum returns the stored block bitmap checksum.
func (g GroupDesc) BlockBitmapChecksum() uint32 {
	if len(g) < EXT4_BG_BLOCK_BITMAP_CSUM_HI_END {
		return uint32(g.Get_bg_block_bitmap_csum_lo())
	}

	return uint32(g.Get_bg_block_bitmap_csum_hi())<<16 | uint32(g.Get_bg_block_bitmap_csum_lo())
}

// InodeBitmapChecksum returns the stored inode bitmap checksum.
func (g GroupDesc) InodeBitmapChecksum() uint32 {
	if len(g) < EXT4_BG_INODE_BITMAP_CSUM_HI_END {
		return uint32(g.Get_bg_inode_bitmap_csum_lo())
	}

	return uint32(g.Get_bg_inode_bitmap_csum_hi())<<16 | uint32(g.Get_bg_inode_bitmap_csum_lo())
}

// UsesExtents returns true if the inode maps its blocks with an extent tree.
func (i Inode) UsesExtents() bool {
	return i.Get_i_flags()&EXT4_EXTENTS_FL != 0
}

// Size returns the file size.
func (i Inode) Size() uint64 {
	return uint64(i.Get_i_size_high())<<32 | uint64(i.Get_i_size_lo())
}

// Block returns the n-th entry of i_block.
func (i Inode) Block(n int) uint32 {
	return binary.LittleEndian.Uint32(i.Get_i_block()[n*4 : n*4+4])
}
