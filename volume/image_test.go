// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume_test

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/internal/extstructs"
	"github.com/siderolabs/go-extlayout/internal/utils"
	"github.com/siderolabs/go-extlayout/layout"
)

// The test image: 1k blocks, 4 groups of 256 blocks (the last one is 255 blocks long),
// 32 inodes of 128 bytes per group, sparse_super, 2 reserved GDT blocks.
const (
	testBlockSize   = 1024
	testBlocks      = 1024
	testBPG         = 256
	testIPG         = 32
	testInodeSize   = 128
	testGroups      = 4
	testReservedGDT = 2
	testDescSize    = 32

	testJournalLeaf  = 299
	testJournalBlock = 300
	testJournalLen   = 4
	testBadIndirect  = 900
)

var (
	testUUID           = uuid.MustParse("6f0c3fb4-5c3e-4d7a-9a55-2f1d1b0f6c01")
	testBadBlocks      = []uint32{450, 950, 1000}
	testJournalMagic   = []byte{0xc0, 0x3b, 0x39, 0x98}
	testJournalBlockV2 = []byte{0, 0, 0, 4}
)

type imageSpec struct {
	label        []byte
	uninitGroup  int
	groupCsum    bool
	metadataCsum bool
	badBlocks    bool
	journal      bool
}

type groupLayout struct {
	first       uint64
	super       uint64
	gdt         uint64
	blockBitmap uint64
	inodeBitmap uint64
	inodeTable  uint64
}

const testInodeTableBlocks = testIPG * testInodeSize / testBlockSize

func testGroupLayout(group int) groupLayout {
	first := uint64(1 + testBPG*group)

	if group == 2 {
		return groupLayout{
			first:       first,
			blockBitmap: first,
			inodeBitmap: first + 1,
			inodeTable:  first + 2,
		}
	}

	return groupLayout{
		first:       first,
		super:       first,
		gdt:         first + 1,
		blockBitmap: first + 2 + testReservedGDT,
		inodeBitmap: first + 3 + testReservedGDT,
		inodeTable:  first + 4 + testReservedGDT,
	}
}

type testImage struct {
	buf []byte

	// expected bitmaps, one per group
	blockBitmaps []extent.Bitmap
	inodeBitmaps []extent.Bitmap
}

func (img *testImage) block(blk uint64) []byte {
	return img.buf[blk*testBlockSize : (blk+1)*testBlockSize]
}

func (img *testImage) use(blk uint64) {
	group := (blk - 1) / testBPG
	img.blockBitmaps[group].Set((blk - 1) % testBPG)
}

func (img *testImage) inode(ino uint32) extstructs.Inode {
	gl := testGroupLayout(int((ino - 1) / testIPG))
	off := gl.inodeTable*testBlockSize + uint64((ino-1)%testIPG)*testInodeSize

	return extstructs.Inode(img.buf[off : off+testInodeSize])
}

func (img *testImage) superblock(blk uint64) extstructs.SuperBlock {
	if blk == 1 {
		return extstructs.SuperBlock(img.buf[1024:2048])
	}

	return extstructs.SuperBlock(img.block(blk))
}

func testSeed() uint32 {
	return utils.CRC32c(testUUID[:])
}

// descChecksum computes the descriptor checksum over a copy with a zeroed checksum field.
func descChecksum(metadataCsum bool, group uint32, desc []byte) uint16 {
	var groupLE [4]byte

	binary.LittleEndian.PutUint32(groupLE[:], group)

	if metadataCsum {
		zeroed := append([]byte(nil), desc...)
		zeroed[0x1E], zeroed[0x1F] = 0, 0

		crc := utils.CRC32cUpdate(testSeed(), groupLE[:])

		return uint16(utils.CRC32cUpdate(crc, zeroed))
	}

	crc := utils.CRC16(^uint16(0), testUUID[:])
	crc = utils.CRC16(crc, groupLE[:])

	return utils.CRC16(crc, desc[:0x1E])
}

//nolint:gocyclo,cyclop
func buildImage(spec imageSpec) *testImage {
	img := &testImage{
		buf: make([]byte, testBlocks*testBlockSize),
	}

	for range testGroups {
		img.blockBitmaps = append(img.blockBitmaps, extent.NewBitmap(testBPG))
		img.inodeBitmaps = append(img.inodeBitmaps, extent.NewBitmap(testIPG))
	}

	// padding past the end of the last group
	img.blockBitmaps[testGroups-1].Set(testBPG - 1)

	for group := range testGroups {
		gl := testGroupLayout(group)

		if gl.super != 0 {
			for blk := gl.super; blk < gl.gdt+1+testReservedGDT; blk++ {
				img.use(blk)
			}
		}

		img.use(gl.blockBitmap)
		img.use(gl.inodeBitmap)

		for blk := gl.inodeTable; blk < gl.inodeTable+testInodeTableBlocks; blk++ {
			img.use(blk)
		}
	}

	for i := range 11 {
		img.inodeBitmaps[0].Set(uint64(i))
	}

	if spec.badBlocks {
		bad := img.inode(extstructs.EXT2_BAD_INO)

		binary.LittleEndian.PutUint32(bad.Get_i_block()[0:], 1000)
		binary.LittleEndian.PutUint32(bad.Get_i_block()[4:], 450)
		binary.LittleEndian.PutUint32(bad.Get_i_block()[extstructs.EXT2_IND_BLOCK*4:], testBadIndirect)

		ind := img.block(testBadIndirect)
		binary.LittleEndian.PutUint32(ind[0:], 950)
		binary.LittleEndian.PutUint32(ind[4:], 450)
		binary.LittleEndian.PutUint32(ind[8:], 5000)

		img.use(testBadIndirect)

		for _, blk := range testBadBlocks {
			img.use(uint64(blk))
		}
	}

	if spec.journal {
		jinode := img.inode(8)
		jinode.Put_i_flags(extstructs.EXT4_EXTENTS_FL)
		jinode.Put_i_size_lo(testJournalLen * testBlockSize)

		root := extstructs.ExtentHeader(jinode.Get_i_block())
		root.PutHeader(1, 4, 1)
		extstructs.ExtentIdx(root.Entry(0)).Put(0, testJournalLeaf)

		leaf := extstructs.ExtentHeader(img.block(testJournalLeaf))
		leaf.PutHeader(1, (testBlockSize-12)/12, 0)
		extstructs.Extent(leaf.Entry(0)).Put(0, testJournalLen, testJournalBlock)

		jsb := img.block(testJournalBlock)
		copy(jsb[0:], testJournalMagic)
		copy(jsb[4:], testJournalBlockV2)
		binary.BigEndian.PutUint32(jsb[0x0C:], testBlockSize)
		binary.BigEndian.PutUint32(jsb[0x10:], testJournalLen)
		binary.BigEndian.PutUint32(jsb[0x14:], 1)

		img.use(testJournalLeaf)

		for blk := uint64(testJournalBlock); blk < testJournalBlock+testJournalLen; blk++ {
			img.use(blk)
		}
	}

	// descriptor table
	table := make([]byte, testBlockSize)
	csum := spec.groupCsum || spec.metadataCsum || spec.uninitGroup >= 0

	var freeBlocks, freeInodes uint64

	for group := range testGroups {
		gl := testGroupLayout(group)
		desc := extstructs.GroupDesc(table[group*testDescSize : (group+1)*testDescSize])

		desc.Put_bg_block_bitmap_lo(uint32(gl.blockBitmap))
		desc.Put_bg_inode_bitmap_lo(uint32(gl.inodeBitmap))
		desc.Put_bg_inode_table_lo(uint32(gl.inodeTable))

		groupBlocks := uint64(testBPG)
		if group == testGroups-1 {
			groupBlocks = testBlocks - gl.first
		}

		free := groupBlocks - uint64(countUsed(img.blockBitmaps[group], groupBlocks))
		freeIno := testIPG - uint64(countUsed(img.inodeBitmaps[group], testIPG))

		freeBlocks += free
		freeInodes += freeIno

		desc.Put_bg_free_blocks_count_lo(uint16(free))
		desc.Put_bg_free_inodes_count_lo(uint16(freeIno))

		if group == 0 {
			desc.Put_bg_used_dirs_count_lo(2)
		}

		if csum {
			var flags uint16 = layout.FlagInodeZeroed

			desc.Put_bg_itable_unused_lo(uint16(freeIno))

			if group == spec.uninitGroup {
				flags |= layout.FlagBlockUninit | layout.FlagInodeUninit
			}

			desc.Put_bg_flags(flags)
		}

		blockBitmap := img.block(gl.blockBitmap)
		inodeBitmap := img.block(gl.inodeBitmap)

		if group == spec.uninitGroup {
			// garbage which must not be read
			for i := range blockBitmap {
				blockBitmap[i] = 0xff
				inodeBitmap[i] = 0xff
			}
		} else {
			copy(blockBitmap, img.blockBitmaps[group])
			copy(inodeBitmap, img.inodeBitmaps[group])
		}

		if spec.metadataCsum {
			desc.Put_bg_block_bitmap_csum_lo(uint16(utils.CRC32cUpdate(testSeed(), blockBitmap[:testBPG/8])))
			desc.Put_bg_inode_bitmap_csum_lo(uint16(utils.CRC32cUpdate(testSeed(), inodeBitmap[:testIPG/8])))
		}

		if csum {
			desc.Put_bg_checksum(descChecksum(spec.metadataCsum, uint32(group), desc))
		}
	}

	if spec.uninitGroup >= 0 {
		gl := testGroupLayout(spec.uninitGroup)

		img.blockBitmaps[spec.uninitGroup] = extent.NewBitmap(testBPG)
		img.inodeBitmaps[spec.uninitGroup] = extent.NewBitmap(testIPG)

		img.use(gl.blockBitmap)
		img.use(gl.inodeBitmap)

		for blk := gl.inodeTable; blk < gl.inodeTable+testInodeTableBlocks; blk++ {
			img.use(blk)
		}
	}

	// superblock and its backups
	for group := range testGroups {
		gl := testGroupLayout(group)
		if gl.super == 0 {
			continue
		}

		copy(img.block(gl.gdt), table)

		sb := img.superblock(gl.super)

		sb.Put_s_inodes_count(testIPG * testGroups)
		sb.Put_s_blocks_count_lo(testBlocks)
		sb.Put_s_r_blocks_count_lo(51)
		sb.Put_s_free_blocks_count_lo(uint32(freeBlocks))
		sb.Put_s_free_inodes_count(uint32(freeInodes))
		sb.Put_s_first_data_block(1)
		sb.Put_s_blocks_per_group(testBPG)
		sb.Put_s_clusters_per_group(testBPG)
		sb.Put_s_inodes_per_group(testIPG)
		sb.Put_s_magic(extstructs.EXT2_SUPER_MAGIC)
		sb.Put_s_state(1)
		sb.Put_s_errors(1)
		sb.Put_s_rev_level(1)
		sb.Put_s_first_ino(11)
		sb.Put_s_inode_size(testInodeSize)
		sb.Put_s_block_group_nr(uint16(group))
		sb.Put_s_uuid(testUUID[:])
		sb.Put_s_volume_name(spec.label)
		sb.Put_s_reserved_gdt_blocks(testReservedGDT)

		incompat := uint32(layout.EXT2_FEATURE_INCOMPAT_FILETYPE)
		roCompat := uint32(layout.EXT2_FEATURE_RO_COMPAT_SPARSE_SUPER)

		switch {
		case spec.metadataCsum:
			roCompat |= layout.EXT4_FEATURE_RO_COMPAT_METADATA_CSUM

			sb.Put_s_checksum_type(extstructs.EXT4_CRC32C_CHKSUM)
		case csum:
			roCompat |= layout.EXT4_FEATURE_RO_COMPAT_GDT_CSUM
		}

		if spec.journal {
			sb.Put_s_feature_compat(layout.EXT3_FEATURE_COMPAT_HAS_JOURNAL)
			sb.Put_s_journal_inum(8)

			incompat |= layout.EXT4_FEATURE_INCOMPAT_EXTENTS
		}

		sb.Put_s_feature_incompat(incompat)
		sb.Put_s_feature_ro_compat(roCompat)

		if spec.metadataCsum {
			sb.Put_s_checksum(sb.CalculateChecksum())
		}
	}

	return img
}

func countUsed(bitmap extent.Bitmap, num uint64) int {
	used := 0

	for i := range num {
		if bitmap.InUse(i) {
			used++
		}
	}

	return used
}

// buildJournalDevice returns an external journal device image.
func buildJournalDevice() []byte {
	buf := make([]byte, 64*testBlockSize)

	sb := extstructs.SuperBlock(buf[1024:2048])
	sb.Put_s_blocks_count_lo(64)
	sb.Put_s_first_data_block(1)
	sb.Put_s_blocks_per_group(8192)
	sb.Put_s_clusters_per_group(8192)
	sb.Put_s_magic(extstructs.EXT2_SUPER_MAGIC)
	sb.Put_s_rev_level(1)
	sb.Put_s_inode_size(256)
	sb.Put_s_uuid(testUUID[:])
	sb.Put_s_feature_incompat(layout.EXT3_FEATURE_INCOMPAT_JOURNAL_DEV)

	jsb := buf[2*testBlockSize:]
	copy(jsb[0:], testJournalMagic)
	copy(jsb[4:], testJournalBlockV2)
	binary.BigEndian.PutUint32(jsb[0x0C:], testBlockSize)
	binary.BigEndian.PutUint32(jsb[0x10:], 64)
	binary.BigEndian.PutUint32(jsb[0x14:], 3)

	return buf
}
