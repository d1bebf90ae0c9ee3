// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report_test

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

var errRange = errors.New("range out of bounds")

// bitmaps serves ranges of in-memory bitmaps, the range start must be byte-aligned.
type bitmaps struct {
	blocks    extent.Bitmap
	inodes    extent.Bitmap
	blockBase uint64

	blockErr error
	inodeErr error
}

func slice(bitmap extent.Bitmap, base, start, count uint64) ([]byte, error) {
	if start < base || (start-base)%8 != 0 || (start-base+count)/8 > uint64(len(bitmap)) {
		return nil, fmt.Errorf("%w: %d+%d", errRange, start, count)
	}

	off := (start - base) / 8

	return bitmap[off : off+count/8], nil
}

func (b *bitmaps) BlockBitmapRange(start, count uint64) ([]byte, error) {
	if b.blockErr != nil {
		return nil, b.blockErr
	}

	return slice(b.blocks, b.blockBase, start, count)
}

func (b *bitmaps) InodeBitmapRange(start, count uint64) ([]byte, error) {
	if b.inodeErr != nil {
		return nil, b.inodeErr
	}

	return slice(b.inodes, 1, start, count)
}

type fakeSource struct {
	bitmaps

	geometry layout.Geometry
	descs    []layout.Descriptor
	descErrs map[uint32]error

	status    layout.BitmapStatus
	loadErr   error
	loadCalls int

	badBlocks []uint32
	badErr    error

	journal    []byte
	journalErr error

	checksumErrors bool
}

func (s *fakeSource) Geometry() layout.Geometry {
	return s.geometry
}

func (s *fakeSource) GroupDescriptor(group uint32) (layout.Descriptor, error) {
	if err := s.descErrs[group]; err != nil {
		return layout.Descriptor{}, err
	}

	if int(group) >= len(s.descs) {
		return layout.Descriptor{}, fmt.Errorf("no group %d", group)
	}

	return s.descs[group], nil
}

func (s *fakeSource) LoadBitmaps() (layout.BitmapStatus, error) {
	s.loadCalls++

	return s.status, s.loadErr
}

func (s *fakeSource) BadBlocks() ([]uint32, error) {
	return s.badBlocks, s.badErr
}

func (s *fakeSource) JournalSuperblock(layout.JournalKind) ([]byte, error) {
	return s.journal, s.journalErr
}

func (s *fakeSource) ChecksumErrors() bool {
	return s.checksumErrors
}

// testGeometry is a 1k block filesystem with two groups of 64 blocks.
func testGeometry() layout.Geometry {
	return layout.Geometry{
		BlockSize:        1024,
		ClusterRatio:     1,
		FirstDataBlock:   1,
		BlocksCount:      129,
		BlocksPerGroup:   64,
		ClustersPerGroup: 64,
		InodesPerGroup:   16,
		InodeSize:        128,
		GroupCount:       2,
		DescSize:         32,

		Features: layout.Features{
			SparseSuper: true,
		},
		Identity: layout.Identity{
			UUID:        uuid.MustParse("6b33f586-a183-4383-921d-30da3fef2e1c"),
			Magic:       0xef53,
			Revision:    1,
			State:       1,
			Errors:      1,
			InodesCount: 32,
			FreeBlocks:  59,
			FreeInodes:  5,
			FirstInode:  11,
		},
	}
}

func testDescriptors() []layout.Descriptor {
	return []layout.Descriptor{
		{
			Group:       0,
			BlockBitmap: 3,
			InodeBitmap: 4,
			InodeTable:  5,
			FreeBlocks:  58,
			FreeInodes:  5,
			UsedDirs:    2,
		},
		{
			Group:       1,
			BlockBitmap: 67,
			InodeBitmap: 68,
			InodeTable:  69,
			FreeBlocks:  1,
		},
	}
}

// testBitmaps has blocks 1-6 and 65-128 except 75 in use, inodes 1-11 and 17-32 in use.
func testBitmaps() bitmaps {
	blocks := extent.NewBitmap(128)
	blocks.SetRange(0, 6)
	blocks.SetRange(64, 64)
	blocks.Clear(74)

	inodes := extent.NewBitmap(32)
	inodes.SetRange(0, 11)
	inodes.SetRange(16, 16)

	return bitmaps{
		blocks:    blocks,
		inodes:    inodes,
		blockBase: 1,
	}
}

// testGroupsText is the text report of the groups of newTestSource.
const testGroupsText = "Group 0: (Blocks 1-64)\n" +
	"  Primary superblock at 1, Group descriptors at 2-2\n" +
	"  Block bitmap at 3 (+2)\n" +
	"  Inode bitmap at 4 (+3)\n" +
	"  Inode table at 5-6 (+4)\n" +
	"  58 free blocks, 5 free inodes, 2 directories\n" +
	"  Free blocks: 7-64\n" +
	"  Free inodes: 12-16\n" +
	"Group 1: (Blocks 65-128)\n" +
	"  Backup superblock at 65, Group descriptors at 66-66\n" +
	"  Block bitmap at 67 (+2)\n" +
	"  Inode bitmap at 68 (+3)\n" +
	"  Inode table at 69-70 (+4)\n" +
	"  1 free blocks, 0 free inodes, 0 directories\n" +
	"  Free blocks: 75\n"

func newTestSource() *fakeSource {
	return &fakeSource{
		bitmaps:  testBitmaps(),
		geometry: testGeometry(),
		descs:    testDescriptors(),
		status: layout.BitmapStatus{
			Blocks: true,
			Inodes: true,
		},
		badBlocks: []uint32{},
	}
}

// journalSuperblock builds a v2 journal superblock of 1024 blocks of 1k.
func journalSuperblock() []byte {
	buf := make([]byte, journal.SUPERBLOCK_SIZE)

	binary.BigEndian.PutUint32(buf[0x00:], journal.JBD2_MAGIC_NUMBER)
	binary.BigEndian.PutUint32(buf[0x04:], journal.JBD2_SUPERBLOCK_V2)
	binary.BigEndian.PutUint32(buf[0x0c:], 1024)
	binary.BigEndian.PutUint32(buf[0x10:], 1024)
	binary.BigEndian.PutUint32(buf[0x14:], 1)
	binary.BigEndian.PutUint32(buf[0x18:], 2)
	binary.BigEndian.PutUint32(buf[0x28:], journal.JBD2_FEATURE_INCOMPAT_REVOKE)
	binary.BigEndian.PutUint32(buf[0x40:], 1)

	return buf
}
