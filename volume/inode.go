// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/siderolabs/go-extlayout/internal/extstructs"
	"github.com/siderolabs/go-extlayout/internal/ioutil"
	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

// Errors returned while reading inodes.
var (
	ErrInvalidInode   = errors.New("illegal inode number")
	ErrBadExtentTree  = errors.New("corrupt extent tree")
	ErrBadIndirect    = errors.New("illegal indirect block found")
	ErrNoJournal      = errors.New("filesystem has no journal")
	ErrJournalNoBlock = errors.New("journal inode has no data blocks")
)

// maxExtentDepth bounds the extent tree walk.
const maxExtentDepth = 5

var errStopWalk = errors.New("stop walk")

// blockFunc is called for every mapped block of an inode in ascending logical order.
type blockFunc func(logical, physical uint64) error

func (v *Volume) readInode(ino uint32) (extstructs.Inode, error) {
	g := &v.geometry

	if ino == 0 || uint64(ino) > uint64(g.InodesPerGroup)*uint64(g.GroupCount) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInode, ino)
	}

	group, index := (ino-1)/g.InodesPerGroup, (ino-1)%g.InodesPerGroup

	table := v.descs[group].InodeTable
	if table == 0 || table >= g.BlocksCount {
		return nil, fmt.Errorf("%w: inode table of group %d at %d", ErrInvalidInode, group, table)
	}

	buf := make([]byte, max(g.InodeSize, extstructs.EXT2_GOOD_OLD_INODE_SIZE))
	offset := int64(table)*int64(g.BlockSize) + int64(index)*int64(g.InodeSize)

	if err := ioutil.ReadFullAt(v.r, buf, offset); err != nil {
		return nil, fmt.Errorf("failed to read inode %d: %w", ino, err)
	}

	return extstructs.Inode(buf), nil
}

// walkBlocks calls fn for each data block of the inode.
func (v *Volume) walkBlocks(inode extstructs.Inode, fn blockFunc) error {
	if inode.UsesExtents() {
		return v.walkExtentNode(extstructs.ExtentHeader(inode.Get_i_block()), maxExtentDepth, fn)
	}

	for i := range extstructs.EXT2_NDIR_BLOCKS {
		if blk := inode.Block(i); blk != 0 {
			if err := fn(uint64(i), uint64(blk)); err != nil {
				return err
			}
		}
	}

	perBlock := uint64(v.geometry.BlockSize / 4)
	logical := uint64(extstructs.EXT2_NDIR_BLOCKS)
	span := uint64(1)

	for level, slot := range []int{extstructs.EXT2_IND_BLOCK, extstructs.EXT2_DIND_BLOCK, extstructs.EXT2_TIND_BLOCK} {
		span *= perBlock

		if blk := inode.Block(slot); blk != 0 {
			if err := v.walkIndirect(uint64(blk), level+1, logical, fn); err != nil {
				return err
			}
		}

		logical += span
	}

	return nil
}

func (v *Volume) walkIndirect(blk uint64, level int, logical uint64, fn blockFunc) error {
	if blk < v.geometry.FirstDataBlock || blk >= v.geometry.BlocksCount {
		return fmt.Errorf("%w: block %d", ErrBadIndirect, blk)
	}

	buf, err := ioutil.ReadBlocks(v.r, v.geometry.BlockSize, blk, 1)
	if err != nil {
		return err
	}

	perBlock := uint64(v.geometry.BlockSize / 4)

	span := uint64(1)
	for range level - 1 {
		span *= perBlock
	}

	for i := range perBlock {
		child := uint64(binary.LittleEndian.Uint32(buf[i*4:]))
		if child == 0 {
			continue
		}

		if level == 1 {
			err = fn(logical+i, child)
		} else {
			err = v.walkIndirect(child, level-1, logical+i*span, fn)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (v *Volume) walkExtentNode(node extstructs.ExtentHeader, budget int, fn blockFunc) error {
	if node.Get_eh_magic() != extstructs.EXT4_EXT_MAGIC {
		return fmt.Errorf("%w: magic 0x%04x", ErrBadExtentTree, node.Get_eh_magic())
	}

	entries := int(node.Get_eh_entries())
	if (entries+1)*extstructs.EXT4_EXT_ENTRY_SIZE > len(node) {
		return fmt.Errorf("%w: %d entries in %d bytes", ErrBadExtentTree, entries, len(node))
	}

	depth := node.Get_eh_depth()
	if depth > 0 && budget == 0 {
		return fmt.Errorf("%w: tree too deep", ErrBadExtentTree)
	}

	for i := range entries {
		if depth == 0 {
			ext := extstructs.Extent(node.Entry(i))

			for j := range uint64(ext.Len()) {
				if err := fn(uint64(ext.FileBlock())+j, ext.PhysicalBlock()+j); err != nil {
					return err
				}
			}

			continue
		}

		idx := extstructs.ExtentIdx(node.Entry(i))

		if leaf := idx.PhysicalBlock(); leaf < v.geometry.FirstDataBlock || leaf >= v.geometry.BlocksCount {
			return fmt.Errorf("%w: node at block %d", ErrBadExtentTree, leaf)
		}

		buf, err := ioutil.ReadBlocks(v.r, v.geometry.BlockSize, idx.PhysicalBlock(), 1)
		if err != nil {
			return err
		}

		if err = v.walkExtentNode(extstructs.ExtentHeader(buf), budget-1, fn); err != nil {
			return err
		}
	}

	return nil
}

// BadBlocks returns the sorted list of blocks recorded in the bad blocks inode.
func (v *Volume) BadBlocks() ([]uint32, error) {
	inode, err := v.readInode(extstructs.EXT2_BAD_INO)
	if err != nil {
		return nil, err
	}

	var blocks []uint32

	if err = v.walkBlocks(inode, func(_, physical uint64) error {
		// illegal entries are ignored
		if physical >= v.geometry.FirstDataBlock && physical < v.geometry.BlocksCount {
			blocks = append(blocks, uint32(physical))
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to read bad blocks inode: %w", err)
	}

	slices.Sort(blocks)

	return slices.Compact(blocks), nil
}

// JournalSuperblock returns the raw journal superblock.
//
// JournalInline reads the first block of the journal inode, JournalDevice
// reads the block following the superblock of an external journal device.
func (v *Volume) JournalSuperblock(kind layout.JournalKind) ([]byte, error) {
	var blk uint64

	switch kind {
	case layout.JournalDevice:
		blk = v.geometry.FirstDataBlock + 1
	case layout.JournalInline:
		var err error

		if blk, err = v.journalBlock(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown journal kind %d", kind)
	}

	buf := make([]byte, journal.SUPERBLOCK_SIZE)

	if err := ioutil.ReadFullAt(v.r, buf, int64(blk)*int64(v.geometry.BlockSize)); err != nil {
		return nil, fmt.Errorf("failed to read journal superblock: %w", err)
	}

	return buf, nil
}

func (v *Volume) journalBlock() (uint64, error) {
	ino := v.geometry.Identity.JournalInode
	if ino == 0 {
		return 0, ErrNoJournal
	}

	inode, err := v.readInode(ino)
	if err != nil {
		return 0, fmt.Errorf("failed to read journal inode: %w", err)
	}

	var blk uint64

	err = v.walkBlocks(inode, func(logical, physical uint64) error {
		if logical == 0 {
			blk = physical
		}

		return errStopWalk
	})

	switch {
	case err != nil && !errors.Is(err, errStopWalk):
		return 0, fmt.Errorf("failed to map journal inode: %w", err)
	case blk == 0:
		return 0, ErrJournalNoBlock
	}

	return blk, nil
}
