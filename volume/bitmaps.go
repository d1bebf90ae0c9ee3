// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/internal/extstructs"
	"github.com/siderolabs/go-extlayout/internal/ioutil"
	"github.com/siderolabs/go-extlayout/layout"
)

// LoadBitmaps reads the block and inode bitmaps of all groups.
//
// Checksum mismatches don't fail the load, they are reported in the status.
// If any bitmap can't be read, no bitmap is loaded and the returned error
// combines the failures of all groups.
func (v *Volume) LoadBitmaps() (layout.BitmapStatus, error) {
	if v.bitmaps.Blocks {
		return v.bitmaps, nil
	}

	g := &v.geometry

	blockBytes := uint64(g.ClustersPerGroup / 8)
	inodeBytes := uint64(g.InodesPerGroup / 8)

	blocks := extent.NewBitmap(uint64(g.ClustersPerGroup) * uint64(g.GroupCount))
	inodes := extent.NewBitmap(uint64(g.InodesPerGroup) * uint64(g.GroupCount))

	var (
		errs           error
		checksumErrors bool
	)

	for group := range g.GroupCount {
		desc := &v.descs[group]
		n := uint64(group)

		blockDst := blocks[n*blockBytes : (n+1)*blockBytes]
		inodeDst := inodes[n*inodeBytes : (n+1)*inodeBytes]

		if !v.uninitialized(desc, layout.FlagBlockUninit) {
			mismatch, err := v.readBitmap(blockDst, desc.BlockBitmap, desc.BlockBitmapChecksum, extstructs.EXT4_BG_BLOCK_BITMAP_CSUM_HI_END)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("failed to read block bitmap of group %d: %w", group, err))
			}

			checksumErrors = checksumErrors || mismatch
		}

		if !v.uninitialized(desc, layout.FlagInodeUninit) {
			mismatch, err := v.readBitmap(inodeDst, desc.InodeBitmap, desc.InodeBitmapChecksum, extstructs.EXT4_BG_INODE_BITMAP_CSUM_HI_END)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("failed to read inode bitmap of group %d: %w", group, err))
			}

			checksumErrors = checksumErrors || mismatch
		}
	}

	if errs != nil {
		v.logger.Warn("failed to load bitmaps", zap.Error(errs))

		return layout.BitmapStatus{}, errs
	}

	v.blockBase = g.FirstDataBlock / uint64(g.ClusterRatio)

	for group := range g.GroupCount {
		if v.descs[group].Has(layout.FlagBlockUninit) {
			v.markGroupMetadata(blocks, group)
		}
	}

	v.blockBitmap, v.inodeBitmap = blocks, inodes
	v.bitmaps = layout.BitmapStatus{
		Blocks:         true,
		Inodes:         true,
		ChecksumErrors: checksumErrors,
	}

	v.logger.Debug("loaded bitmaps",
		zap.String("block_bitmap", humanize.IBytes(uint64(len(blocks)))),
		zap.String("inode_bitmap", humanize.IBytes(uint64(len(inodes)))),
		zap.Bool("checksum_errors", checksumErrors),
	)

	return v.bitmaps, nil
}

// uninitialized returns true if the bitmap was never written and reads as all free.
func (v *Volume) uninitialized(desc *layout.Descriptor, flag uint16) bool {
	return v.geometry.Features.GroupDescCsum && desc.Has(flag) && desc.Checksum == desc.ExpectedChecksum
}

// readBitmap fills dst from the bitmap block, a zero block leaves dst free.
func (v *Volume) readBitmap(dst []byte, blk uint64, stored, hiEnd uint32) (mismatch bool, err error) {
	if blk == 0 {
		return false, nil
	}

	if blk < v.geometry.FirstDataBlock || blk >= v.geometry.BlocksCount {
		return false, fmt.Errorf("%w: block %d", ErrOutOfRange, blk)
	}

	buf, err := ioutil.ReadBlocks(v.r, v.geometry.BlockSize, blk, 1)
	if err != nil {
		return false, err
	}

	copy(dst, buf)

	if v.geometry.Features.MetadataCsum && !v.bitmapChecksumMatches(dst, stored, hiEnd) {
		v.logger.Warn("bitmap checksum mismatch", zap.Uint64("block", blk), zap.Uint32("stored", stored))

		return true, nil
	}

	return false, nil
}

// markGroupMetadata marks the static metadata of a group which has no block bitmap on disk.
func (v *Volume) markGroupMetadata(bitmap extent.Bitmap, group uint32) {
	g := &v.geometry
	ratio := uint64(g.ClusterRatio)

	mark := func(blk, count uint64) {
		for b := blk; b < blk+count && b < g.BlocksCount; b++ {
			idx := b/ratio - v.blockBase
			if b/ratio >= v.blockBase && idx < bitmap.Len() {
				bitmap.Set(idx)
			}
		}
	}

	placement := g.Placement(group)

	if placement.Super != 0 || group == 0 {
		mark(placement.Super, 1)
	}

	if group == 0 && g.BlockSize == 1024 && g.ClusterRatio > 1 {
		mark(0, 1)
	}

	if placement.OldDesc != 0 {
		count := uint64(g.OldDescBlocks())
		if !g.Features.MetaBG {
			count += uint64(g.ReservedGDTBlocks)
		}

		mark(placement.OldDesc, count)
	}

	if placement.NewDesc != 0 {
		mark(placement.NewDesc, 1)
	}

	desc := &v.descs[group]

	if desc.InodeTable != 0 {
		mark(desc.InodeTable, g.InodeBlocksPerGroup())
	}

	if desc.BlockBitmap != 0 {
		mark(desc.BlockBitmap, 1)
	}

	if desc.InodeBitmap != 0 {
		mark(desc.InodeBitmap, 1)
	}
}

// BlockBitmapRange returns count bits of the block bitmap starting at cluster start.
func (v *Volume) BlockBitmapRange(start, count uint64) ([]byte, error) {
	return bitmapRange(v.blockBitmap, v.blockBase, start, count)
}

// InodeBitmapRange returns count bits of the inode bitmap starting at inode start.
func (v *Volume) InodeBitmapRange(start, count uint64) ([]byte, error) {
	return bitmapRange(v.inodeBitmap, 1, start, count)
}

func bitmapRange(bitmap extent.Bitmap, base, start, count uint64) ([]byte, error) {
	if bitmap == nil {
		return nil, ErrBitmapsNotLoaded
	}

	if start < base || start-base+count > bitmap.Len() {
		return nil, fmt.Errorf("%w: %d+%d", ErrOutOfRange, start, count)
	}

	off := start - base
	out := extent.NewBitmap(count)

	if off%8 == 0 {
		copy(out, bitmap[off/8:])

		return out, nil
	}

	for i := range count {
		if bitmap.InUse(off + i) {
			out.Set(i)
		}
	}

	return out, nil
}
