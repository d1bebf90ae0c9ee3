// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package volume reads the layout and allocation state of an ext filesystem.
package volume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/internal/extstructs"
	"github.com/siderolabs/go-extlayout/internal/ioutil"
	"github.com/siderolabs/go-extlayout/internal/magic"
	"github.com/siderolabs/go-extlayout/internal/utils"
	"github.com/siderolabs/go-extlayout/layout"
)

// Errors returned when opening a volume.
var (
	ErrBadMagic            = errors.New("bad magic number in superblock")
	ErrUnsupportedFeature  = errors.New("filesystem has unsupported feature(s)")
	ErrUnsupportedRevision = errors.New("filesystem revision too high")
	ErrCorrupted           = errors.New("the ext2 superblock is corrupt")
	ErrUnexpectedBlockSize = errors.New("superblock has an unexpected block size")
	ErrBadDescSize         = errors.New("block group descriptor size incorrect")
)

// Errors returned by the volume accessors.
var (
	ErrOutOfRange       = errors.New("bitmap range out of bounds")
	ErrBitmapsNotLoaded = errors.New("bitmaps are not loaded")
	ErrInvalidGroup     = errors.New("invalid group number")
)

const (
	superblockOffset = 1024
	maxRevision      = 1
	maxDescSize      = 1024
)

var superMagic = magic.Magic{
	Name:   "ext superblock",
	Offset: 0x38,
	Value:  []byte("\123\357"),
}

// Volume is an ext filesystem opened for reading its layout.
//
// Volume is not safe for concurrent use.
type Volume struct {
	r      io.ReaderAt
	closer io.Closer
	logger *zap.Logger

	sb         extstructs.SuperBlock
	superBlock uint64
	geometry   layout.Geometry
	descs      []layout.Descriptor
	csumSeed   uint32

	checksumErrors bool

	bitmaps     layout.BitmapStatus
	blockBitmap extent.Bitmap
	inodeBitmap extent.Bitmap
	blockBase   uint64
}

// Open reads the superblock and the group descriptors of the filesystem.
func Open(r io.ReaderAt, opts ...Option) (*Volume, error) {
	return open(r, applyOptions(opts...))
}

func open(r io.ReaderAt, options Options) (*Volume, error) {
	if options.Superblock == 0 || options.BlockSize != 0 {
		return openAt(r, options, options.Superblock, options.BlockSize)
	}

	var errs error

	for blockSize := uint32(1) << extstructs.EXT2_MIN_BLOCK_LOG_SIZE; blockSize <= 1<<extstructs.EXT2_MAX_BLOCK_LOG_SIZE; blockSize <<= 1 {
		v, err := openAt(r, options, options.Superblock, blockSize)
		if err == nil {
			return v, nil
		}

		options.Logger.Debug("superblock probe failed", zap.Uint64("superblock", options.Superblock), zap.Uint32("block_size", blockSize), zap.Error(err))

		errs = err
	}

	return nil, errs
}

func openAt(r io.ReaderAt, options Options, superblock uint64, blockSize uint32) (*Volume, error) {
	v := &Volume{
		r:      r,
		logger: options.Logger,
	}

	offset := int64(superblockOffset)
	if superblock != 0 {
		offset = int64(superblock) * int64(blockSize)
	}

	buf := make([]byte, extstructs.SUPERBLOCK_SIZE)

	if err := ioutil.ReadFullAt(r, buf, offset); err != nil {
		return nil, fmt.Errorf("failed to read superblock: %w", err)
	}

	if err := superMagic.Check(buf, ErrBadMagic); err != nil {
		return nil, err
	}

	v.sb = extstructs.SuperBlock(buf)

	if err := v.validate(options, superblock, blockSize); err != nil {
		return nil, err
	}

	v.buildGeometry()

	v.superBlock = v.geometry.FirstDataBlock
	if superblock != 0 {
		v.superBlock = superblock
	}

	if v.geometry.Features.MetadataCsum && v.sb.CalculateChecksum() != v.sb.Get_s_checksum() {
		v.logger.Warn("superblock checksum mismatch",
			zap.Uint32("stored", v.sb.Get_s_checksum()),
			zap.Uint32("calculated", v.sb.CalculateChecksum()),
		)

		v.checksumErrors = true
	}

	if !v.geometry.Features.JournalDev {
		if err := v.readDescriptors(superblock > 1); err != nil {
			return nil, err
		}
	}

	v.logger.Debug("opened ext volume",
		zap.Stringer("uuid", v.geometry.Identity.UUID),
		zap.String("size", humanize.IBytes(v.sb.FilesystemSize())),
		zap.Uint32("block_size", v.geometry.BlockSize),
		zap.Uint32("groups", v.geometry.GroupCount),
		zap.Uint64("superblock", v.superBlock),
	)

	return v, nil
}

//nolint:gocyclo,cyclop
func (v *Volume) validate(options Options, superblock uint64, blockSize uint32) error {
	sb := v.sb

	if rev := sb.Get_s_rev_level(); rev > maxRevision {
		return fmt.Errorf("%w: revision %d", ErrUnsupportedRevision, rev)
	}

	if !options.Force {
		if unsupported := sb.Get_s_feature_incompat() &^ layout.SupportedIncompat; unsupported != 0 {
			return fmt.Errorf("%w: incompat 0x%x", ErrUnsupportedFeature, unsupported)
		}
	}

	if sb.BlockSize() == 0 {
		return fmt.Errorf("%w: block size log %d", ErrCorrupted, sb.Get_s_log_block_size())
	}

	if superblock > 1 && sb.BlockSize() != blockSize {
		return fmt.Errorf("%w: %d != %d", ErrUnexpectedBlockSize, sb.BlockSize(), blockSize)
	}

	ratio := sb.ClusterRatio()
	if ratio == 0 {
		return fmt.Errorf("%w: cluster size log %d", ErrCorrupted, sb.Get_s_log_cluster_size())
	}

	if inodeSize := sb.InodeSize(); inodeSize < extstructs.EXT2_GOOD_OLD_INODE_SIZE || inodeSize > sb.BlockSize() || !utils.IsPowerOf2(inodeSize) {
		return fmt.Errorf("%w: inode size %d", ErrCorrupted, inodeSize)
	}

	if descSize := sb.DescSize(); sb.Get_s_feature_incompat()&layout.EXT4_FEATURE_INCOMPAT_64BIT != 0 &&
		(descSize < extstructs.EXT2_MIN_DESC_SIZE_64BIT || descSize > maxDescSize || !utils.IsPowerOf2(descSize)) {
		return fmt.Errorf("%w: %d", ErrBadDescSize, descSize)
	}

	// journal devices have no groups
	if sb.Get_s_feature_incompat()&layout.EXT3_FEATURE_INCOMPAT_JOURNAL_DEV != 0 {
		return nil
	}

	bpg, ipg := sb.Get_s_blocks_per_group(), sb.Get_s_inodes_per_group()

	switch {
	case bpg == 0 || ipg == 0:
		return fmt.Errorf("%w: zero blocks or inodes per group", ErrCorrupted)
	case uint64(bpg) > 8*uint64(sb.BlockSize())*uint64(ratio):
		return fmt.Errorf("%w: %d blocks per group", ErrCorrupted, bpg)
	case ratio > 1 && (sb.Get_s_clusters_per_group() == 0 || sb.Get_s_clusters_per_group() > 8*sb.BlockSize()):
		return fmt.Errorf("%w: %d clusters per group", ErrCorrupted, sb.Get_s_clusters_per_group())
	case ipg > 8*sb.BlockSize():
		return fmt.Errorf("%w: %d inodes per group", ErrCorrupted, ipg)
	case uint64(sb.Get_s_first_data_block()) >= sb.BlocksCount():
		return fmt.Errorf("%w: first data block %d", ErrCorrupted, sb.Get_s_first_data_block())
	}

	groups := layout.GroupCountFor(sb.BlocksCount(), uint64(sb.Get_s_first_data_block()), bpg)
	if uint64(groups)*uint64(ipg) != uint64(sb.Get_s_inodes_count()) {
		return fmt.Errorf("%w: %d inodes in %d groups of %d", ErrCorrupted, sb.Get_s_inodes_count(), groups, ipg)
	}

	return nil
}

func (v *Volume) buildGeometry() {
	sb := v.sb
	features := layout.ResolveFeatures(sb.Get_s_feature_compat(), sb.Get_s_feature_incompat(), sb.Get_s_feature_ro_compat())

	ratio := sb.ClusterRatio()
	bpg := sb.Get_s_blocks_per_group()

	cpg := bpg
	if features.Bigalloc {
		cpg = sb.Get_s_clusters_per_group()
	}

	v.geometry = layout.Geometry{
		BlockSize:      sb.BlockSize(),
		ClusterRatio:   ratio,
		FirstDataBlock: uint64(sb.Get_s_first_data_block()),
		BlocksCount:    sb.BlocksCount(),

		BlocksPerGroup:   bpg,
		ClustersPerGroup: cpg,
		InodesPerGroup:   sb.Get_s_inodes_per_group(),
		InodeSize:        sb.InodeSize(),
		GroupCount:       layout.GroupCountFor(sb.BlocksCount(), uint64(sb.Get_s_first_data_block()), bpg),

		ReservedGDTBlocks: uint32(sb.Get_s_reserved_gdt_blocks()),
		FirstMetaBG:       sb.Get_s_first_meta_bg(),
		DescSize:          sb.DescSize(),
		BackupGroups:      sb.BackupGroups(),

		Features: features,
		Identity: layout.Identity{
			Label: decodeLabel(sb.Get_s_volume_name()),
			UUID:  uuid.UUID(sb.Get_s_uuid()),

			Magic:       sb.Get_s_magic(),
			Revision:    sb.Get_s_rev_level(),
			MinorRev:    sb.Get_s_minor_rev_level(),
			State:       sb.Get_s_state(),
			Errors:      sb.Get_s_errors(),
			CreatorOS:   sb.Get_s_creator_os(),
			InodesCount: sb.Get_s_inodes_count(),

			ReservedBlocks: sb.ReservedBlocksCount(),
			FreeBlocks:     sb.FreeBlocksCount(),
			FreeInodes:     sb.Get_s_free_inodes_count(),

			FirstInode:       sb.FirstInode(),
			JournalInode:     sb.Get_s_journal_inum(),
			LogGroupsPerFlex: sb.Get_s_log_groups_per_flex(),

			FeatureCompat:   sb.Get_s_feature_compat(),
			FeatureIncompat: sb.Get_s_feature_incompat(),
			FeatureROCompat: sb.Get_s_feature_ro_compat(),

			ChecksumType: sb.Get_s_checksum_type(),
			Checksum:     sb.Get_s_checksum(),
		},
	}

	if features.JournalDev {
		v.geometry.GroupCount = 0
	}

	if features.MetadataCsum {
		v.csumSeed = sb.ChecksumSeed()
	}
}

// decodeLabel trims the label at the first NUL, labels which are not valid UTF-8 are read as Latin-1.
func decodeLabel(raw []byte) string {
	if idx := bytes.IndexByte(raw, 0); idx != -1 {
		raw = raw[:idx]
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}

	return string(decoded)
}

func (v *Volume) readDescriptors(fromBackup bool) error {
	g := &v.geometry
	descSize := int(g.DescSize)

	table := make([]byte, 0, int(g.DescBlocks())*int(g.BlockSize))

	for i := range g.DescBlocks() {
		buf, err := ioutil.ReadBlocks(v.r, g.BlockSize, g.DescriptorBlock(v.superBlock, i), 1)
		if err != nil {
			return fmt.Errorf("failed to read group descriptors: %w", err)
		}

		table = append(table, buf...)
	}

	v.descs = make([]layout.Descriptor, g.GroupCount)

	for group := range g.GroupCount {
		raw := extstructs.GroupDesc(table[int(group)*descSize : int(group+1)*descSize])

		// a backup superblock comes with stale descriptors: trust nothing to be uninitialized
		if fromBackup && g.Features.GroupDescCsum {
			raw.Put_bg_flags(raw.Get_bg_flags() &^ (layout.FlagBlockUninit | layout.FlagInodeUninit))
			raw.Put_bg_itable_unused_lo(0)

			if len(raw) >= extstructs.EXT2_MIN_DESC_SIZE_64BIT {
				raw.Put_bg_itable_unused_hi(0)
			}

			raw.Put_bg_checksum(v.groupDescChecksum(group, raw))
		}

		v.descs[group] = v.decodeDescriptor(group, raw)
	}

	return nil
}

func (v *Volume) decodeDescriptor(group uint32, raw extstructs.GroupDesc) layout.Descriptor {
	desc := layout.Descriptor{
		Group: group,

		BlockBitmap: raw.BlockBitmap(),
		InodeBitmap: raw.InodeBitmap(),
		InodeTable:  raw.InodeTable(),

		FreeBlocks:   raw.FreeBlocksCount(),
		FreeInodes:   raw.FreeInodesCount(),
		UsedDirs:     raw.UsedDirsCount(),
		ItableUnused: raw.ItableUnused(),

		Flags: raw.Get_bg_flags(),

		Checksum: raw.Get_bg_checksum(),

		BlockBitmapChecksum: raw.BlockBitmapChecksum(),
		InodeBitmapChecksum: raw.InodeBitmapChecksum(),
	}

	desc.ExpectedChecksum = desc.Checksum

	if v.geometry.Features.GroupDescCsum {
		desc.ExpectedChecksum = v.groupDescChecksum(group, raw)
	}

	return desc
}

// Geometry returns the shape of the filesystem.
func (v *Volume) Geometry() layout.Geometry {
	return v.geometry
}

// GroupDescriptor returns the decoded descriptor of the group.
func (v *Volume) GroupDescriptor(group uint32) (layout.Descriptor, error) {
	if group >= uint32(len(v.descs)) {
		return layout.Descriptor{}, fmt.Errorf("%w: %d", ErrInvalidGroup, group)
	}

	return v.descs[group], nil
}

// ChecksumErrors returns true if the superblock didn't match its checksum.
func (v *Volume) ChecksumErrors() bool {
	return v.checksumErrors
}

// Close releases the resources acquired by OpenPath.
func (v *Volume) Close() error {
	if v.closer == nil {
		return nil
	}

	return v.closer.Close()
}
