// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import "fmt"

// Various extfs feature bits.
//
//nolint:stylecheck,revive
const (
	EXT3_FEATURE_COMPAT_HAS_JOURNAL   = 0x0004
	EXT4_FEATURE_COMPAT_SPARSE_SUPER2 = 0x0200

	EXT2_FEATURE_RO_COMPAT_SPARSE_SUPER  = 0x0001
	EXT4_FEATURE_RO_COMPAT_GDT_CSUM      = 0x0010
	EXT4_FEATURE_RO_COMPAT_BIGALLOC      = 0x0200
	EXT4_FEATURE_RO_COMPAT_METADATA_CSUM = 0x0400

	EXT2_FEATURE_INCOMPAT_FILETYPE    = 0x0002
	EXT3_FEATURE_INCOMPAT_RECOVER     = 0x0004
	EXT3_FEATURE_INCOMPAT_JOURNAL_DEV = 0x0008
	EXT2_FEATURE_INCOMPAT_META_BG     = 0x0010
	EXT4_FEATURE_INCOMPAT_EXTENTS     = 0x0040
	EXT4_FEATURE_INCOMPAT_64BIT       = 0x0080
	EXT4_FEATURE_INCOMPAT_MMP         = 0x0100
	EXT4_FEATURE_INCOMPAT_FLEX_BG     = 0x0200
	EXT4_FEATURE_INCOMPAT_EA_INODE    = 0x0400
	EXT4_FEATURE_INCOMPAT_CSUM_SEED   = 0x2000
	EXT4_FEATURE_INCOMPAT_LARGEDIR    = 0x4000
	EXT4_FEATURE_INCOMPAT_INLINE_DATA = 0x8000
	EXT4_FEATURE_INCOMPAT_ENCRYPT     = 0x10000
	EXT4_FEATURE_INCOMPAT_CASEFOLD    = 0x20000
)

// SupportedIncompat is the set of incompatible features the layout can be read with.
const SupportedIncompat = EXT2_FEATURE_INCOMPAT_FILETYPE | EXT3_FEATURE_INCOMPAT_RECOVER |
	EXT3_FEATURE_INCOMPAT_JOURNAL_DEV | EXT2_FEATURE_INCOMPAT_META_BG | EXT4_FEATURE_INCOMPAT_EXTENTS |
	EXT4_FEATURE_INCOMPAT_64BIT | EXT4_FEATURE_INCOMPAT_MMP | EXT4_FEATURE_INCOMPAT_FLEX_BG |
	EXT4_FEATURE_INCOMPAT_EA_INODE | EXT4_FEATURE_INCOMPAT_CSUM_SEED | EXT4_FEATURE_INCOMPAT_LARGEDIR |
	EXT4_FEATURE_INCOMPAT_INLINE_DATA | EXT4_FEATURE_INCOMPAT_ENCRYPT | EXT4_FEATURE_INCOMPAT_CASEFOLD

// ResolveFeatures maps raw superblock feature masks to the flags used by the report.
func ResolveFeatures(compat, incompat, roCompat uint32) Features {
	return Features{
		FlexBG:        incompat&EXT4_FEATURE_INCOMPAT_FLEX_BG != 0,
		Bit64:         incompat&EXT4_FEATURE_INCOMPAT_64BIT != 0,
		Bigalloc:      roCompat&EXT4_FEATURE_RO_COMPAT_BIGALLOC != 0,
		MetaBG:        incompat&EXT2_FEATURE_INCOMPAT_META_BG != 0,
		SparseSuper:   roCompat&EXT2_FEATURE_RO_COMPAT_SPARSE_SUPER != 0,
		SparseSuper2:  compat&EXT4_FEATURE_COMPAT_SPARSE_SUPER2 != 0,
		GroupDescCsum: roCompat&(EXT4_FEATURE_RO_COMPAT_GDT_CSUM|EXT4_FEATURE_RO_COMPAT_METADATA_CSUM) != 0,
		MetadataCsum:  roCompat&EXT4_FEATURE_RO_COMPAT_METADATA_CSUM != 0,
		JournalDev:    incompat&EXT3_FEATURE_INCOMPAT_JOURNAL_DEV != 0,
		HasJournal:    compat&EXT3_FEATURE_COMPAT_HAS_JOURNAL != 0,
	}
}

var compatNames = map[uint32]string{
	0x0001: "dir_prealloc",
	0x0002: "imagic_inodes",
	0x0004: "has_journal",
	0x0008: "ext_attr",
	0x0010: "resize_inode",
	0x0020: "dir_index",
	0x0040: "lazy_bg",
	0x0100: "snapshot_bitmap",
	0x0200: "sparse_super2",
	0x0400: "fast_commit",
	0x0800: "stable_inodes",
	0x1000: "orphan_file",
}

var incompatNames = map[uint32]string{
	0x0001:  "compression",
	0x0002:  "filetype",
	0x0004:  "needs_recovery",
	0x0008:  "journal_dev",
	0x0010:  "meta_bg",
	0x0040:  "extent",
	0x0080:  "64bit",
	0x0100:  "mmp",
	0x0200:  "flex_bg",
	0x0400:  "ea_inode",
	0x1000:  "dirdata",
	0x2000:  "metadata_csum_seed",
	0x4000:  "large_dir",
	0x8000:  "inline_data",
	0x10000: "encrypt",
	0x20000: "casefold",
}

var roCompatNames = map[uint32]string{
	0x0001:  "sparse_super",
	0x0002:  "large_file",
	0x0008:  "huge_file",
	0x0010:  "uninit_bg",
	0x0020:  "dir_nlink",
	0x0040:  "extra_isize",
	0x0100:  "quota",
	0x0200:  "bigalloc",
	0x0400:  "metadata_csum",
	0x0800:  "replica",
	0x1000:  "read-only",
	0x2000:  "project",
	0x4000:  "shared_blocks",
	0x8000:  "verity",
	0x10000: "orphan_present",
}

// FeatureNames returns the names of the set feature bits: compat, then incompat, then ro_compat.
//
// Unknown bits are named FEATURE_<C|I|R><bit>.
func FeatureNames(compat, incompat, roCompat uint32) []string {
	var names []string

	for _, set := range []struct {
		names map[uint32]string
		mask  uint32
		tag   byte
	}{
		{compatNames, compat, 'C'},
		{incompatNames, incompat, 'I'},
		{roCompatNames, roCompat, 'R'},
	} {
		for bit := range 32 {
			m := uint32(1) << bit

			if set.mask&m == 0 {
				continue
			}

			name, ok := set.names[m]
			if !ok {
				name = fmt.Sprintf("FEATURE_%c%d", set.tag, bit)
			}

			names = append(names, name)
		}
	}

	return names
}
