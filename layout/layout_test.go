// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-extlayout/layout"
)

func ext4Geometry() layout.Geometry {
	return layout.Geometry{
		BlockSize:         4096,
		ClusterRatio:      1,
		BlocksCount:       131072,
		BlocksPerGroup:    32768,
		ClustersPerGroup:  32768,
		InodesPerGroup:    8192,
		InodeSize:         256,
		GroupCount:        4,
		ReservedGDTBlocks: 63,
		DescSize:          64,
		Features: layout.Features{
			FlexBG:        true,
			Bit64:         true,
			SparseSuper:   true,
			GroupDescCsum: true,
			MetadataCsum:  true,
		},
	}
}

func metaBGGeometry() layout.Geometry {
	return layout.Geometry{
		BlockSize:        1024,
		ClusterRatio:     1,
		FirstDataBlock:   1,
		BlocksCount:      1 + 70*8192,
		BlocksPerGroup:   8192,
		ClustersPerGroup: 8192,
		InodesPerGroup:   2048,
		InodeSize:        128,
		GroupCount:       70,
		FirstMetaBG:      1,
		DescSize:         32,
		Features: layout.Features{
			MetaBG:      true,
			SparseSuper: true,
		},
	}
}

func TestGeometry(t *testing.T) {
	geom := ext4Geometry()

	assert.EqualValues(t, 64, geom.DescPerBlock())
	assert.EqualValues(t, 1, geom.DescBlocks())
	assert.EqualValues(t, 1, geom.OldDescBlocks())
	assert.EqualValues(t, 512, geom.InodeBlocksPerGroup())
	assert.Equal(t, "blocks", geom.Units())

	assert.EqualValues(t, 32768, geom.GroupFirstBlock(1))
	assert.EqualValues(t, 65535, geom.GroupLastBlock(1))
	assert.EqualValues(t, 131071, geom.GroupLastBlock(3))
	assert.EqualValues(t, 2, geom.GroupOfBlock(70000))

	geom.Features.Bigalloc = true
	assert.Equal(t, "clusters", geom.Units())

	meta := metaBGGeometry()
	assert.EqualValues(t, 1, meta.OldDescBlocks())
	assert.EqualValues(t, 3, meta.DescBlocks())
	assert.EqualValues(t, 8193, meta.GroupFirstBlock(1))
	assert.EqualValues(t, 1, meta.GroupOfBlock(8193))
	assert.EqualValues(t, 0, meta.GroupOfBlock(0))
}

func TestGroupCountFor(t *testing.T) {
	assert.EqualValues(t, 4, layout.GroupCountFor(131072, 0, 32768))
	assert.EqualValues(t, 5, layout.GroupCountFor(131073, 0, 32768))
	assert.EqualValues(t, 1, layout.GroupCountFor(8192, 1, 8192))
	assert.EqualValues(t, 0, layout.GroupCountFor(1, 1, 8192))
}

func TestHasSuper(t *testing.T) {
	geom := ext4Geometry()

	var backups []uint32

	for group := range uint32(130) {
		if geom.HasSuper(group) {
			backups = append(backups, group)
		}
	}

	assert.Equal(t, []uint32{0, 1, 3, 5, 7, 9, 25, 27, 49, 81, 125}, backups)

	geom.Features.SparseSuper = false
	assert.True(t, geom.HasSuper(2))

	geom.Features.SparseSuper2 = true
	geom.BackupGroups = [2]uint32{1, 3}
	assert.True(t, geom.HasSuper(0))
	assert.True(t, geom.HasSuper(1))
	assert.True(t, geom.HasSuper(3))
	assert.False(t, geom.HasSuper(5))
}

func TestPlacement(t *testing.T) {
	ext4 := ext4Geometry()
	meta := metaBGGeometry()

	for _, test := range []struct { //nolint:govet
		name  string
		geom  layout.Geometry
		group uint32

		expected layout.Placement
	}{
		{
			name:     "primary 4k",
			geom:     ext4,
			group:    0,
			expected: layout.Placement{Super: 0, OldDesc: 1},
		},
		{
			name:     "backup 4k",
			geom:     ext4,
			group:    1,
			expected: layout.Placement{Super: 32768, OldDesc: 32769},
		},
		{
			name:  "no backup",
			geom:  ext4,
			group: 2,
		},
		{
			name:     "primary 1k",
			geom:     meta,
			group:    0,
			expected: layout.Placement{Super: 1, OldDesc: 2},
		},
		{
			name:     "meta_bg first in meta group",
			geom:     meta,
			group:    32,
			expected: layout.Placement{NewDesc: 1 + 32*8192},
		},
		{
			name:     "meta_bg second in meta group",
			geom:     meta,
			group:    33,
			expected: layout.Placement{NewDesc: 1 + 33*8192},
		},
		{
			name:     "meta_bg backup with superblock",
			geom:     meta,
			group:    49,
			expected: layout.Placement{Super: 1 + 49*8192},
		},
		{
			name:     "meta_bg last in meta group",
			geom:     meta,
			group:    63,
			expected: layout.Placement{NewDesc: 1 + 63*8192},
		},
		{
			name:     "meta_bg third meta group",
			geom:     meta,
			group:    64,
			expected: layout.Placement{NewDesc: 1 + 64*8192},
		},
		{
			name:     "old style backup",
			geom:     meta,
			group:    25,
			expected: layout.Placement{Super: 1 + 25*8192, OldDesc: 2 + 25*8192},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.geom.Placement(test.group))
		})
	}
}

func TestDescriptorBlock(t *testing.T) {
	ext4 := ext4Geometry()

	assert.EqualValues(t, 1, ext4.DescriptorBlock(0, 0))
	assert.EqualValues(t, 32769, ext4.DescriptorBlock(32768, 0))

	meta := metaBGGeometry()

	assert.EqualValues(t, 2, meta.DescriptorBlock(1, 0))
	assert.EqualValues(t, 1+32*8192, meta.DescriptorBlock(1, 1))
	assert.EqualValues(t, 1+33*8192, meta.DescriptorBlock(8193, 1))
	assert.EqualValues(t, 1+64*8192, meta.DescriptorBlock(1, 2))
}

func TestFeatures(t *testing.T) {
	features := layout.ResolveFeatures(
		layout.EXT3_FEATURE_COMPAT_HAS_JOURNAL,
		layout.EXT4_FEATURE_INCOMPAT_FLEX_BG|layout.EXT4_FEATURE_INCOMPAT_64BIT,
		layout.EXT4_FEATURE_RO_COMPAT_GDT_CSUM,
	)

	assert.Equal(t, layout.Features{
		FlexBG:        true,
		Bit64:         true,
		GroupDescCsum: true,
		HasJournal:    true,
	}, features)

	assert.Equal(t,
		[]string{"has_journal", "ext_attr", "filetype", "extent", "FEATURE_I30", "sparse_super", "metadata_csum"},
		layout.FeatureNames(0x000c, 0x0042|1<<30, 0x0401),
	)
	assert.Empty(t, layout.FeatureNames(0, 0, 0))
}

func TestDescriptorFlags(t *testing.T) {
	desc := layout.Descriptor{Flags: layout.FlagInodeZeroed | layout.FlagInodeUninit}

	assert.True(t, desc.Has(layout.FlagInodeUninit))
	assert.False(t, desc.Has(layout.FlagBlockUninit))
	assert.Equal(t, []string{"INODE_UNINIT", "ITABLE_ZEROED"}, desc.FlagNames())
}
