// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/siderolabs/go-extlayout/layout"
)

type headerField struct {
	label string
	value any
}

var creatorOS = map[uint32]string{
	0: "Linux",
	1: "Hurd",
	2: "Masix",
	3: "FreeBSD",
	4: "Lites",
}

func revisionName(rev uint32) string {
	switch rev {
	case 0:
		return "0 (original)"
	case 1:
		return "1 (dynamic)"
	default:
		return fmt.Sprintf("%d (unknown)", rev)
	}
}

func stateName(state uint16) string {
	name := "not clean"
	if state&0x1 != 0 {
		name = "clean"
	}

	if state&0x2 != 0 {
		name += " with errors"
	}

	return name
}

func errorsName(behavior uint16) string {
	switch behavior {
	case 1:
		return "Continue"
	case 2:
		return "Remount read-only"
	case 3:
		return "Panic"
	default:
		return "Unknown (continue)"
	}
}

// headerFields lists the superblock summary in display order.
func headerFields(g *layout.Geometry) []headerField {
	id := &g.Identity

	label := id.Label
	if label == "" {
		label = "<none>"
	}

	features := "(none)"
	if names := layout.FeatureNames(id.FeatureCompat, id.FeatureIncompat, id.FeatureROCompat); len(names) > 0 {
		features = strings.Join(names, " ")
	}

	os, ok := creatorOS[id.CreatorOS]
	if !ok {
		os = "(unknown os)"
	}

	fields := []headerField{
		{"Filesystem volume name", label},
		{"Filesystem UUID", id.UUID},
		{"Filesystem magic number", fmt.Sprintf("0x%04X", id.Magic)},
		{"Filesystem revision #", revisionName(id.Revision)},
		{"Filesystem features", features},
		{"Filesystem state", stateName(id.State)},
		{"Errors behavior", errorsName(id.Errors)},
		{"Filesystem OS type", os},
		{"Inode count", id.InodesCount},
		{"Block count", g.BlocksCount},
		{"Filesystem size", humanize.IBytes(g.BlocksCount * uint64(g.BlockSize))},
		{"Reserved block count", id.ReservedBlocks},
		{"Free blocks", id.FreeBlocks},
		{"Free inodes", id.FreeInodes},
		{"First block", g.FirstDataBlock},
		{"Block size", g.BlockSize},
	}

	if g.Features.Bigalloc {
		fields = append(fields, headerField{"Cluster size", g.BlockSize * g.ClusterRatio})
	} else {
		fields = append(fields, headerField{"Fragment size", g.BlockSize * g.ClusterRatio})
	}

	if g.Features.Bit64 {
		fields = append(fields, headerField{"Group descriptor size", g.DescSize})
	}

	if g.ReservedGDTBlocks != 0 {
		fields = append(fields, headerField{"Reserved GDT blocks", g.ReservedGDTBlocks})
	}

	fields = append(fields, headerField{"Blocks per group", g.BlocksPerGroup})

	if g.Features.Bigalloc {
		fields = append(fields, headerField{"Clusters per group", g.ClustersPerGroup})
	} else {
		fields = append(fields, headerField{"Fragments per group", g.ClustersPerGroup})
	}

	fields = append(fields,
		headerField{"Inodes per group", g.InodesPerGroup},
		headerField{"Inode blocks per group", g.InodeBlocksPerGroup()},
	)

	if g.Features.FlexBG {
		fields = append(fields, headerField{"Flex block group size", uint64(1) << id.LogGroupsPerFlex})
	}

	if id.Revision > 0 {
		fields = append(fields,
			headerField{"First inode", id.FirstInode},
			headerField{"Inode size", g.InodeSize},
		)
	}

	if id.JournalInode != 0 {
		fields = append(fields, headerField{"Journal inode", id.JournalInode})
	}

	if g.Features.MetadataCsum {
		checksumType := "unknown"
		if id.ChecksumType == 1 {
			checksumType = "crc32c"
		}

		fields = append(fields,
			headerField{"Checksum type", checksumType},
			headerField{"Checksum", fmt.Sprintf("0x%08x", id.Checksum)},
		)
	}

	return fields
}
