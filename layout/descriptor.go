// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

// Group descriptor flags.
const (
	FlagInodeUninit = 0x1
	FlagBlockUninit = 0x2
	FlagInodeZeroed = 0x4
)

// Descriptor is the decoded group descriptor of a single group.
type Descriptor struct {
	Group uint32

	BlockBitmap uint64
	InodeBitmap uint64
	InodeTable  uint64

	FreeBlocks   uint32
	FreeInodes   uint32
	UsedDirs     uint32
	ItableUnused uint32

	Flags uint16

	// Checksum is the stored descriptor checksum, ExpectedChecksum is the
	// value recomputed from the descriptor contents.
	Checksum         uint16
	ExpectedChecksum uint16

	BlockBitmapChecksum uint32
	InodeBitmapChecksum uint32
}

// Has returns true if the flag is set.
func (d *Descriptor) Has(flag uint16) bool {
	return d.Flags&flag != 0
}

// FlagNames returns the names of the set flags in display order.
func (d *Descriptor) FlagNames() []string {
	var names []string

	for _, f := range []struct {
		name string
		flag uint16
	}{
		{"INODE_UNINIT", FlagInodeUninit},
		{"BLOCK_UNINIT", FlagBlockUninit},
		{"ITABLE_ZEROED", FlagInodeZeroed},
	} {
		if d.Has(f.flag) {
			names = append(names, f.name)
		}
	}

	return names
}

// BitmapStatus reports which allocation bitmaps were loaded.
type BitmapStatus struct {
	Blocks bool
	Inodes bool

	// ChecksumErrors is set when a loaded bitmap didn't match its stored checksum.
	ChecksumErrors bool
}

// JournalKind selects the journal superblock to read.
type JournalKind int

// Journal kinds.
const (
	// JournalInline is the journal stored in the journal inode.
	JournalInline JournalKind = iota
	// JournalDevice is an external journal device superblock.
	JournalDevice
)
