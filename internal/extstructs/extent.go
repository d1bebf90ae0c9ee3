// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package extstructs

import "encoding/binary"

// Extent tree constants.
//
//nolint:stylecheck,revive
const (
	EXT4_EXT_MAGIC        = 0xF30A
	EXT4_EXT_ENTRY_SIZE   = 12
	EXT4_EXT_INIT_MAX_LEN = 1 << 15
)

// ExtentHeader is an extent tree node, starting with its header.
type ExtentHeader []byte

// Get_eh_magic returns eh_magic.
//
//nolint:revive,stylecheck
func (h ExtentHeader) Get_eh_magic() uint16 {
	return binary.LittleEndian.Uint16(h[0x00:0x02])
}

// Get_eh_entries returns eh_entries.
//
//nolint:revive,stylecheck
func (h ExtentHeader) Get_eh_entries() uint16 {
	return binary.LittleEndian.Uint16(h[0x02:0x04])
}

// Get_eh_max returns eh_max.
//
//nolint:revive,stylecheck
func (h ExtentHeader) Get_eh_max() uint16 {
	return binary.LittleEndian.Uint16(h[0x04:0x06])
}

// Get_eh_depth returns eh_depth.
//
//nolint:revive,stylecheck
func (h ExtentHeader) Get_eh_depth() uint16 {
	return binary.LittleEndian.Uint16(h[0x06:0x08])
}

// PutHeader fills in a node header.
func (h ExtentHeader) PutHeader(entries, maxEntries, depth uint16) {
	binary.LittleEndian.PutUint16(h[0x00:0x02], EXT4_EXT_MAGIC)
	binary.LittleEndian.PutUint16(h[0x02:0x04], entries)
	binary.LittleEndian.PutUint16(h[0x04:0x06], maxEntries)
	binary.LittleEndian.PutUint16(h[0x06:0x08], depth)
}

// Entry returns the n-th entry following the header.
func (h ExtentHeader) Entry(n int) []byte {
	off := EXT4_EXT_ENTRY_SIZE * (n + 1)

	return h[off : off+EXT4_EXT_ENTRY_SIZE]
}

// Extent is a leaf entry mapping file blocks to a physical run.
type Extent []byte

// FileBlock returns the first logical block covered.
func (e Extent) FileBlock() uint32 {
	return binary.LittleEndian.Uint32(e[0x00:0x04])
}

// Len returns the number of blocks covered, for both initialized and
// uninitialized extents.
func (e Extent) Len() uint32 {
	l := uint32(binary.LittleEndian.Uint16(e[0x04:0x06]))
	if l > EXT4_EXT_INIT_MAX_LEN {
		l -= EXT4_EXT_INIT_MAX_LEN
	}

	return l
}

// PhysicalBlock returns the first physical block.
func (e Extent) PhysicalBlock() uint64 {
	return uint64(binary.LittleEndian.Uint16(e[0x06:0x08]))<<32 | uint64(binary.LittleEndian.Uint32(e[0x08:0x0C]))
}

// Put fills in the leaf entry.
func (e Extent) Put(fileBlock uint32, length uint16, physical uint64) {
	binary.LittleEndian.PutUint32(e[0x00:0x04], fileBlock)
	binary.LittleEndian.PutUint16(e[0x04:0x06], length)
	binary.LittleEndian.PutUint16(e[0x06:0x08], uint16(physical>>32))
	binary.LittleEndian.PutUint32(e[0x08:0x0C], uint32(physical))
}

// ExtentIdx is an internal entry pointing at a lower tree node.
type ExtentIdx []byte

// FileBlock returns the first logical block covered by the subtree.
func (e ExtentIdx) FileBlock() uint32 {
	return binary.LittleEndian.Uint32(e[0x00:0x04])
}

// PhysicalBlock returns the block holding the subtree node.
func (e ExtentIdx) PhysicalBlock() uint64 {
	return uint64(binary.LittleEndian.Uint16(e[0x08:0x0A]))<<32 | uint64(binary.LittleEndian.Uint32(e[0x04:0x08]))
}

// Put fills in the index entry.
func (e ExtentIdx) Put(fileBlock uint32, physical uint64) {
	binary.LittleEndian.PutUint32(e[0x00:0x04], fileBlock)
	binary.LittleEndian.PutUint32(e[0x04:0x08], uint32(physical))
	binary.LittleEndian.PutUint16(e[0x08:0x0A], uint16(physical>>32))
}
