// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package extstructs

import "encoding/binary"

// Get_bg_block_bitmap_lo returns bg_block_bitmap_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_block_bitmap_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x00:0x04])
}

// Put_bg_block_bitmap_lo sets bg_block_bitmap_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_block_bitmap_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x00:0x04], v)
}

// Get_bg_inode_bitmap_lo returns bg_inode_bitmap_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_bitmap_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x04:0x08])
}

// Put_bg_inode_bitmap_lo sets bg_inode_bitmap_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_bitmap_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x04:0x08], v)
}

// Get_bg_inode_table_lo returns bg_inode_table_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_table_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x08:0x0c])
}

// Put_bg_inode_table_lo sets bg_inode_table_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_table_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x08:0x0c], v)
}

// Get_bg_free_blocks_count_lo returns bg_free_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_free_blocks_count_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x0c:0x0e])
}

// Put_bg_free_blocks_count_lo sets bg_free_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_free_blocks_count_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x0c:0x0e], v)
}

// Get_bg_free_inodes_count_lo returns bg_free_inodes_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_free_inodes_count_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x0e:0x10])
}

// Put_bg_free_inodes_count_lo sets bg_free_inodes_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_free_inodes_count_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x0e:0x10], v)
}

// Get_bg_used_dirs_count_lo returns bg_used_dirs_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_used_dirs_count_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x10:0x12])
}

// Put_bg_used_dirs_count_lo sets bg_used_dirs_count_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_used_dirs_count_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x10:0x12], v)
}

// Get_bg_flags returns bg_flags.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_flags() uint16 {
	return binary.LittleEndian.Uint16(s[0x12:0x14])
}

// Put_bg_flags sets bg_flags.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_flags(v uint16) {
	binary.LittleEndian.PutUint16(s[0x12:0x14], v)
}

// Get_bg_block_bitmap_csum_lo returns bg_block_bitmap_csum_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_block_bitmap_csum_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x18:0x1a])
}

// Put_bg_block_bitmap_csum_lo sets bg_block_bitmap_csum_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_block_bitmap_csum_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x18:0x1a], v)
}

// Get_bg_inode_bitmap_csum_lo returns bg_inode_bitmap_csum_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_bitmap_csum_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x1a:0x1c])
}

// Put_bg_inode_bitmap_csum_lo sets bg_inode_bitmap_csum_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_bitmap_csum_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x1a:0x1c], v)
}

// Get_bg_itable_unused_lo returns bg_itable_unused_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_itable_unused_lo() uint16 {
	return binary.LittleEndian.Uint16(s[0x1c:0x1e])
}

// Put_bg_itable_unused_lo sets bg_itable_unused_lo.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_itable_unused_lo(v uint16) {
	binary.LittleEndian.PutUint16(s[0x1c:0x1e], v)
}

// Get_bg_checksum returns bg_checksum.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_checksum() uint16 {
	return binary.LittleEndian.Uint16(s[0x1e:0x20])
}

// Put_bg_checksum sets bg_checksum.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_checksum(v uint16) {
	binary.LittleEndian.PutUint16(s[0x1e:0x20], v)
}

// Get_bg_block_bitmap_hi returns bg_block_bitmap_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_block_bitmap_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x20:0x24])
}

// Put_bg_block_bitmap_hi sets bg_block_bitmap_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_block_bitmap_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x20:0x24], v)
}

// Get_bg_inode_bitmap_hi returns bg_inode_bitmap_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_bitmap_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x24:0x28])
}

// Put_bg_inode_bitmap_hi sets bg_inode_bitmap_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_bitmap_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x24:0x28], v)
}

// Get_bg_inode_table_hi returns bg_inode_table_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_table_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x28:0x2c])
}

// Put_bg_inode_table_hi sets bg_inode_table_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_table_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x28:0x2c], v)
}

// Get_bg_free_blocks_count_hi returns bg_free_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_free_blocks_count_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x2c:0x2e])
}

// Put_bg_free_blocks_count_hi sets bg_free_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_free_blocks_count_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x2c:0x2e], v)
}

// Get_bg_free_inodes_count_hi returns bg_free_inodes_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_free_inodes_count_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x2e:0x30])
}

// Put_bg_free_inodes_count_hi sets bg_free_inodes_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_free_inodes_count_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x2e:0x30], v)
}

// Get_bg_used_dirs_count_hi returns bg_used_dirs_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_used_dirs_count_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x30:0x32])
}

// Put_bg_used_dirs_count_hi sets bg_used_dirs_count_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_used_dirs_count_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x30:0x32], v)
}

// Get_bg_itable_unused_hi returns bg_itable_unused_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_itable_unused_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x32:0x34])
}

// Put_bg_itable_unused_hi sets bg_itable_unused_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_itable_unused_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x32:0x34], v)
}

// Get_bg_block_bitmap_csum_hi returns bg_block_bitmap_csum_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_block_bitmap_csum_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x38:0x3a])
}

// Put_bg_block_bitmap_csum_hi sets bg_block_bitmap_csum_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_block_bitmap_csum_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x38:0x3a], v)
}

// Get_bg_inode_bitmap_csum_hi returns bg_inode_bitmap_csum_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Get_bg_inode_bitmap_csum_hi() uint16 {
	return binary.LittleEndian.Uint16(s[0x3a:0x3c])
}

// Put_bg_inode_bitmap_csum_hi sets bg_inode_bitmap_csum_hi.
//
//nolint:revive,stylecheck
func (s GroupDesc) Put_bg_inode_bitmap_csum_hi(v uint16) {
	binary.LittleEndian.PutUint16(s[0x3a:0x3c], v)
}
