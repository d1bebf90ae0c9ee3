// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package extstructs provides encoded definitions for ext on-disk structures.
package extstructs

import "encoding/binary"

// SUPERBLOCK_SIZE is the on-disk size of SuperBlock.
//
//nolint:stylecheck,revive
const SUPERBLOCK_SIZE = 1024

// Get_s_inodes_count returns s_inodes_count.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_inodes_count() uint32 {
	return binary.LittleEndian.Uint32(s[0x00:0x04])
}

// Put_s_inodes_count sets s_inodes_count.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_inodes_count(v uint32) {
	binary.LittleEndian.PutUint32(s[0x00:0x04], v)
}

// Get_s_blocks_count_lo returns s_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_blocks_count_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x04:0x08])
}

// Put_s_blocks_count_lo sets s_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_blocks_count_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x04:0x08], v)
}

// Get_s_r_blocks_count_lo returns s_r_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_r_blocks_count_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x08:0x0c])
}

// Put_s_r_blocks_count_lo sets s_r_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_r_blocks_count_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x08:0x0c], v)
}

// Get_s_free_blocks_count_lo returns s_free_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_free_blocks_count_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x0c:0x10])
}

// Put_s_free_blocks_count_lo sets s_free_blocks_count_lo.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_free_blocks_count_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x0c:0x10], v)
}

// Get_s_free_inodes_count returns s_free_inodes_count.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_free_inodes_count() uint32 {
	return binary.LittleEndian.Uint32(s[0x10:0x14])
}

// Put_s_free_inodes_count sets s_free_inodes_count.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_free_inodes_count(v uint32) {
	binary.LittleEndian.PutUint32(s[0x10:0x14], v)
}

// Get_s_first_data_block returns s_first_data_block.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_first_data_block() uint32 {
	return binary.LittleEndian.Uint32(s[0x14:0x18])
}

// Put_s_first_data_block sets s_first_data_block.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_first_data_block(v uint32) {
	binary.LittleEndian.PutUint32(s[0x14:0x18], v)
}

// Get_s_log_block_size returns s_log_block_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_log_block_size() uint32 {
	return binary.LittleEndian.Uint32(s[0x18:0x1c])
}

// Put_s_log_block_size sets s_log_block_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_log_block_size(v uint32) {
	binary.LittleEndian.PutUint32(s[0x18:0x1c], v)
}

// Get_s_log_cluster_size returns s_log_cluster_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_log_cluster_size() uint32 {
	return binary.LittleEndian.Uint32(s[0x1c:0x20])
}

// Put_s_log_cluster_size sets s_log_cluster_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_log_cluster_size(v uint32) {
	binary.LittleEndian.PutUint32(s[0x1c:0x20], v)
}

// Get_s_blocks_per_group returns s_blocks_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_blocks_per_group() uint32 {
	return binary.LittleEndian.Uint32(s[0x20:0x24])
}

// Put_s_blocks_per_group sets s_blocks_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_blocks_per_group(v uint32) {
	binary.LittleEndian.PutUint32(s[0x20:0x24], v)
}

// Get_s_clusters_per_group returns s_clusters_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_clusters_per_group() uint32 {
	return binary.LittleEndian.Uint32(s[0x24:0x28])
}

// Put_s_clusters_per_group sets s_clusters_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_clusters_per_group(v uint32) {
	binary.LittleEndian.PutUint32(s[0x24:0x28], v)
}

// Get_s_inodes_per_group returns s_inodes_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_inodes_per_group() uint32 {
	return binary.LittleEndian.Uint32(s[0x28:0x2c])
}

// Put_s_inodes_per_group sets s_inodes_per_group.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_inodes_per_group(v uint32) {
	binary.LittleEndian.PutUint32(s[0x28:0x2c], v)
}

// Get_s_magic returns s_magic.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_magic() uint16 {
	return binary.LittleEndian.Uint16(s[0x38:0x3a])
}

// Put_s_magic sets s_magic.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_magic(v uint16) {
	binary.LittleEndian.PutUint16(s[0x38:0x3a], v)
}

// Get_s_state returns s_state.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_state() uint16 {
	return binary.LittleEndian.Uint16(s[0x3a:0x3c])
}

// Put_s_state sets s_state.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_state(v uint16) {
	binary.LittleEndian.PutUint16(s[0x3a:0x3c], v)
}

// Get_s_errors returns s_errors.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_errors() uint16 {
	return binary.LittleEndian.Uint16(s[0x3c:0x3e])
}

// Put_s_errors sets s_errors.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_errors(v uint16) {
	binary.LittleEndian.PutUint16(s[0x3c:0x3e], v)
}

// Get_s_minor_rev_level returns s_minor_rev_level.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_minor_rev_level() uint16 {
	return binary.LittleEndian.Uint16(s[0x3e:0x40])
}

// Put_s_minor_rev_level sets s_minor_rev_level.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_minor_rev_level(v uint16) {
	binary.LittleEndian.PutUint16(s[0x3e:0x40], v)
}

// Get_s_creator_os returns s_creator_os.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_creator_os() uint32 {
	return binary.LittleEndian.Uint32(s[0x48:0x4c])
}

// Put_s_creator_os sets s_creator_os.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_creator_os(v uint32) {
	binary.LittleEndian.PutUint32(s[0x48:0x4c], v)
}

// Get_s_rev_level returns s_rev_level.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_rev_level() uint32 {
	return binary.LittleEndian.Uint32(s[0x4c:0x50])
}

// Put_s_rev_level sets s_rev_level.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_rev_level(v uint32) {
	binary.LittleEndian.PutUint32(s[0x4c:0x50], v)
}

// Get_s_first_ino returns s_first_ino.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_first_ino() uint32 {
	return binary.LittleEndian.Uint32(s[0x54:0x58])
}

// Put_s_first_ino sets s_first_ino.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_first_ino(v uint32) {
	binary.LittleEndian.PutUint32(s[0x54:0x58], v)
}

// Get_s_inode_size returns s_inode_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_inode_size() uint16 {
	return binary.LittleEndian.Uint16(s[0x58:0x5a])
}

// Put_s_inode_size sets s_inode_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_inode_size(v uint16) {
	binary.LittleEndian.PutUint16(s[0x58:0x5a], v)
}

// Get_s_block_group_nr returns s_block_group_nr.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_block_group_nr() uint16 {
	return binary.LittleEndian.Uint16(s[0x5a:0x5c])
}

// Put_s_block_group_nr sets s_block_group_nr.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_block_group_nr(v uint16) {
	binary.LittleEndian.PutUint16(s[0x5a:0x5c], v)
}

// Get_s_feature_compat returns s_feature_compat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_feature_compat() uint32 {
	return binary.LittleEndian.Uint32(s[0x5c:0x60])
}

// Put_s_feature_compat sets s_feature_compat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_feature_compat(v uint32) {
	binary.LittleEndian.PutUint32(s[0x5c:0x60], v)
}

// Get_s_feature_incompat returns s_feature_incompat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_feature_incompat() uint32 {
	return binary.LittleEndian.Uint32(s[0x60:0x64])
}

// Put_s_feature_incompat sets s_feature_incompat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_feature_incompat(v uint32) {
	binary.LittleEndian.PutUint32(s[0x60:0x64], v)
}

// Get_s_feature_ro_compat returns s_feature_ro_compat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_feature_ro_compat() uint32 {
	return binary.LittleEndian.Uint32(s[0x64:0x68])
}

// Put_s_feature_ro_compat sets s_feature_ro_compat.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_feature_ro_compat(v uint32) {
	binary.LittleEndian.PutUint32(s[0x64:0x68], v)
}

// Get_s_uuid returns s_uuid.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_uuid() []byte {
	return s[0x68:0x78]
}

// Put_s_uuid sets s_uuid.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_uuid(v []byte) {
	copy(s[0x68:0x78], v)
}

// Get_s_volume_name returns s_volume_name.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_volume_name() []byte {
	return s[0x78:0x88]
}

// Put_s_volume_name sets s_volume_name.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_volume_name(v []byte) {
	copy(s[0x78:0x88], v)
}

// Get_s_reserved_gdt_blocks returns s_reserved_gdt_blocks.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_reserved_gdt_blocks() uint16 {
	return binary.LittleEndian.Uint16(s[0xce:0xd0])
}

// Put_s_reserved_gdt_blocks sets s_reserved_gdt_blocks.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_reserved_gdt_blocks(v uint16) {
	binary.LittleEndian.PutUint16(s[0xce:0xd0], v)
}

// Get_s_journal_inum returns s_journal_inum.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_journal_inum() uint32 {
	return binary.LittleEndian.Uint32(s[0xe0:0xe4])
}

// Put_s_journal_inum sets s_journal_inum.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_journal_inum(v uint32) {
	binary.LittleEndian.PutUint32(s[0xe0:0xe4], v)
}

// Get_s_desc_size returns s_desc_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_desc_size() uint16 {
	return binary.LittleEndian.Uint16(s[0xfe:0x100])
}

// Put_s_desc_size sets s_desc_size.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_desc_size(v uint16) {
	binary.LittleEndian.PutUint16(s[0xfe:0x100], v)
}

// Get_s_first_meta_bg returns s_first_meta_bg.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_first_meta_bg() uint32 {
	return binary.LittleEndian.Uint32(s[0x104:0x108])
}

// Put_s_first_meta_bg sets s_first_meta_bg.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_first_meta_bg(v uint32) {
	binary.LittleEndian.PutUint32(s[0x104:0x108], v)
}

// Get_s_blocks_count_hi returns s_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_blocks_count_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x150:0x154])
}

// Put_s_blocks_count_hi sets s_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_blocks_count_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x150:0x154], v)
}

// Get_s_r_blocks_count_hi returns s_r_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_r_blocks_count_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x154:0x158])
}

// Put_s_r_blocks_count_hi sets s_r_blocks_count_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_r_blocks_count_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x154:0x158], v)
}

// Get_s_free_blocks_hi returns s_free_blocks_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_free_blocks_hi() uint32 {
	return binary.LittleEndian.Uint32(s[0x158:0x15c])
}

// Put_s_free_blocks_hi sets s_free_blocks_hi.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_free_blocks_hi(v uint32) {
	binary.LittleEndian.PutUint32(s[0x158:0x15c], v)
}

// Get_s_log_groups_per_flex returns s_log_groups_per_flex.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_log_groups_per_flex() uint8 {
	return s[0x174]
}

// Put_s_log_groups_per_flex sets s_log_groups_per_flex.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_log_groups_per_flex(v uint8) {
	s[0x174] = v
}

// Get_s_checksum_type returns s_checksum_type.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_checksum_type() uint8 {
	return s[0x175]
}

// Put_s_checksum_type sets s_checksum_type.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_checksum_type(v uint8) {
	s[0x175] = v
}

// Get_s_backup_bgs returns s_backup_bgs.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_backup_bgs() []byte {
	return s[0x24c:0x254]
}

// Put_s_backup_bgs sets s_backup_bgs.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_backup_bgs(v []byte) {
	copy(s[0x24c:0x254], v)
}

// Get_s_checksum_seed returns s_checksum_seed.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_checksum_seed() uint32 {
	return binary.LittleEndian.Uint32(s[0x270:0x274])
}

// Put_s_checksum_seed sets s_checksum_seed.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_checksum_seed(v uint32) {
	binary.LittleEndian.PutUint32(s[0x270:0x274], v)
}

// Get_s_checksum returns s_checksum.
//
//nolint:revive,stylecheck
func (s SuperBlock) Get_s_checksum() uint32 {
	return binary.LittleEndian.Uint32(s[0x3fc:0x400])
}

// Put_s_checksum sets s_checksum.
//
//nolint:revive,stylecheck
func (s SuperBlock) Put_s_checksum(v uint32) {
	binary.LittleEndian.PutUint32(s[0x3fc:0x400], v)
}
