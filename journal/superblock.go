// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package journal

import "encoding/binary"

// SUPERBLOCK_SIZE is the on-disk size of the journal superblock.
//
//nolint:stylecheck,revive
const SUPERBLOCK_SIZE = 1024

// Superblock is the big-endian jbd2 journal superblock.
type Superblock []byte

// Get_h_magic returns h_magic.
//
//nolint:revive,stylecheck
func (s Superblock) Get_h_magic() uint32 {
	return binary.BigEndian.Uint32(s[0x00:0x04])
}

// Get_h_blocktype returns h_blocktype.
//
//nolint:revive,stylecheck
func (s Superblock) Get_h_blocktype() uint32 {
	return binary.BigEndian.Uint32(s[0x04:0x08])
}

// Get_s_blocksize returns s_blocksize.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_blocksize() uint32 {
	return binary.BigEndian.Uint32(s[0x0c:0x10])
}

// Get_s_maxlen returns s_maxlen.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_maxlen() uint32 {
	return binary.BigEndian.Uint32(s[0x10:0x14])
}

// Get_s_first returns s_first.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_first() uint32 {
	return binary.BigEndian.Uint32(s[0x14:0x18])
}

// Get_s_sequence returns s_sequence.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_sequence() uint32 {
	return binary.BigEndian.Uint32(s[0x18:0x1c])
}

// Get_s_start returns s_start.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_start() uint32 {
	return binary.BigEndian.Uint32(s[0x1c:0x20])
}

// Get_s_errno returns s_errno.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_errno() int32 {
	return int32(binary.BigEndian.Uint32(s[0x20:0x24]))
}

// Get_s_feature_compat returns s_feature_compat.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_feature_compat() uint32 {
	return binary.BigEndian.Uint32(s[0x24:0x28])
}

// Get_s_feature_incompat returns s_feature_incompat.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_feature_incompat() uint32 {
	return binary.BigEndian.Uint32(s[0x28:0x2c])
}

// Get_s_feature_ro_compat returns s_feature_ro_compat.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_feature_ro_compat() uint32 {
	return binary.BigEndian.Uint32(s[0x2c:0x30])
}

// Get_s_uuid returns s_uuid.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_uuid() []byte {
	return s[0x30:0x40]
}

// Get_s_nr_users returns s_nr_users.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_nr_users() uint32 {
	return binary.BigEndian.Uint32(s[0x40:0x44])
}

// Get_s_checksum_type returns s_checksum_type.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_checksum_type() uint8 {
	return s[0x50]
}

// Get_s_checksum returns s_checksum.
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_checksum() uint32 {
	return binary.BigEndian.Uint32(s[0xfc:0x100])
}

// Get_s_users returns the s_users array (16 bytes per user).
//
//nolint:revive,stylecheck
func (s Superblock) Get_s_users() []byte {
	return s[0x100:0x400]
}
