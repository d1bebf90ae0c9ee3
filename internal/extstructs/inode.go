// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package extstructs

import "encoding/binary"

// Get_i_mode returns i_mode.
//
//nolint:revive,stylecheck
func (s Inode) Get_i_mode() uint16 {
	return binary.LittleEndian.Uint16(s[0x00:0x02])
}

// Put_i_mode sets i_mode.
//
//nolint:revive,stylecheck
func (s Inode) Put_i_mode(v uint16) {
	binary.LittleEndian.PutUint16(s[0x00:0x02], v)
}

// Get_i_size_lo returns i_size_lo.
//
//nolint:revive,stylecheck
func (s Inode) Get_i_size_lo() uint32 {
	return binary.LittleEndian.Uint32(s[0x04:0x08])
}

// Put_i_size_lo sets i_size_lo.
//
//nolint:revive,stylecheck
func (s Inode) Put_i_size_lo(v uint32) {
	binary.LittleEndian.PutUint32(s[0x04:0x08], v)
}

// Get_i_flags returns i_flags.
//
//nolint:revive,stylecheck
func (s Inode) Get_i_flags() uint32 {
	return binary.LittleEndian.Uint32(s[0x20:0x24])
}

// Put_i_flags sets i_flags.
//
//nolint:revive,stylecheck
func (s Inode) Put_i_flags(v uint32) {
	binary.LittleEndian.PutUint32(s[0x20:0x24], v)
}

// Get_i_block returns i_block.
//
//nolint:revive,stylecheck
func (s Inode) Get_i_block() []byte {
	return s[0x28:0x64]
}

// Put_i_block sets i_block.
//
//nolint:revive,stylecheck
func (s Inode) Put_i_block(v []byte) {
	copy(s[0x28:0x64], v)
}

// Get_i_size_high returns i_size_high.
//
//nolint:revive,stylecheck
func (s Inode) Get_i_size_high() uint32 {
	return binary.LittleEndian.Uint32(s[0x6c:0x70])
}

// Put_i_size_high sets i_size_high.
//
//nolint:revive,stylecheck
func (s Inode) Put_i_size_high(v uint32) {
	binary.LittleEndian.PutUint32(s[0x6c:0x70], v)
}
