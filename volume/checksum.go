// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume

import (
	"encoding/binary"

	"github.com/siderolabs/go-extlayout/internal/extstructs"
	"github.com/siderolabs/go-extlayout/internal/utils"
)

// bg_checksum location, the field itself is skipped when checksumming.
const (
	descChecksumOffset = 0x1E
	descChecksumEnd    = 0x20
)

// groupDescChecksum recomputes the checksum of the raw group descriptor.
func (v *Volume) groupDescChecksum(group uint32, raw extstructs.GroupDesc) uint16 {
	var groupLE [4]byte

	binary.LittleEndian.PutUint32(groupLE[:], group)

	if v.geometry.Features.MetadataCsum {
		crc := utils.CRC32cUpdate(v.csumSeed, groupLE[:])
		crc = utils.CRC32cUpdate(crc, raw[:descChecksumOffset])
		crc = utils.CRC32cUpdate(crc, []byte{0, 0})
		crc = utils.CRC32cUpdate(crc, raw[descChecksumEnd:])

		return uint16(crc & 0xFFFF)
	}

	crc := utils.CRC16(^uint16(0), v.sb.Get_s_uuid())
	crc = utils.CRC16(crc, groupLE[:])
	crc = utils.CRC16(crc, raw[:descChecksumOffset])

	return utils.CRC16(crc, raw[descChecksumEnd:])
}

// bitmapChecksumMatches compares the crc32c of the bitmap with the stored value,
// which is truncated to 16 bits with short descriptors.
func (v *Volume) bitmapChecksumMatches(bitmap []byte, stored uint32, hiEnd uint32) bool {
	calculated := utils.CRC32cUpdate(v.csumSeed, bitmap)

	if v.geometry.DescSize < hiEnd {
		calculated &= 0xFFFF
	}

	return calculated == stored
}
