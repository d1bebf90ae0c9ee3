// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package journal_test

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/siderolabs/go-pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-extlayout/journal"
)

type superblockSpec struct { //nolint:govet
	blockType    uint32
	blockSize    uint32
	maxLen       uint32
	first        uint32
	sequence     uint32
	start        uint32
	errno        int32
	compat       uint32
	incompat     uint32
	nrUsers      uint32
	checksumType uint8
	checksum     uint32
	users        []uuid.UUID
}

func buildSuperblock(spec superblockSpec) []byte {
	buf := make([]byte, journal.SUPERBLOCK_SIZE)

	binary.BigEndian.PutUint32(buf[0x00:], journal.JBD2_MAGIC_NUMBER)
	binary.BigEndian.PutUint32(buf[0x04:], spec.blockType)
	binary.BigEndian.PutUint32(buf[0x0c:], spec.blockSize)
	binary.BigEndian.PutUint32(buf[0x10:], spec.maxLen)
	binary.BigEndian.PutUint32(buf[0x14:], spec.first)
	binary.BigEndian.PutUint32(buf[0x18:], spec.sequence)
	binary.BigEndian.PutUint32(buf[0x1c:], spec.start)
	binary.BigEndian.PutUint32(buf[0x20:], uint32(spec.errno))
	binary.BigEndian.PutUint32(buf[0x24:], spec.compat)
	binary.BigEndian.PutUint32(buf[0x28:], spec.incompat)
	binary.BigEndian.PutUint32(buf[0x40:], spec.nrUsers)
	buf[0x50] = spec.checksumType
	binary.BigEndian.PutUint32(buf[0xfc:], spec.checksum)

	for i, u := range spec.users {
		copy(buf[0x100+16*i:], u[:])
	}

	return buf
}

func TestSummarize(t *testing.T) {
	user1 := uuid.MustParse("2f2b7e4c-4b1e-4f57-9a25-61fbc06b4c1a")
	user2 := uuid.MustParse("8d8a3c8e-2a3f-4bd4-8e7d-0b5d1f3c7a91")

	for _, test := range []struct { //nolint:govet
		name        string
		spec        superblockSpec
		fsBlockSize uint32

		expected journal.Summary
	}{
		{
			name: "inline v3",
			spec: superblockSpec{
				blockType:    journal.JBD2_SUPERBLOCK_V2,
				blockSize:    4096,
				maxLen:       32768,
				first:        1,
				sequence:     0x2a,
				nrUsers:      1,
				incompat:     journal.JBD2_FEATURE_INCOMPAT_64BIT | journal.JBD2_FEATURE_INCOMPAT_CSUM_V3,
				checksumType: journal.JBD2_CRC32C_CHKSUM,
				checksum:     0xdeadbeef,
			},
			fsBlockSize: 4096,
			expected: journal.Summary{
				Features:     []string{"journal_64bit", "journal_checksum_v3"},
				Size:         "128M",
				Length:       32768,
				Sequence:     0x2a,
				ChecksumType: pointer.To("crc32c"),
				Checksum:     pointer.To(uint32(0xdeadbeef)),
			},
		},
		{
			name: "external shared",
			spec: superblockSpec{
				blockType: journal.JBD2_SUPERBLOCK_V2,
				blockSize: 1024,
				maxLen:    4096,
				first:     2,
				sequence:  7,
				start:     3,
				errno:     -5,
				nrUsers:   2,
				compat:    journal.JBD2_FEATURE_COMPAT_CHECKSUM,
				incompat:  journal.JBD2_FEATURE_INCOMPAT_REVOKE | 0x40,
				users:     []uuid.UUID{user1, user2},
			},
			fsBlockSize: 4096,
			expected: journal.Summary{
				Features:      []string{"journal_checksum", "journal_incompat_revoke", "FEATURE_I6"},
				Size:          "4096k",
				BlockSize:     pointer.To(uint32(1024)),
				Length:        4096,
				FirstBlock:    pointer.To(uint32(2)),
				Sequence:      7,
				Start:         3,
				NumberOfUsers: pointer.To(uint32(2)),
				ChecksumType:  pointer.To("crc32"),
				Users:         []uuid.UUID{user1, user2},
				Errno:         pointer.To(int32(-5)),
			},
		},
		{
			name: "v2 unknown checksum",
			spec: superblockSpec{
				blockType:    journal.JBD2_SUPERBLOCK_V2,
				blockSize:    4096,
				maxLen:       1024,
				first:        1,
				nrUsers:      1,
				incompat:     journal.JBD2_FEATURE_INCOMPAT_CSUM_V2,
				checksumType: 1,
				users:        []uuid.UUID{user1},
			},
			fsBlockSize: 4096,
			expected: journal.Summary{
				Features:     []string{"journal_checksum_v2"},
				Size:         "4096k",
				Length:       1024,
				ChecksumType: pointer.To("unknown"),
				Checksum:     pointer.To(uint32(0)),
				Users:        []uuid.UUID{user1},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			sb, err := journal.Parse(buildSuperblock(test.spec))
			require.NoError(t, err)

			assert.Equal(t, test.expected, sb.Summarize(test.fsBlockSize))
		})
	}
}

func TestParse(t *testing.T) {
	buf := buildSuperblock(superblockSpec{blockType: journal.JBD2_SUPERBLOCK_V1})

	_, err := journal.Parse(buf)
	require.NoError(t, err)

	_, err = journal.ParseDevice(buf)
	require.ErrorIs(t, err, journal.ErrNotV2)

	_, err = journal.Parse(buf[:512])
	require.ErrorIs(t, err, journal.ErrShortBuffer)

	buf[0] = 0

	_, err = journal.Parse(buf)
	require.ErrorIs(t, err, journal.ErrBadMagic)

	_, err = journal.ParseDevice(buf)
	require.ErrorIs(t, err, journal.ErrBadMagic)
}
