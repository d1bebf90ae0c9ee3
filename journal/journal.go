// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package journal decodes jbd2 journal superblocks.
package journal

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/siderolabs/go-pointer"

	"github.com/siderolabs/go-extlayout/internal/magic"
)

// Journal superblock constants.
//
//nolint:stylecheck,revive
const (
	JBD2_MAGIC_NUMBER     = 0xc03b3998
	JBD2_SUPERBLOCK_V1    = 3
	JBD2_SUPERBLOCK_V2    = 4
	JBD2_CRC32C_CHKSUM    = 4
	JBD2_USERS_MAX        = 48
	JBD2_USER_UUID_LENGTH = 16

	JBD2_FEATURE_COMPAT_CHECKSUM = 0x1

	JBD2_FEATURE_INCOMPAT_REVOKE       = 0x1
	JBD2_FEATURE_INCOMPAT_64BIT        = 0x2
	JBD2_FEATURE_INCOMPAT_ASYNC_COMMIT = 0x4
	JBD2_FEATURE_INCOMPAT_CSUM_V2      = 0x8
	JBD2_FEATURE_INCOMPAT_CSUM_V3      = 0x10
)

// Errors returned by Parse.
var (
	ErrBadMagic    = errors.New("journal superblock magic number invalid")
	ErrNotV2       = errors.New("journal superblock is not a v2 superblock")
	ErrShortBuffer = errors.New("journal superblock buffer too short")
)

var journalMagic = magic.Magic{
	Name:  "journal superblock",
	Value: []byte{0xc0, 0x3b, 0x39, 0x98},
}

// Parse validates the buffer as a journal superblock.
func Parse(buf []byte) (Superblock, error) {
	if len(buf) < SUPERBLOCK_SIZE {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(buf))
	}

	if err := journalMagic.Check(buf, ErrBadMagic); err != nil {
		return nil, err
	}

	return Superblock(buf[:SUPERBLOCK_SIZE]), nil
}

// ParseDevice validates the buffer as the superblock of an external journal device.
func ParseDevice(buf []byte) (Superblock, error) {
	sb, err := Parse(buf)
	if err != nil {
		return nil, err
	}

	if blockType := sb.Get_h_blocktype(); blockType != JBD2_SUPERBLOCK_V2 {
		return nil, fmt.Errorf("%w: block type %d", ErrNotV2, blockType)
	}

	return sb, nil
}

var featureNames = [3]map[uint32]string{
	{
		JBD2_FEATURE_COMPAT_CHECKSUM: "journal_checksum",
	},
	{
		JBD2_FEATURE_INCOMPAT_REVOKE:       "journal_incompat_revoke",
		JBD2_FEATURE_INCOMPAT_64BIT:        "journal_64bit",
		JBD2_FEATURE_INCOMPAT_ASYNC_COMMIT: "journal_async_commit",
		JBD2_FEATURE_INCOMPAT_CSUM_V2:      "journal_checksum_v2",
		JBD2_FEATURE_INCOMPAT_CSUM_V3:      "journal_checksum_v3",
	},
	{},
}

// FeatureNames returns the journal features in compat, incompat, ro_compat order.
func (s Superblock) FeatureNames() []string {
	var names []string

	for idx, mask := range []uint32{s.Get_s_feature_compat(), s.Get_s_feature_incompat(), s.Get_s_feature_ro_compat()} {
		for bit := range 32 {
			m := uint32(1) << bit

			if mask&m == 0 {
				continue
			}

			name, ok := featureNames[idx][m]
			if !ok {
				name = fmt.Sprintf("FEATURE_%c%d", "CIR"[idx], bit)
			}

			names = append(names, name)
		}
	}

	return names
}

// Summary is the set of journal facts shown in the report.
//
// Optional facts are nil when they are not reported.
type Summary struct { //nolint:govet
	Features      []string
	Size          string
	BlockSize     *uint32
	Length        uint32
	FirstBlock    *uint32
	Sequence      uint32
	Start         uint32
	NumberOfUsers *uint32
	ChecksumType  *string
	Checksum      *uint32
	Users         []uuid.UUID
	Errno         *int32
}

// Summarize extracts the report facts, fsBlockSize is the block size of the filesystem using the journal.
func (s Superblock) Summarize(fsBlockSize uint32) Summary {
	summary := Summary{
		Features: s.FeatureNames(),
		Length:   s.Get_s_maxlen(),
		Sequence: s.Get_s_sequence(),
		Start:    s.Get_s_start(),
	}

	// size in KiB, wrapping like the on-disk 32-bit counters
	size := (s.Get_s_blocksize() / 1024) * s.Get_s_maxlen()
	if size < 8192 {
		summary.Size = fmt.Sprintf("%dk", size)
	} else {
		summary.Size = fmt.Sprintf("%dM", size>>10)
	}

	if bs := s.Get_s_blocksize(); bs != fsBlockSize {
		summary.BlockSize = pointer.To(bs)
	}

	if first := s.Get_s_first(); first != 1 {
		summary.FirstBlock = pointer.To(first)
	}

	nrUsers := s.Get_s_nr_users()
	if nrUsers != 1 {
		summary.NumberOfUsers = pointer.To(nrUsers)
	}

	incompat := s.Get_s_feature_incompat()

	switch {
	case incompat&(JBD2_FEATURE_INCOMPAT_CSUM_V2|JBD2_FEATURE_INCOMPAT_CSUM_V3) != 0:
		if s.Get_s_checksum_type() == JBD2_CRC32C_CHKSUM {
			summary.ChecksumType = pointer.To("crc32c")
		} else {
			summary.ChecksumType = pointer.To("unknown")
		}

		summary.Checksum = pointer.To(s.Get_s_checksum())
	case s.Get_s_feature_compat()&JBD2_FEATURE_COMPAT_CHECKSUM != 0:
		summary.ChecksumType = pointer.To("crc32")
	}

	users := s.Get_s_users()
	first := uuid.UUID(users[:JBD2_USER_UUID_LENGTH])

	if nrUsers > 1 || first != uuid.Nil {
		for i := range min(nrUsers, JBD2_USERS_MAX) {
			summary.Users = append(summary.Users, uuid.UUID(users[i*JBD2_USER_UUID_LENGTH:(i+1)*JBD2_USER_UUID_LENGTH]))
		}
	}

	if errno := s.Get_s_errno(); errno != 0 {
		summary.Errno = pointer.To(errno)
	}

	return summary
}
