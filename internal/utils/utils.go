// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package utils provides checksum and arithmetic helpers for ext structures.
package utils

import (
	"hash/crc32"
	"sync"
)

var castagnoliTable = sync.OnceValue(func() *crc32.Table {
	return crc32.MakeTable(crc32.Castagnoli)
})

// CRC32c returns values compatible with Linux crc32c function.
func CRC32c(buf []byte) uint32 {
	return CRC32cUpdate(^uint32(0), buf)
}

// CRC32cUpdate continues a Linux-style crc32c (no pre/post inversion) from the seed.
//
// ext4 metadata checksums are chained this way starting from the filesystem checksum seed.
func CRC32cUpdate(seed uint32, buf []byte) uint32 {
	return ^crc32.Update(^seed, castagnoliTable(), buf)
}

var crc16Table = sync.OnceValue(func() *[256]uint16 {
	var table [256]uint16

	for i := range table {
		crc := uint16(i)

		for range 8 {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0xa001
			} else {
				crc >>= 1
			}
		}

		table[i] = crc
	}

	return &table
})

// CRC16 continues the reflected CRC-16 (polynomial 0x8005) used for ext4 group descriptors.
func CRC16(crc uint16, buf []byte) uint16 {
	table := crc16Table()

	for _, b := range buf {
		crc = (crc >> 8) ^ table[byte(crc)^b]
	}

	return crc
}

// IsPowerOf2 returns true if num is a power of 2.
func IsPowerOf2[T uint | uint8 | uint16 | uint32 | uint64](num T) bool {
	return (num != 0 && ((num & (num - 1)) == 0))
}

// DivCeil returns num/div rounded up.
func DivCeil[T uint32 | uint64](num, div T) T {
	return (num + div - 1) / div
}
