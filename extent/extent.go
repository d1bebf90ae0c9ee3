// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package extent compresses ext allocation bitmaps into free-space runs.
package extent

// Bitmap is an ext allocation bitmap.
//
// Entry i is stored in byte i/8 at bit i%8; a set bit means the entry is in use.
type Bitmap []byte

// NewBitmap allocates a bitmap with room for num entries, all free.
func NewBitmap(num uint64) Bitmap {
	return make(Bitmap, (num+7)/8)
}

// Len returns the number of entries the bitmap can hold.
func (b Bitmap) Len() uint64 {
	return uint64(len(b)) * 8
}

// InUse returns true if entry i is allocated.
func (b Bitmap) InUse(i uint64) bool {
	return b[i>>3]&(1<<(i&7)) != 0
}

// Set marks entry i as allocated.
func (b Bitmap) Set(i uint64) {
	b[i>>3] |= 1 << (i & 7)
}

// SetRange marks entries [start, start+count) as allocated.
func (b Bitmap) SetRange(start, count uint64) {
	for i := start; i < start+count; i++ {
		b.Set(i)
	}
}

// Clear marks entry i as free.
func (b Bitmap) Clear(i uint64) {
	b[i>>3] &^= 1 << (i & 7)
}

// Extent is a contiguous free run.
//
// Start and Len are expressed in output units, so End() is the last unit
// of the run after the ratio transform was applied.
type Extent struct {
	Start uint64
	Len   uint64
}

// End returns the last unit covered by the extent.
func (e Extent) End() uint64 {
	return e.Start + e.Len - 1
}

// Single returns true if the extent covers exactly one unit.
func (e Extent) Single() bool {
	return e.Len == 1
}

// Compress returns the free runs of the first num entries of the bitmap.
//
// Entry i of the bitmap belonging to the given group maps to the unit
// (i + offset/ratio + group*num) * ratio. Runs are maximal and ordered by
// ascending start. Entries beyond the end of the bitmap are treated as in use.
func Compress(bitmap Bitmap, num, group, offset, ratio uint64) []Extent {
	if ratio == 0 {
		ratio = 1
	}

	base := offset/ratio + group*num
	limit := min(num, bitmap.Len())
	extents := []Extent{}

	for i := uint64(0); i < limit; i++ {
		if bitmap.InUse(i) {
			continue
		}

		j := i
		for j+1 < limit && !bitmap.InUse(j+1) {
			j++
		}

		start := (i + base) * ratio
		end := (j + base) * ratio

		extents = append(extents, Extent{Start: start, Len: end - start + 1})

		i = j
	}

	return extents
}

// Free returns the number of free entries among the first num entries of the bitmap.
func Free(bitmap Bitmap, num uint64) uint64 {
	num = min(num, bitmap.Len())

	var free uint64

	for i := range num {
		if !bitmap.InUse(i) {
			free++
		}
	}

	return free
}
