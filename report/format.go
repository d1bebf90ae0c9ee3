// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/siderolabs/gen/xslices"

	"github.com/siderolabs/go-extlayout/extent"
)

// Format selects how block numbers are printed.
type Format struct {
	// Hex prints numbers in hexadecimal.
	Hex bool
	// Wide pads hexadecimal numbers to 8 digits (64bit filesystems).
	Wide bool
}

// Number formats a block number.
func (f Format) Number(v uint64) string {
	switch {
	case !f.Hex:
		return strconv.FormatUint(v, 10)
	case f.Wide:
		return fmt.Sprintf("0x%08x", v)
	default:
		return fmt.Sprintf("0x%04x", v)
	}
}

// Range formats an inclusive range of block numbers.
func (f Format) Range(a, b uint64) string {
	return f.Number(a) + "-" + f.Number(b)
}

// Extent formats a free run as a single number or a range.
func (f Format) Extent(e extent.Extent) string {
	if e.Single() {
		return f.Number(e.Start)
	}

	return f.Range(e.Start, e.End())
}

// Extents formats a list of free runs.
func (f Format) Extents(extents []extent.Extent) string {
	return strings.Join(xslices.Map(extents, f.Extent), ", ")
}
