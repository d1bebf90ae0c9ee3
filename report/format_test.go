// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/report"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	extents := []extent.Extent{
		{Start: 7, Len: 58},
		{Start: 75, Len: 1},
		{Start: 300, Len: 2},
	}

	for _, test := range []struct {
		name string

		format report.Format

		expectedNumber  string
		expectedRange   string
		expectedExtents string
	}{
		{
			name: "decimal",

			expectedNumber:  "75",
			expectedRange:   "1-64",
			expectedExtents: "7-64, 75, 300-301",
		},
		{
			name:   "decimal ignores width",
			format: report.Format{Wide: true},

			expectedNumber:  "75",
			expectedRange:   "1-64",
			expectedExtents: "7-64, 75, 300-301",
		},
		{
			name:   "hex",
			format: report.Format{Hex: true},

			expectedNumber:  "0x004b",
			expectedRange:   "0x0001-0x0040",
			expectedExtents: "0x0007-0x0040, 0x004b, 0x012c-0x012d",
		},
		{
			name:   "wide hex",
			format: report.Format{Hex: true, Wide: true},

			expectedNumber:  "0x0000004b",
			expectedRange:   "0x00000001-0x00000040",
			expectedExtents: "0x00000007-0x00000040, 0x0000004b, 0x0000012c-0x0000012d",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expectedNumber, test.format.Number(75))
			assert.Equal(t, test.expectedRange, test.format.Range(1, 64))
			assert.Equal(t, test.expectedExtents, test.format.Extents(extents))
		})
	}
}

func TestFormatEmptyExtents(t *testing.T) {
	t.Parallel()

	assert.Empty(t, report.Format{}.Extents(nil))
	assert.Empty(t, report.Format{}.Extents([]extent.Extent{}))
}

func TestRangeLen(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 1, report.Range{Start: 5, End: 5}.Len())
	assert.EqualValues(t, 64, report.Range{Start: 1, End: 64}.Len())
}
