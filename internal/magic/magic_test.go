// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package magic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-extlayout/internal/magic"
)

func TestMagic(t *testing.T) {
	errBad := errors.New("bad")

	m := magic.Magic{
		Name:   "test",
		Offset: 2,
		Value:  []byte{0x53, 0xef},
	}

	assert.Equal(t, 4, m.Size())

	for _, test := range []struct {
		name string
		buf  []byte

		expected bool
	}{
		{
			name:     "match",
			buf:      []byte{0, 0, 0x53, 0xef, 1},
			expected: true,
		},
		{
			name: "mismatch",
			buf:  []byte{0, 0, 0xef, 0x53},
		},
		{
			name: "short",
			buf:  []byte{0, 0, 0x53},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, m.Matches(test.buf))

			err := m.Check(test.buf, errBad)

			if test.expected {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errBad)
			}
		})
	}
}
