// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package magic implements magic number checks for on-disk ext and journal structures.
package magic

import (
	"bytes"
	"fmt"
)

// Magic defines a magic value expected at a fixed offset of an on-disk structure.
type Magic struct {
	// Name of the structure, used in error messages.
	Name string

	// Value to search for.
	Value []byte

	// Offset in the structure where the magic value is located.
	Offset int
}

// Matches returns true if the magic value is found at the specified offset in the buffer.
func (magic *Magic) Matches(buf []byte) bool {
	if len(buf) < magic.Size() {
		return false
	}

	return bytes.Equal(buf[magic.Offset:magic.Offset+len(magic.Value)], magic.Value)
}

// Size returns the size of the buffer that needs to be read to check the magic value.
func (magic *Magic) Size() int {
	return magic.Offset + len(magic.Value)
}

// Check returns an error wrapping err if the magic value doesn't match.
func (magic *Magic) Check(buf []byte, err error) error {
	if magic.Matches(buf) {
		return nil
	}

	if len(buf) < magic.Size() {
		return fmt.Errorf("%w: %s truncated to %d bytes", err, magic.Name, len(buf))
	}

	return fmt.Errorf("%w: %s magic % x", err, magic.Name, buf[magic.Offset:magic.Offset+len(magic.Value)])
}
