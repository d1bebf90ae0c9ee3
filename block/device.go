// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package block wraps the block device holding a filesystem image.
package block

import (
	"io"
	"os"
)

// DefaultBlockSize is assumed when the device doesn't report a sector size.
const DefaultBlockSize = 512

// Device is a read-only handle to a block device.
type Device struct {
	f         *os.File
	ownedFile bool
}

var _ io.ReaderAt = (*Device)(nil)

// NewFromFile wraps an already opened file.
//
// Close leaves f open.
func NewFromFile(f *os.File) *Device {
	return &Device{f: f}
}

// ReadAt implements io.ReaderAt.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	return d.f.ReadAt(p, off)
}

// Close closes the file if the Device opened it.
func (d *Device) Close() error {
	if d.ownedFile {
		return d.f.Close()
	}

	return nil
}
