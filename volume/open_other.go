// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package volume

import "os"

// OpenPath opens the filesystem stored in an image file or a zstd-compressed image.
func OpenPath(path string, opts ...Option) (*Volume, error) {
	options := applyOptions(opts...)

	if isCompressed(path) {
		return openCompressed(path, options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	v, err := open(f, options)
	if err != nil {
		f.Close() //nolint:errcheck

		return nil, err
	}

	v.closer = f

	return v, nil
}
