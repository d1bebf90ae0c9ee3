// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package ioutil reads filesystem blocks from an io.ReaderAt.
package ioutil

import (
	"errors"
	"fmt"
	"io"
)

// ReadFullAt fills buf from r starting at offset.
//
// A short read is reported as io.ErrUnexpectedEOF.
func ReadFullAt(r io.ReaderAt, buf []byte, offset int64) error {
	n := 0

	for n < len(buf) {
		m, err := r.ReadAt(buf[n:], offset+int64(n))
		n += m

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && n == len(buf):
			return nil
		case errors.Is(err, io.EOF):
			return io.ErrUnexpectedEOF
		default:
			return err
		}
	}

	return nil
}

// ReadBlocks reads count filesystem blocks starting at block blk.
func ReadBlocks(r io.ReaderAt, blockSize uint32, blk uint64, count int) ([]byte, error) {
	buf := make([]byte, int(blockSize)*count)

	if err := ReadFullAt(r, buf, int64(blk)*int64(blockSize)); err != nil {
		return nil, fmt.Errorf("failed to read block %d: %w", blk, err)
	}

	return buf, nil
}
