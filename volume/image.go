// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

const zstdSuffix = ".zst"

func isCompressed(path string) bool {
	return strings.HasSuffix(path, zstdSuffix)
}

// openCompressed decompresses a zstd image into memory.
func openCompressed(path string, options Options) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed image: %w", err)
	}

	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress image: %w", err)
	}

	options.Logger.Debug("decompressed image", zap.String("path", path), zap.String("size", humanize.IBytes(uint64(len(data)))))

	return open(bytes.NewReader(data), options)
}
