// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadExtendedOption = errors.New("bad extended option")

type extendedOptions struct {
	superblock uint64
	blockSize  uint32
}

// parseExtendedOptions parses the name=value pairs of -o.
//
// Numbers are parsed with base auto-detection, so 0x2001 and 8193 are the same block.
func parseExtendedOptions(opts []string) (extendedOptions, error) {
	var ext extendedOptions

	for _, opt := range opts {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		name, value, ok := strings.Cut(opt, "=")

		switch name {
		case "superblock", "sb":
			if !ok {
				return ext, fmt.Errorf("%w: invalid superblock parameter", errBadExtendedOption)
			}

			v, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return ext, fmt.Errorf("%w: invalid superblock parameter: %s", errBadExtendedOption, value)
			}

			ext.superblock = v
		case "blocksize", "bs":
			if !ok {
				return ext, fmt.Errorf("%w: invalid blocksize parameter", errBadExtendedOption)
			}

			v, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return ext, fmt.Errorf("%w: invalid blocksize parameter: %s", errBadExtendedOption, value)
			}

			ext.blockSize = uint32(v)
		default:
			return ext, fmt.Errorf("%w: %q\n\nextended options are:\n\tsuperblock=<superblock number>\n\tblocksize=<blocksize>", errBadExtendedOption, opt)
		}
	}

	return ext, nil
}
