// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build linux

package volume

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/siderolabs/go-extlayout/block"
)

// ErrFailedLock is returned when the blockdevice is locked exclusively by another process.
var ErrFailedLock = errors.New("failed to acquire shared lock on blockdevice")

// OpenPath opens the filesystem stored in a blockdevice, an image file or a zstd-compressed image.
//
// Blockdevices are locked in shared mode (the whole disk, if the path is a partition)
// until the volume is closed.
func OpenPath(path string, opts ...Option) (*Volume, error) {
	options := applyOptions(opts...)

	if isCompressed(path) {
		return openCompressed(path, options)
	}

	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	v, err := openFile(f, options)
	if err != nil {
		f.Close() //nolint:errcheck

		return nil, err
	}

	return v, nil
}

//nolint:gocyclo,cyclop
func openFile(f *os.File, options Options) (*Volume, error) {
	unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM) //nolint:errcheck

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}

	closer := &fileCloser{f: f}

	var size uint64

	sysStat := st.Sys().(*syscall.Stat_t) //nolint:errcheck,forcetypeassert

	switch sysStat.Mode & unix.S_IFMT {
	case unix.S_IFBLK:
		dev := block.NewFromFile(f)

		if size, err = dev.GetSize(); err != nil {
			return nil, err
		}

		ioSize, err := dev.GetIOSize()
		if err != nil {
			return nil, fmt.Errorf("failed to get block device I/O size: %w", err)
		}

		options.Logger.Debug("opened block device",
			zap.String("path", f.Name()),
			zap.String("size", humanize.IBytes(size)),
			zap.Uint("sector_size", dev.GetSectorSize()),
			zap.Uint("io_size", ioSize),
		)

		if !options.SkipLocking {
			if closer.wholeDisk, err = lockWholeDisk(dev); err != nil {
				return nil, err
			}
		}
	case unix.S_IFREG:
		size = uint64(st.Size())
	default:
		return nil, fmt.Errorf("unsupported file type: %s", st.Mode().Type())
	}

	v, err := open(f, options)
	if err != nil {
		return nil, multierr.Append(err, closer.unlock())
	}

	if fsSize := v.sb.FilesystemSize(); fsSize > size {
		options.Logger.Warn("filesystem is larger than the device",
			zap.String("filesystem", humanize.IBytes(fsSize)),
			zap.String("device", humanize.IBytes(size)),
		)
	}

	v.closer = closer

	return v, nil
}

// lockWholeDisk locks the whole disk the device belongs to in shared mode.
func lockWholeDisk(dev *block.Device) (*block.Device, error) {
	wholeDisk, err := dev.GetWholeDisk()
	if err != nil {
		return nil, fmt.Errorf("failed to get whole disk: %w", err)
	}

	if err = wholeDisk.TryLock(false); err != nil {
		wholeDisk.Close() //nolint:errcheck

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrFailedLock
		}

		return nil, fmt.Errorf("failed to lock whole disk: %w", err)
	}

	return wholeDisk, nil
}

type fileCloser struct {
	f         *os.File
	wholeDisk *block.Device
}

func (c *fileCloser) unlock() error {
	if c.wholeDisk == nil {
		return nil
	}

	err := multierr.Combine(c.wholeDisk.Unlock(), c.wholeDisk.Close())
	c.wholeDisk = nil

	return err
}

func (c *fileCloser) Close() error {
	return multierr.Append(c.unlock(), c.f.Close())
}
