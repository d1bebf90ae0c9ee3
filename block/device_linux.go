// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package block

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/siderolabs/go-extlayout/internal/utils"
)

// ErrNoParent is returned when a device-mapper partition has no underlying device.
var ErrNoParent = errors.New("no parent device found")

// NewFromPath opens the device at path read-only.
//
// The returned Device owns the file.
func NewFromPath(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	return &Device{f: f, ownedFile: true}, nil
}

func (d *Device) ioctl(req uint, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), uintptr(req), uintptr(arg)); errno != 0 {
		return errno
	}

	return nil
}

// GetSize returns the size of the device in bytes.
func (d *Device) GetSize() (uint64, error) {
	var size uint64

	if err := d.ioctl(unix.BLKGETSIZE64, unsafe.Pointer(&size)); err != nil {
		return 0, fmt.Errorf("failed to get device size: %w", err)
	}

	return size, nil
}

// GetIOSize returns the preferred read size of the device.
//
// Optimal, minimal and soft block sizes are tried in order, the first power of two wins.
func (d *Device) GetIOSize() (uint, error) {
	for _, req := range []uint{unix.BLKIOOPT, unix.BLKIOMIN, unix.BLKBSZGET} {
		var size uint

		if d.ioctl(req, unsafe.Pointer(&size)) != nil {
			continue
		}

		if size > 0 && utils.IsPowerOf2(size) {
			return size, nil
		}
	}

	return DefaultBlockSize, nil
}

// GetSectorSize returns the logical sector size, DefaultBlockSize if unknown.
func (d *Device) GetSectorSize() uint {
	var size uint

	if err := d.ioctl(unix.BLKSSZGET, unsafe.Pointer(&size)); err != nil || size == 0 {
		return DefaultBlockSize
	}

	return size
}

// sysfsDir returns the /sys/dev/block directory of the device.
func (d *Device) sysfsDir() (string, error) {
	var st unix.Stat_t

	if err := unix.Fstat(int(d.f.Fd()), &st); err != nil {
		return "", err
	}

	return fmt.Sprintf("/sys/dev/block/%d:%d", unix.Major(st.Rdev), unix.Minor(st.Rdev)), nil
}

// parentName returns the kernel name of the disk holding the device,
// or an empty string if the device is a whole disk.
func parentName(sysfsDir string) (string, error) {
	if _, err := os.Stat(filepath.Join(sysfsDir, "partition")); err == nil {
		target, err := os.Readlink(sysfsDir)
		if err != nil {
			return "", err
		}

		return filepath.Base(filepath.Dir(target)), nil
	}

	dmUUID, err := os.ReadFile(filepath.Join(sysfsDir, "dm", "uuid"))
	if err != nil || !bytes.HasPrefix(dmUUID, []byte("part-")) {
		return "", nil //nolint:nilerr
	}

	slaves, err := os.ReadDir(filepath.Join(sysfsDir, "slaves"))
	if err != nil {
		return "", err
	}

	if len(slaves) == 0 {
		return "", ErrNoParent
	}

	return slaves[0].Name(), nil
}

// GetWholeDisk returns the disk the device belongs to.
//
// Partitions (including device-mapper partitions) resolve to their parent disk,
// anything else resolves to a non-owning copy of d. The result should be closed.
func (d *Device) GetWholeDisk() (*Device, error) {
	dir, err := d.sysfsDir()
	if err != nil {
		return nil, err
	}

	parent, err := parentName(dir)
	if err != nil {
		return nil, err
	}

	if parent == "" {
		return &Device{f: d.f}, nil
	}

	return NewFromPath(filepath.Join("/dev", parent))
}

// TryLock places a flock on the device without waiting.
//
// A conflicting lock is reported as unix.EWOULDBLOCK.
func (d *Device) TryLock(exclusive bool) error {
	how := unix.LOCK_SH | unix.LOCK_NB
	if exclusive {
		how = unix.LOCK_EX | unix.LOCK_NB
	}

	return d.flock(how)
}

// Unlock releases the flock.
func (d *Device) Unlock() error {
	return d.flock(unix.LOCK_UN)
}

func (d *Device) flock(how int) error {
	for {
		err := unix.Flock(int(d.f.Fd()), how)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
